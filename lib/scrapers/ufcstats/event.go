package ufcstats

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

// ExtractEvent reads an event-details page: the card name, date and
// location, plus a reference per fight row.
func ExtractEvent(doc *goquery.Document, link string) (Event, error) {
	id, err := urlid.UFCStats(link)
	if err != nil {
		return Event{}, err
	}
	event := Event{ID: id, URL: link, Fights: []FightRef{}}

	if name := htmlutil.Text(doc.Find("span.b-content__title-highlight").First()); name != "" {
		event.Name = &name
	}

	doc.Find("li.b-list__box-list-item").Each(func(_ int, item *goquery.Selection) {
		label := item.Find("i.b-list__box-item-title").First()
		if label.Length() == 0 {
			return
		}
		name := strings.ToLower(htmlutil.Text(label))
		value := labeledValue(item, label)

		switch {
		case strings.Contains(name, "date:"):
			event.Date = optional(value)
		case strings.Contains(name, "location:"):
			event.Location = optional(value)
		}
	})

	doc.Find("tr.b-fight-details__table-row").Each(func(_ int, row *goquery.Selection) {
		onclick, ok := row.Attr("onclick")
		if !ok {
			return
		}
		m := navTarget.FindStringSubmatch(onclick)
		if m == nil {
			return
		}
		ref := FightRef{FightURL: m[1]}
		if fightID, err := urlid.UFCStats(ref.FightURL); err == nil {
			ref.FightID = fightID
		}
		event.Fights = append(event.Fights, ref)
	})

	return event, nil
}
