package ufcstats

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

var navTarget = regexp.MustCompile(`doNav\('([^']+)'\)`)

// ExtractFighter reads a fighter-details page: title name and record, the
// bio and career stat boxes, and the fight history table.
func ExtractFighter(doc *goquery.Document, link string) (Fighter, error) {
	id, err := urlid.UFCStats(link)
	if err != nil {
		return Fighter{}, err
	}
	fighter := Fighter{ID: id, URL: link, Fights: []FightSummary{}}

	title := doc.Find("h2.b-content__title").First()
	if name := htmlutil.Text(title.Find("span.b-content__title-highlight")); name != "" {
		fighter.Name = &name
	}
	fighter.Record = parseRecord(htmlutil.Text(title.Find("span.b-content__title-record")))

	fighter.Nickname = optional(htmlutil.Text(doc.Find("p.b-content__Nickname").First()))

	doc.Find("li.b-list__box-list-item").Each(func(_ int, item *goquery.Selection) {
		label := item.Find("i.b-list__box-item-title").First()
		if label.Length() == 0 {
			return
		}
		name := strings.ToLower(htmlutil.Text(label))
		value := labeledValue(item, label)

		switch {
		case strings.Contains(name, "height:"):
			fighter.Height = optional(value)
		case strings.Contains(name, "weight:"):
			fighter.Weight = optional(value)
		case strings.Contains(name, "reach:"):
			fighter.Reach = optional(strings.TrimSpace(strings.ReplaceAll(value, `"`, "")))
		case strings.Contains(name, "stance:"):
			fighter.Stance = optional(value)
		case strings.Contains(name, "dob:"):
			fighter.DOB = optional(value)
		case strings.Contains(name, "slpm:"):
			fighter.SLpM = parseDecimal(value)
		case strings.Contains(name, "str. acc.:"):
			fighter.StrAcc = parsePercent(value)
		case strings.Contains(name, "sapm:"):
			fighter.SApM = parseDecimal(value)
		case strings.Contains(name, "str. def:"):
			fighter.StrDef = parsePercent(value)
		case strings.Contains(name, "td avg.:"):
			fighter.TDAvg = parseDecimal(value)
		case strings.Contains(name, "td acc.:"):
			fighter.TDAcc = parsePercent(value)
		case strings.Contains(name, "td def.:"):
			fighter.TDDef = parsePercent(value)
		case strings.Contains(name, "sub. avg.:"):
			fighter.SubAvg = parseDecimal(value)
		}
	})

	doc.Find("tr.b-fight-details__table-row").Each(func(_ int, row *goquery.Selection) {
		summary, ok := extractFightSummary(row, id)
		if !ok {
			return
		}
		fighter.Fights = append(fighter.Fights, summary)
	})

	return fighter, nil
}

// extractFightSummary reads one history row. Rows without a doNav onclick
// are column headers.
func extractFightSummary(row *goquery.Selection, fighterID string) (FightSummary, bool) {
	onclick, ok := row.Attr("onclick")
	if !ok {
		return FightSummary{}, false
	}
	m := navTarget.FindStringSubmatch(onclick)
	if m == nil {
		return FightSummary{}, false
	}

	summary := FightSummary{FightURL: m[1]}
	if fightID, err := urlid.UFCStats(summary.FightURL); err == nil {
		summary.FightID = fightID
	}

	cols := row.Find("td")
	if cols.Length() < 10 {
		return summary, true
	}

	if result := htmlutil.Text(cols.Eq(0).Find("a.b-flag i.b-flag__text")); result != "" {
		summary.Result = &result
	}

	cols.Eq(1).Find("a.b-link").EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		opponentID, err := urlid.UFCStats(anchor.AttrOr("href", ""))
		if err != nil || opponentID == fighterID {
			return true
		}
		if name := htmlutil.Text(anchor); name != "" {
			summary.Opponent = &name
		}
		summary.OpponentID = &opponentID
		return false
	})

	// The stat cells hold two stacked paragraphs, the page owner's value
	// first and the opponent's below it.
	summary.KD = parseCount(ownStatText(cols.Eq(2)))
	summary.Str = parseCount(ownStatText(cols.Eq(3)))
	summary.TD = parseCount(ownStatText(cols.Eq(4)))
	summary.Sub = parseCount(ownStatText(cols.Eq(5)))

	eventCol := cols.Eq(6)
	if anchor := eventCol.Find("a.b-link").First(); anchor.Length() > 0 {
		if name := htmlutil.Text(anchor); name != "" {
			summary.EventName = &name
		}
		if href, ok := anchor.Attr("href"); ok {
			summary.EventURL = &href
			if eventID, err := urlid.UFCStats(href); err == nil {
				summary.EventID = &eventID
			}
		}
	}
	if texts := eventCol.Find("p.b-fight-details__table-text"); texts.Length() >= 2 {
		summary.Date = optional(htmlutil.Text(texts.Eq(1)))
	}

	methodTexts := cols.Eq(7).Find("p.b-fight-details__table-text")
	if methodTexts.Length() > 0 {
		summary.Method = optional(htmlutil.Text(methodTexts.Eq(0)))
	}
	if methodTexts.Length() > 1 {
		summary.Details = optional(htmlutil.Text(methodTexts.Eq(1)))
	}

	summary.Round = optional(htmlutil.Text(cols.Eq(8)))
	summary.Time = optional(htmlutil.Text(cols.Eq(9)))

	return summary, true
}

// ownStatText returns the first stacked paragraph of a history stat cell.
// A single paragraph means the row layout changed, so report nothing rather
// than guess whose number it is.
func ownStatText(col *goquery.Selection) string {
	texts := col.Find("p.b-fight-details__table-text")
	if texts.Length() < 2 {
		return ""
	}
	return htmlutil.Text(texts.Eq(0))
}
