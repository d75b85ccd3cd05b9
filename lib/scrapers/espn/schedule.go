package espn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

var (
	scheduleDate = regexp.MustCompile(`([A-Za-z]{3})\s+(\d{1,2})`)
	leagueSlug   = regexp.MustCompile(`/league/([a-z0-9-]+)`)
)

// fightcenterPath marks the links that lead to an event page.
const fightcenterPath = "/mma/fightcenter/_/id/"

// ExtractSchedule reads the event rows for one year. Only tables that
// carry a fight-of-the-night column count; the page reuses table.Table
// for unrelated widgets.
func ExtractSchedule(doc *goquery.Document, year int) []ScheduleEvent {
	events := []ScheduleEvent{}
	seen := map[string]struct{}{}
	doc.Find("table.Table").Each(func(_ int, table *goquery.Selection) {
		head := strings.ToLower(htmlutil.Text(table.Find("thead")))
		if !strings.Contains(head, "event") || !strings.Contains(head, "location") || !strings.Contains(head, "date") {
			return
		}
		if !strings.Contains(head, "fight of the night") && !strings.Contains(head, "fotn") {
			return
		}

		columns := map[string]int{}
		table.Find("thead").First().Find("th").Each(func(i int, th *goquery.Selection) {
			columns[strings.ToLower(htmlutil.Text(th))] = i
		})
		dateCol := columnWithPrefix(columns, "date")
		eventCol := columnWithPrefix(columns, "event")
		locationCol := columnWithPrefix(columns, "location")
		fotnCol := fotnColumn(columns)

		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			cells := tr.Find("td")
			if cells.Length() == 0 {
				return
			}
			event, ok := scheduleRow(cells, year, dateCol, eventCol, locationCol, fotnCol)
			if !ok {
				return
			}
			if _, dup := seen[event.URL]; dup {
				return
			}
			seen[event.URL] = struct{}{}
			events = append(events, event)
		})
	})
	return events
}

func columnWithPrefix(columns map[string]int, prefix string) int {
	for header, i := range columns {
		if strings.HasPrefix(header, prefix) {
			return i
		}
	}
	return -1
}

func fotnColumn(columns map[string]int) int {
	for header, i := range columns {
		if strings.Contains(header, "fight of the night") || strings.Contains(header, "fotn") {
			return i
		}
	}
	return -1
}

func scheduleRow(cells *goquery.Selection, year, dateCol, eventCol, locationCol, fotnCol int) (ScheduleEvent, bool) {
	var href, name string
	cells.Find(`a[href*="` + fightcenterPath + `"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href = strings.TrimSpace(a.AttrOr("href", ""))
		name = htmlutil.Text(a)
		return false
	})
	if href == "" {
		return ScheduleEvent{}, false
	}
	link := absoluteURL(href)
	id, err := urlid.ESPN(link)
	if err != nil {
		return ScheduleEvent{}, false
	}

	event := ScheduleEvent{URL: link, ID: id, Year: year}
	if name == "" && eventCol >= 0 && eventCol < cells.Length() {
		name = htmlutil.Text(cells.Eq(eventCol))
	}
	if name != "" {
		event.Name = &name
	}
	if dateCol >= 0 && dateCol < cells.Length() {
		if date := parseScheduleDate(htmlutil.Text(cells.Eq(dateCol)), year); date != "" {
			event.Date = &date
		}
	}
	if locationCol >= 0 && locationCol < cells.Length() {
		if location := htmlutil.Text(cells.Eq(locationCol)); location != "" {
			event.Location = &location
		}
	}
	if m := leagueSlug.FindStringSubmatch(link); m != nil {
		event.League = &m[1]
	}
	if fotnCol >= 0 && fotnCol < cells.Length() {
		if fotn := htmlutil.Text(cells.Eq(fotnCol)); fotn != "" && fotn != "-" {
			event.FightOfTheNight = &fotn
		}
	}
	return event, true
}

// parseScheduleDate turns "Sat, Mar 4" style cells into an iso date using
// the schedule's year. Text without a leading month keeps its cleaned
// form.
func parseScheduleDate(text string, year int) string {
	text = htmlutil.CleanText(text)
	m := scheduleDate.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	month, ok := months[strings.ToLower(m[1])]
	if !ok {
		return text
	}
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return text
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
