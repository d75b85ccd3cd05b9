package espn

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

// statsAreas are the three per-area tables on a stats page.
var statsAreas = []string{"striking", "clinch", "ground"}

// ParseStatsTables reads the striking, clinch and ground tables. Sections
// missing from the page come back as empty maps so callers can merge
// without nil checks.
func ParseStatsTables(doc *goquery.Document) StatsSections {
	sections := make(StatsSections, len(statsAreas))
	for _, area := range statsAreas {
		sections[area] = parseStatsSection(doc, area)
	}
	return sections
}

func parseStatsSection(doc *goquery.Document, area string) map[string]StatRow {
	rows := map[string]StatRow{}
	doc.Find("div.ResponsiveTable").EachWithBreak(func(_ int, wrapper *goquery.Selection) bool {
		title := strings.ToLower(htmlutil.Text(wrapper.Find(".Table__Title").First()))
		if title != area {
			return true
		}
		if table := wrapper.Find("table.Table").First(); table.Length() > 0 {
			parseStatsTable(table, rows)
		}
		return false
	})
	return rows
}

func parseStatsTable(table *goquery.Selection, rows map[string]StatRow) {
	headers := tableHeaders(table)
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := StatRow{Metrics: map[string]string{}}
		cells.Each(func(i int, cell *goquery.Selection) {
			header := fmt.Sprintf("col_%d", i)
			if i < len(headers) {
				header = headers[i]
			}
			switch header {
			case "Date":
				row.Date = cellValue(cell)
			case "Opponent":
				name, href := cellAnchor(cell, "a[href]")
				if name != "" {
					row.Opponent = &name
				} else {
					row.Opponent = cellValue(cell)
				}
				if href != "" {
					link := absoluteURL(href)
					row.OpponentURL = &link
					if id, err := urlid.ESPN(link); err == nil {
						row.OpponentID = &id
					}
				}
			case "Event":
				_, href := cellAnchor(cell, "a[data-game-link]")
				if href == "" {
					_, href = cellAnchor(cell, "a[href]")
				}
				if href != "" {
					link := absoluteURL(href)
					row.EventURL = &link
					if id, err := urlid.ESPN(link); err == nil {
						row.EventID = &id
					}
				}
			case "Res.", "Res":
				row.Result = cellValue(cell)
			default:
				if value := cellValue(cell); value != nil {
					row.Metrics[header] = *value
				}
			}
		})
		rows[statsJoinKey(row)] = row
	})
}

// cellValue returns nil for empty and placeholder cells.
func cellValue(cell *goquery.Selection) *string {
	text := htmlutil.Text(cell)
	if text == "" || text == "-" {
		return nil
	}
	return &text
}

func cellAnchor(cell *goquery.Selection, selector string) (text, href string) {
	anchor := cell.Find(selector).First()
	if anchor.Length() == 0 {
		return "", ""
	}
	return htmlutil.Text(anchor), strings.TrimSpace(anchor.AttrOr("href", ""))
}

// statsJoinKey identifies a fight within the stats tables: the event id
// when the row links one, otherwise date plus opponent.
func statsJoinKey(row StatRow) string {
	if row.EventID != nil {
		return *row.EventID
	}
	return fmt.Sprintf("%s|%s", deref(row.Date), deref(row.Opponent))
}

func historyJoinKey(fight HistoryFight) string {
	if fight.EventID != nil {
		return *fight.EventID
	}
	return fmt.Sprintf("%s|%s", deref(fight.Date), deref(fight.Opponent))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// AttachStats joins the stats rows onto the history fights in place. A
// fight picks up each area's metrics when the join keys line up; fights
// without stats rows stay untouched.
func AttachStats(fights []HistoryFight, sections StatsSections) {
	for i := range fights {
		key := historyJoinKey(fights[i])
		if row, ok := sections["striking"][key]; ok && len(row.Metrics) > 0 {
			fights[i].Striking = row.Metrics
		}
		if row, ok := sections["clinch"][key]; ok && len(row.Metrics) > 0 {
			fights[i].Clinch = row.Metrics
		}
		if row, ok := sections["ground"][key]; ok && len(row.Metrics) > 0 {
			fights[i].Ground = row.Metrics
		}
	}
}
