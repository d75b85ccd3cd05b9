package espn

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

// canonicalHeaders maps the header tokens the history table uses, stripped
// to letters, onto the field names rows are stored under.
var canonicalHeaders = map[string]string{
	"date":     "date",
	"opponent": "opponent",
	"res":      "result",
	"result":   "result",
	"decision": "method",
	"method":   "method",
	"rnd":      "round",
	"round":    "round",
	"time":     "time",
	"event":    "event",
}

// fallbackHeaders is the column order the history table has always used,
// applied when a table hides or truncates its header row.
var fallbackHeaders = []string{"date", "opponent", "result", "method", "round", "time", "event"}

var nonLetters = regexp.MustCompile(`[^a-z]`)

// headerSimilarityFloor is how close a mangled header has to be to a known
// token before it is treated as that token.
const headerSimilarityFloor = 0.92

// normalizeHeader reduces a header cell to its canonical field name. Exact
// tokens win; close misspellings fall back to the most similar token, and
// anything else keeps its stripped form.
func normalizeHeader(text string) string {
	token := nonLetters.ReplaceAllString(strings.ToLower(htmlutil.CleanText(text)), "")
	if token == "" {
		return ""
	}
	if canonical, ok := canonicalHeaders[token]; ok {
		return canonical
	}
	var mostSimilarity float64
	var mostSimilar string
	for known, canonical := range canonicalHeaders {
		similarity := matchr.JaroWinkler(token, known, false)
		if similarity > mostSimilarity {
			mostSimilarity = similarity
			mostSimilar = canonical
		}
	}
	if mostSimilarity >= headerSimilarityFloor {
		return mostSimilar
	}
	return token
}

// ExtractHistory reads every fight row from the history page tables.
func ExtractHistory(doc *goquery.Document, link string) ([]HistoryFight, error) {
	if _, err := urlid.ESPN(link); err != nil {
		return nil, err
	}
	fights := []HistoryFight{}
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if !isHistoryTable(table) {
			return
		}
		fights = append(fights, parseHistoryTable(table)...)
	})
	return fights, nil
}

func isHistoryTable(table *goquery.Selection) bool {
	head := strings.ToLower(htmlutil.Text(table.Find("th")))
	for _, token := range []string{"date", "opponent", "result", "event"} {
		if strings.Contains(head, token) {
			return true
		}
	}
	return false
}

func parseHistoryTable(table *goquery.Selection) []HistoryFight {
	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, normalizeHeader(htmlutil.Text(th)))
	})
	if len(headers) < 3 {
		headers = fallbackHeaders
	}

	var fights []HistoryFight
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		var fight HistoryFight
		cells.Each(func(i int, cell *goquery.Selection) {
			if i >= len(headers) || headers[i] == "" {
				return
			}
			switch key := headers[i]; key {
			case "date":
				fight.Date = cellValue(cell)
			case "opponent":
				name, href := cellAnchor(cell, "a[href]")
				if name != "" {
					fight.Opponent = &name
				} else {
					fight.Opponent = cellValue(cell)
				}
				if href != "" {
					link := absoluteURL(href)
					fight.OpponentURL = &link
					if id, err := urlid.ESPN(link); err == nil {
						fight.OpponentID = &id
					}
				}
			case "result":
				fight.Result = resultValue(cell)
			case "method":
				fight.Method = cellValue(cell)
			case "round":
				fight.Round = cellValue(cell)
			case "time":
				fight.Time = cellValue(cell)
			case "event":
				name, href := cellAnchor(cell, "a[href]")
				if name != "" {
					fight.Event = &name
				} else {
					fight.Event = cellValue(cell)
				}
				if href != "" {
					link := absoluteURL(href)
					fight.EventURL = &link
					if id, err := urlid.ESPN(link); err == nil {
						fight.EventID = &id
					}
				}
			default:
				if value := cellValue(cell); value != nil {
					if fight.Extras == nil {
						fight.Extras = map[string]string{}
					}
					fight.Extras[key] = *value
				}
			}
		})
		if !fight.empty() {
			fights = append(fights, fight)
		}
	})
	return fights
}

// resultValue normalizes the single-letter win/loss flags, which show up
// in either case.
func resultValue(cell *goquery.Selection) *string {
	value := cellValue(cell)
	if value == nil {
		return nil
	}
	switch upper := strings.ToUpper(*value); upper {
	case "W", "L", "D", "NC":
		return &upper
	}
	return value
}
