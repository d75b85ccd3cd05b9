package ufcstats

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

var (
	titleWords  = regexp.MustCompile(`\b(Title|Bout)\b`)
	detailsLine = regexp.MustCompile(`(?i)\bDetails:\s*(.+)`)
	roundLabel  = regexp.MustCompile(`Round\s+(\d+)`)
)

// ExtractFight reads a fight-details page: the event link, both corner
// blocks, the bout line, the labeled outcome items, and the totals,
// significant strikes and per-round tables.
func ExtractFight(doc *goquery.Document, link string) (Fight, error) {
	id, err := urlid.UFCStats(link)
	if err != nil {
		return Fight{}, err
	}
	fight := Fight{
		ID:       id,
		URL:      link,
		Fighters: []Corner{},
		Totals:   []FighterStats{},
		Rounds:   []RoundStats{},
	}

	eventAnchor := doc.Find("h2.b-content__title a").First()
	if eventAnchor.Length() > 0 {
		if name := htmlutil.Text(eventAnchor); name != "" {
			fight.EventName = &name
		}
		if href, ok := eventAnchor.Attr("href"); ok {
			fight.EventURL = &href
			if eventID, err := urlid.UFCStats(href); err == nil {
				fight.EventID = &eventID
			}
		}
	}

	doc.Find("div.b-fight-details__person").Each(func(_ int, person *goquery.Selection) {
		corner := Corner{}
		if result := htmlutil.Text(person.Find("i.b-fight-details__person-status").First()); result != "" {
			corner.Result = &result
		}
		anchor := person.Find("a.b-fight-details__person-link").First()
		corner.Name = htmlutil.Text(anchor)
		if href, ok := anchor.Attr("href"); ok {
			corner.URL = href
			if fighterID, err := urlid.UFCStats(href); err == nil {
				corner.ID = fighterID
			}
		}
		corner.Nickname = optional(htmlutil.Text(person.Find("p.b-fight-details__person-title").First()))
		fight.Fighters = append(fight.Fighters, corner)
	})

	if title := htmlutil.Text(doc.Find("i.b-fight-details__fight-title").First()); title != "" {
		isTitle := strings.Contains(title, "Title")
		fight.IsTitleFight = &isTitle
		if weightClass := htmlutil.CleanText(titleWords.ReplaceAllString(title, "")); weightClass != "" {
			fight.WeightClass = &weightClass
		}
	}

	// The "Time format:" case has to come before "Time:" so the broader
	// label never swallows it.
	doc.Find("div.b-fight-details__content i.b-fight-details__text-item_first, div.b-fight-details__content i.b-fight-details__text-item").Each(func(_ int, item *goquery.Selection) {
		label := item.Find("i.b-fight-details__label").First()
		if label.Length() == 0 {
			return
		}
		name := strings.ToLower(htmlutil.Text(label))
		value := labeledValue(item, label)

		switch {
		case strings.Contains(name, "method:"):
			fight.Method = optional(value)
		case strings.Contains(name, "time format:"):
			fight.TimeFormat = optional(value)
		case strings.Contains(name, "round:"):
			fight.Round = parseCount(value)
		case strings.Contains(name, "time:"):
			fight.Time = optional(value)
		case strings.Contains(name, "referee:"):
			fight.Referee = optional(value)
		case strings.Contains(name, "details:"):
			fight.Details = optional(value)
		}
	})

	// Decision scorecards render as a bare paragraph instead of a labeled
	// item.
	if fight.Details == nil {
		doc.Find("p.b-fight-details__text").EachWithBreak(func(_ int, paragraph *goquery.Selection) bool {
			m := detailsLine.FindStringSubmatch(htmlutil.Text(paragraph))
			if m == nil {
				return true
			}
			if details := optional(strings.TrimSpace(m[1])); details != nil {
				fight.Details = details
				return false
			}
			return true
		})
	}

	if totals := extractTotals(doc); totals != nil {
		fight.Totals = totals
	}
	if rounds := extractRounds(doc); rounds != nil {
		fight.Rounds = rounds
	}

	return fight, nil
}

func extractTotals(doc *goquery.Document) []FighterStats {
	table := sectionTable(doc, "Totals")
	if table == nil {
		table = tableWithHeader(doc, "Fighter", "Sig. str.")
	}
	if table == nil {
		return nil
	}
	row := table.Find("tbody tr").First()
	if row.Length() == 0 {
		return nil
	}
	totals := extractStatsRow(row, "a")
	if totals == nil {
		return nil
	}

	sigTable := sectionTable(doc, "Significant Strikes")
	if sigTable == nil {
		sigTable = tableWithHeader(doc, "Head", "Body", "Leg")
	}
	if sigTable == nil {
		return totals
	}
	sigRow := sigTable.Find("tbody tr").First()
	if sigRow.Length() == 0 {
		return totals
	}
	cols := sigRow.Find("td")
	if cols.Length() < 9 {
		return totals
	}
	// The breakdown row lists the fighters in the same order as the totals
	// row.
	for i := range totals {
		applySigStrikes(&totals[i], cols, i)
	}
	return totals
}

// sectionTable finds the table a section heading introduces. The heading
// and its table usually sit in sibling sections, so look inside the
// matching section first, then across the siblings after it.
func sectionTable(doc *goquery.Document, heading string) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("section.b-fight-details__section").EachWithBreak(func(_ int, section *goquery.Selection) bool {
		if !strings.Contains(htmlutil.Text(section), heading) {
			return true
		}
		if inner := section.Find("table").First(); inner.Length() > 0 {
			table = inner
			return false
		}
		section.NextAll().EachWithBreak(func(_ int, sibling *goquery.Selection) bool {
			if goquery.NodeName(sibling) == "table" {
				table = sibling
				return false
			}
			if inner := sibling.Find("table").First(); inner.Length() > 0 {
				table = inner
				return false
			}
			return true
		})
		return false
	})
	return table
}

// tableWithHeader finds the first table whose header mentions every keyword.
func tableWithHeader(doc *goquery.Document, keywords ...string) *goquery.Selection {
	var table *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, candidate *goquery.Selection) bool {
		head := htmlutil.Text(candidate.Find("thead"))
		for _, keyword := range keywords {
			if !strings.Contains(head, keyword) {
				return true
			}
		}
		table = candidate
		return false
	})
	return table
}

// extractStatsRow reads one stats row: a fighter pair in the first cell and
// two stacked values in every stat cell after it.
func extractStatsRow(row *goquery.Selection, linkSelector string) []FighterStats {
	cols := row.Find("td")
	if cols.Length() < 10 {
		return nil
	}
	links := cols.Eq(0).Find(linkSelector)
	if links.Length() < 2 {
		return nil
	}

	stats := make([]FighterStats, 2)
	for i := range stats {
		anchor := links.Eq(i)
		stats[i].Name = htmlutil.Text(anchor)
		if fighterID, err := urlid.UFCStats(anchor.AttrOr("href", "")); err == nil {
			stats[i].ID = fighterID
		}
		stats[i].KD = parseCount(statText(cols.Eq(1), i))
		stats[i].SigStr = parseFraction(statText(cols.Eq(2), i))
		stats[i].SigStrPct = parsePercent(statText(cols.Eq(3), i))
		stats[i].TotalStr = parseFraction(statText(cols.Eq(4), i))
		stats[i].TD = parseFraction(statText(cols.Eq(5), i))
		stats[i].TDPct = parsePercent(statText(cols.Eq(6), i))
		stats[i].SubAtt = parseCount(statText(cols.Eq(7), i))
		stats[i].Rev = parseCount(statText(cols.Eq(8), i))
		stats[i].CtrlSeconds = parseClock(statText(cols.Eq(9), i))
	}
	return stats
}

// statText returns the idx'th stacked paragraph of a stats cell.
func statText(col *goquery.Selection, idx int) string {
	texts := col.Find("p.b-fight-details__table-text")
	if texts.Length() <= idx {
		return ""
	}
	return htmlutil.Text(texts.Eq(idx))
}

// applySigStrikes fills the significant strikes columns into a stats line.
// Column 1 repeats the sig. str. count and column 2 its accuracy; they stay
// separate from the totals-table fields so neither source overwrites the
// other.
func applySigStrikes(stats *FighterStats, cols *goquery.Selection, idx int) {
	stats.SigStrTotal = parseFraction(statText(cols.Eq(1), idx))
	stats.SigStrPctDetailed = parsePercent(statText(cols.Eq(2), idx))
	stats.Head = parseFraction(statText(cols.Eq(3), idx))
	stats.Body = parseFraction(statText(cols.Eq(4), idx))
	stats.Leg = parseFraction(statText(cols.Eq(5), idx))
	stats.Distance = parseFraction(statText(cols.Eq(6), idx))
	stats.Clinch = parseFraction(statText(cols.Eq(7), idx))
	stats.Ground = parseFraction(statText(cols.Eq(8), idx))
}

func extractRounds(doc *goquery.Document) []RoundStats {
	sections := perRoundSections(doc)
	if len(sections) == 0 {
		return nil
	}

	rounds := extractGeneralRounds(sections[0])
	if len(rounds) == 0 {
		return rounds
	}

	for _, section := range sections {
		table := section.Find("table.b-fight-details__table").First()
		if table.Length() == 0 {
			continue
		}
		head := htmlutil.Text(table.Find("thead.b-fight-details__table-head_rnd"))
		if strings.Contains(head, "Head") && strings.Contains(head, "Body") &&
			strings.Contains(head, "Leg") && strings.Contains(head, "Distance") {
			mergeSigStrikeRounds(rounds, table)
			break
		}
	}
	return rounds
}

// perRoundSections returns the collapsible "Per round" sections in document
// order. The first holds the general table, a later one the significant
// strikes breakdown.
func perRoundSections(doc *goquery.Document) []*goquery.Selection {
	var sections []*goquery.Selection
	doc.Find("section.b-fight-details__section").Each(func(_ int, section *goquery.Selection) {
		toggle := section.Find("a.b-fight-details__collapse-link_rnd").First()
		if toggle.Length() == 0 {
			return
		}
		if !strings.Contains(htmlutil.Text(toggle), "Per round") {
			return
		}
		sections = append(sections, section)
	})
	return sections
}

func extractGeneralRounds(section *goquery.Selection) []RoundStats {
	table := section.Find("table.b-fight-details__table").First()
	if table.Length() == 0 {
		return nil
	}
	if !strings.Contains(htmlutil.Text(table.Find("thead.b-fight-details__table-head_rnd")), "KD") {
		return nil
	}

	var rounds []RoundStats
	table.Find("thead.b-fight-details__table-row_type_head").Each(func(_ int, header *goquery.Selection) {
		number, ok := roundNumber(header)
		if !ok {
			return
		}
		row := roundDataRow(header)
		if row == nil {
			return
		}
		fighters := extractStatsRow(row, "a.b-link")
		if fighters == nil {
			return
		}
		rounds = append(rounds, RoundStats{Round: number, Fighters: fighters})
	})
	return rounds
}

func roundNumber(header *goquery.Selection) (int, bool) {
	m := roundLabel.FindStringSubmatch(htmlutil.Text(header))
	if m == nil {
		return 0, false
	}
	number, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return number, true
}

// roundDataRow walks the siblings after a "Round N" header to its data row,
// either a tbody wrapping it or a bare tr. The walk stops at the next round
// header.
func roundDataRow(header *goquery.Selection) *goquery.Selection {
	for sibling := header.Next(); sibling.Length() > 0; sibling = sibling.Next() {
		switch goquery.NodeName(sibling) {
		case "thead":
			if sibling.HasClass("b-fight-details__table-row_type_head") {
				return nil
			}
		case "tbody":
			if row := sibling.Find("tr").First(); row.Length() > 0 {
				return row
			}
		case "tr":
			return sibling
		}
	}
	return nil
}

// mergeSigStrikeRounds folds the per-round significant strikes table into
// already extracted rounds, matched by round number and fighter id. Rounds
// missing from the general table stay missing.
func mergeSigStrikeRounds(rounds []RoundStats, table *goquery.Selection) {
	table.Find("thead.b-fight-details__table-row_type_head").Each(func(_ int, header *goquery.Selection) {
		number, ok := roundNumber(header)
		if !ok {
			return
		}
		round := findRound(rounds, number)
		if round == nil {
			return
		}
		row := roundDataRow(header)
		if row == nil {
			return
		}
		cols := row.Find("td")
		if cols.Length() < 9 {
			return
		}
		links := cols.Eq(0).Find("a.b-link")
		if links.Length() < 2 {
			return
		}
		for i := 0; i < 2; i++ {
			fighterID, err := urlid.UFCStats(links.Eq(i).AttrOr("href", ""))
			if err != nil {
				continue
			}
			for j := range round.Fighters {
				if round.Fighters[j].ID == fighterID {
					applySigStrikes(&round.Fighters[j], cols, i)
					break
				}
			}
		}
	})
}

func findRound(rounds []RoundStats, number int) *RoundStats {
	for i := range rounds {
		if rounds[i].Round == number {
			return &rounds[i]
		}
	}
	return nil
}
