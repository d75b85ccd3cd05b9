package espn

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

var (
	heightWeightSplit = regexp.MustCompile(`^([^,]+),\s*(.+)$`)
	birthdateLead     = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4})`)
	parenAge          = regexp.MustCompile(`\((\d+)\)`)
)

// ExtractProfile reads the identity block from a fighter's landing page.
func ExtractProfile(doc *goquery.Document, link string) (Profile, error) {
	id, err := urlid.ESPN(link)
	if err != nil {
		return Profile{}, err
	}
	profile := Profile{ID: id, URL: link}

	if slug := lastPathSegment(link); slug != "" {
		profile.NameSlug = &slug
	}
	if title := htmlutil.Text(doc.Find("title").First()); title != "" {
		name := title
		if cut := strings.Index(name, "("); cut >= 0 {
			name = name[:cut]
		}
		if name = htmlutil.CleanText(name); name != "" {
			profile.Name = &name
		}
	}
	profile.FightingStyle = fightingStyle(doc)
	return profile, nil
}

func lastPathSegment(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	return parts[len(parts)-1]
}

// Table chrome sometimes leaks into the style column; these values mean
// the row carried no real style.
var invalidStyles = map[string]struct{}{
	"": {}, "-": {}, "Height": {}, "Weight": {}, "Fighter": {},
}

func fightingStyle(doc *goquery.Document) *string {
	var style *string
	doc.Find("table.Table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		headers := tableHeaders(table)
		column := -1
		for i, header := range headers {
			if header == "Fighting Style" {
				column = i
			}
		}
		if column < 0 {
			return true
		}
		table.Find("tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.Find("td")
			if cells.Length() < len(headers) {
				return true
			}
			value := htmlutil.Text(cells.Eq(column))
			if _, bad := invalidStyles[value]; bad {
				return true
			}
			style = &value
			return false
		})
		return false
	})
	return style
}

func tableHeaders(table *goquery.Selection) []string {
	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, htmlutil.Text(th))
	})
	return headers
}

// ExtractBio reads the structured bio card and the record stat block.
func ExtractBio(doc *goquery.Document, link string) (Bio, error) {
	if _, err := urlid.ESPN(link); err != nil {
		return Bio{}, err
	}
	var bio Bio
	for _, item := range bioItems(doc) {
		value := item.value
		switch {
		case strings.Contains(item.label, "country"):
			bio.Country = &value
		case strings.Contains(item.label, "wt class"), strings.Contains(item.label, "weight class"):
			bio.WeightClass = &value
		case strings.Contains(item.label, "ht/wt"), strings.Contains(item.label, "height"):
			if m := heightWeightSplit.FindStringSubmatch(value); m != nil {
				height := htmlutil.CleanText(m[1])
				weight := htmlutil.CleanText(m[2])
				bio.Height = &height
				bio.Weight = &weight
			} else {
				bio.HeightWeight = &value
			}
		case strings.Contains(item.label, "birthdate"):
			if m := birthdateLead.FindStringSubmatch(value); m != nil {
				bio.Birthdate = &m[1]
			}
			if m := parenAge.FindStringSubmatch(value); m != nil {
				if age, err := strconv.Atoi(m[1]); err == nil {
					bio.Age = &age
				}
			}
		case strings.Contains(item.label, "team"):
			bio.Team = &value
		case strings.Contains(item.label, "nickname"):
			bio.Nickname = &value
		case strings.Contains(item.label, "stance"):
			bio.Stance = &value
		case strings.Contains(item.label, "reach"):
			if reach := htmlutil.CleanText(strings.ReplaceAll(value, `"`, "")); reach != "" {
				bio.Reach = &reach
			}
		}
	}
	for _, item := range statBlockItems(doc) {
		value := item.value
		switch {
		case strings.Contains(item.label, "w-l-d"), strings.Contains(item.label, "wins-losses-draws"):
			bio.Record = &value
		case strings.Contains(item.label, "(t)ko"), strings.Contains(item.label, "knockout"):
			bio.KORecord = &value
		case strings.Contains(item.label, "sub"):
			bio.SubRecord = &value
		}
	}
	return bio, nil
}

// labeledItem is one label/value pair from the bio card or stat block.
// Labels come back lowercased; the snippet keeps both halves readable for
// the heuristic resolver.
type labeledItem struct {
	label   string
	value   string
	snippet string
}

func bioItems(doc *goquery.Document) []labeledItem {
	var items []labeledItem
	doc.Find("section.Card.Bio div.Bio__Item").Each(func(_ int, item *goquery.Selection) {
		labelSel := item.Find("span.Bio__Label").First()
		if labelSel.Length() == 0 {
			return
		}
		label := htmlutil.Text(labelSel)
		value := htmlutil.Text(item.Find("span.dib.flex-uniform").First())
		if value == "" {
			// older layouts drop the value class; take whatever text
			// follows the label
			value = htmlutil.CleanText(strings.TrimPrefix(htmlutil.Text(item), label))
		}
		if label == "" || value == "" {
			return
		}
		items = append(items, labeledItem{
			label:   strings.ToLower(label),
			value:   value,
			snippet: label + " " + value,
		})
	})
	return items
}

func statBlockItems(doc *goquery.Document) []labeledItem {
	var items []labeledItem
	doc.Find("aside.StatBlock div.StatBlockInner").Each(func(_ int, block *goquery.Selection) {
		label := htmlutil.Text(block.Find(".StatBlockInner__Label").First())
		value := htmlutil.Text(block.Find(".StatBlockInner__Value").First())
		if label == "" || value == "" {
			return
		}
		items = append(items, labeledItem{
			label:   strings.ToLower(label),
			value:   value,
			snippet: label + " " + value,
		})
	})
	return items
}
