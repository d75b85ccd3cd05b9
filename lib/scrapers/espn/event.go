package espn

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
	"golang.org/x/text/unicode/norm"
)

// fighterPath marks the links that lead to a fighter's landing page.
const fighterPath = "/mma/fighter/_/id/"

var (
	espnTitleSuffix    = regexp.MustCompile(`\s*-\s*ESPN.*$`)
	fightResultsSuffix = regexp.MustCompile(`\s*Fight Results\s*$`)
	playerUID          = regexp.MustCompile(`~a:(\d+)`)
)

// ExtractEvent reads a fightcenter page: every fighter link on it plus the
// bouts in card order.
func ExtractEvent(doc *goquery.Document, link string) (Event, error) {
	id, err := urlid.ESPN(link)
	if err != nil {
		return Event{}, err
	}
	event := Event{ID: id, URL: link}

	if title := htmlutil.Text(doc.Find("title").First()); title != "" {
		name := espnTitleSuffix.ReplaceAllString(title, "")
		name = fightResultsSuffix.ReplaceAllString(name, "")
		if name = htmlutil.CleanText(name); name != "" {
			event.Name = &name
		}
	}

	event.FighterURLs = eventFighterURLs(doc)
	event.Fights = eventCard(doc)
	return event, nil
}

// eventFighterURLs gathers every fighter link on the page, preferring urls
// that carry the name slug over bare id links, one per fighter, sorted.
func eventFighterURLs(doc *goquery.Document) []string {
	byID := map[string]string{}
	record := func(link string) {
		id, err := urlid.ESPN(link)
		if err != nil {
			return
		}
		current, ok := byID[id]
		if !ok || (!hasNameSlug(current) && hasNameSlug(link)) {
			byID[id] = link
		}
	}

	doc.Find(`a[href*="` + fighterPath + `"]`).Each(func(_ int, a *goquery.Selection) {
		if href := strings.TrimSpace(a.AttrOr("href", "")); href != "" {
			record(absoluteURL(href))
		}
	})

	// competitor tiles sometimes carry the fighter only as a player uid
	doc.Find("[data-player-uid]").Each(func(_ int, el *goquery.Selection) {
		m := playerUID.FindStringSubmatch(el.AttrOr("data-player-uid", ""))
		if m == nil {
			return
		}
		href := strings.TrimSpace(el.AttrOr("href", ""))
		if goquery.NodeName(el) == "a" && strings.Contains(href, fighterPath) && strings.Contains(href, "/id/"+m[1]) {
			record(absoluteURL(href))
			return
		}
		record(DefaultBaseURL + fighterPath + m[1] + "/")
	})

	urls := make([]string, 0, len(byID))
	for _, u := range byID {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// hasNameSlug reports whether a fighter url carries the name segment after
// the id.
func hasNameSlug(link string) bool {
	parts := strings.Split(strings.TrimSuffix(link, "/"), "/")
	for i, part := range parts {
		if part == "id" && i+2 < len(parts) && parts[i+2] != "" {
			return true
		}
	}
	return false
}

// normalizeSegment folds the card headers onto the three segment names
// espn uses; anything else keeps its printed form.
func normalizeSegment(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "main card"):
		return "Main Card"
	case strings.Contains(lower, "early") && strings.Contains(lower, "prelim"):
		return "Early Prelims"
	case strings.Contains(lower, "prelim"):
		return "Prelims"
	}
	if title == "" {
		return "Unknown"
	}
	return title
}

// eventCard walks the main column in page order, tracking the card header
// above each fight strip. Strips nest wrappers with the same classes, so
// a bout is only taken once per segment.
func eventCard(doc *goquery.Document) []Bout {
	scope := doc.Find("div.PageLayout__Main").First()
	if scope.Length() == 0 {
		scope = doc.Selection
	}

	bouts := []Bout{}
	current := "Unknown"
	perSegment := map[string]int{}
	seenPairs := map[string]struct{}{}

	scope.Find("header, div").Each(func(_ int, el *goquery.Selection) {
		class := el.AttrOr("class", "")
		if goquery.NodeName(el) == "header" && strings.Contains(class, "Card__Header") {
			if title := htmlutil.Text(el.Find(".Card__Header__Title").First()); title != "" {
				current = normalizeSegment(title)
			}
			return
		}
		if !strings.Contains(class, "MMAFightCard") && !strings.Contains(class, "Gamestrip") {
			return
		}
		ids, names := boutFighters(el)
		if len(ids) < 2 {
			return
		}
		key := current + "|" + ids[0] + "|" + ids[1]
		if _, dup := seenPairs[key]; dup {
			return
		}
		seenPairs[key] = struct{}{}
		bouts = append(bouts, Bout{
			FighterIDs:   ids,
			FighterNames: names,
			CardSegment:  current,
			BoutOrder:    perSegment[current],
		})
		perSegment[current]++
	})
	return bouts
}

func boutFighters(card *goquery.Selection) (ids, names []string) {
	seen := map[string]struct{}{}
	card.Find(`a[href*="` + fighterPath + `"]`).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := absoluteURL(strings.TrimSpace(a.AttrOr("href", "")))
		id, err := urlid.ESPN(href)
		if err != nil {
			return true
		}
		if _, dup := seen[id]; dup {
			return true
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		names = append(names, fighterDisplayName(a, href))
		return len(ids) < 2
	})
	return ids, names
}

// competitor name markup varies across espn layouts; try the specific
// classes first and degrade to the url slug.
var competitorNameSelectors = []string{
	".MMACompetitor__Name",
	".Competitor__Name",
	".MMACompetitor__Detail h2",
	".Competitor__Detail h2",
	"h2",
	"h3",
	".name",
	".player__name",
}

func fighterDisplayName(anchor *goquery.Selection, href string) string {
	container := anchor.ParentsFiltered(".MMACompetitor, .Competitor").First()
	if container.Length() > 0 {
		for _, selector := range competitorNameSelectors {
			text := htmlutil.Text(container.Find(selector).First())
			if text != "" && !isProfileText(text) {
				return text
			}
		}
	}
	if text := htmlutil.Text(anchor); text != "" && !isProfileText(text) {
		return text
	}
	return slugName(href)
}

func isProfileText(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "full profile") || lower == "profile"
}

// slugName rebuilds a readable name from the url slug as a last resort.
func slugName(link string) string {
	parts := strings.Split(strings.TrimSuffix(link, "/"), "/")
	for i, part := range parts {
		if part != "id" || i+2 >= len(parts) {
			continue
		}
		words := strings.Split(parts[i+2], "-")
		for j, word := range words {
			if word != "" {
				words[j] = strings.ToUpper(word[:1]) + word[1:]
			}
		}
		return strings.Join(words, " ")
	}
	return ""
}

// MarkFightOfTheNight flags the bout named by the schedule's bonus text.
// Both fighters' last names have to appear, accent-insensitively.
func MarkFightOfTheNight(bouts []Bout, fotn string) {
	needle := strings.ToLower(stripAccents(fotn))
	if needle == "" {
		return
	}
	for i := range bouts {
		if len(bouts[i].FighterNames) < 2 {
			continue
		}
		matched := true
		for _, name := range bouts[i].FighterNames {
			last := lastName(name)
			if last == "" || !strings.Contains(needle, last) {
				matched = false
				break
			}
		}
		if matched {
			bouts[i].IsFOTN = true
		}
	}
}

func lastName(name string) string {
	fields := strings.Fields(strings.ToLower(stripAccents(name)))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// stripAccents decomposes and drops combining marks, so "José" matches
// "Jose".
func stripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	out := make([]rune, 0, len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
