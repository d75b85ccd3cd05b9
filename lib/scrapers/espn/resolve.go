package espn

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
)

// Kind names a bio field the heuristic resolver can hunt for.
type Kind string

const (
	KindRecord       Kind = "record"
	KindHeightWeight Kind = "height-weight"
	KindHeight       Kind = "height"
	KindWeight       Kind = "weight"
	KindReach        Kind = "reach"
	KindBirthdate    Kind = "birthdate"
	KindWeightClass  Kind = "weight-class"
	KindCountry      Kind = "country"
)

// Kinds lists every resolvable kind.
var Kinds = []Kind{
	KindRecord, KindHeightWeight, KindHeight, KindWeight,
	KindReach, KindBirthdate, KindWeightClass, KindCountry,
}

// Candidate is one possible value for a field, with the text it was seen
// in and how much the match is trusted.
type Candidate struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
	Snippet    string  `json:"snippet"`
}

var (
	recordText       = regexp.MustCompile(`\b\d+-\d+-\d+\b`)
	heightText       = regexp.MustCompile(`\d+'\s?\d+"`)
	weightText       = regexp.MustCompile(`\d+(?:\.\d+)?\s*lbs`)
	heightWeightText = regexp.MustCompile(`\d+'\s?\d+",\s*\d+(?:\.\d+)?\s*lbs`)
	reachText        = regexp.MustCompile(`\d+(?:\.\d+)?"`)
	birthdateText    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	divisionText     = regexp.MustCompile(`(?i)\b(?:women's\s+)?(?:atomweight|strawweight|flyweight|bantamweight|featherweight|lightweight|welterweight|middleweight|light heavyweight|heavyweight)\b`)
)

// Resolve hunts the document for plausible values of one bio field. Every
// match comes back, highest confidence first; ties keep page order. No
// match means an empty list, never an error.
func Resolve(doc *goquery.Document, kind Kind) []Candidate {
	bio := bioItems(doc)
	stats := statBlockItems(doc)

	candidates := []Candidate{}
	switch kind {
	case KindRecord:
		candidates = append(candidates, labelPatternMatches(stats, recordText, 0.95, "w-l-d", "wins-losses-draws")...)
		candidates = append(candidates, patternMatches(stats, recordText, 0.7)...)
		candidates = append(candidates, headerMatches(doc, recordText, 0.5)...)
	case KindHeightWeight:
		candidates = append(candidates, labelMatches(bio, 0.95, "ht/wt")...)
		candidates = append(candidates, patternMatches(bio, heightWeightText, 0.6)...)
	case KindHeight:
		candidates = append(candidates, labelMatches(bio, 0.95, "height")...)
		candidates = append(candidates, splitMatches(bio, 0.9, "ht/wt", 0)...)
		candidates = append(candidates, patternMatches(bio, heightText, 0.6)...)
	case KindWeight:
		candidates = append(candidates, weightLabelMatches(bio, 0.95)...)
		candidates = append(candidates, splitMatches(bio, 0.9, "ht/wt", 1)...)
		candidates = append(candidates, patternMatches(bio, weightText, 0.6)...)
	case KindReach:
		candidates = append(candidates, reachLabelMatches(bio, 0.95)...)
		candidates = append(candidates, patternMatches(bio, reachText, 0.5)...)
	case KindBirthdate:
		candidates = append(candidates, labelPatternMatches(bio, birthdateText, 0.95, "birthdate")...)
		candidates = append(candidates, patternMatches(bio, birthdateText, 0.6)...)
	case KindWeightClass:
		candidates = append(candidates, labelMatches(bio, 0.95, "wt class", "weight class")...)
		candidates = append(candidates, headerMatches(doc, divisionText, 0.55)...)
	case KindCountry:
		candidates = append(candidates, labelMatches(bio, 0.95, "country")...)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

func labelMatches(items []labeledItem, confidence float64, keywords ...string) []Candidate {
	var out []Candidate
	for _, item := range items {
		for _, keyword := range keywords {
			if strings.Contains(item.label, keyword) {
				out = append(out, Candidate{Value: item.value, Confidence: confidence, Snippet: item.snippet})
				break
			}
		}
	}
	return out
}

// labelPatternMatches wants both the label and a value that fits the
// pattern; a placeholder like "N/A" under the right label is not a value.
func labelPatternMatches(items []labeledItem, pattern *regexp.Regexp, confidence float64, keywords ...string) []Candidate {
	var out []Candidate
	for _, item := range items {
		for _, keyword := range keywords {
			if !strings.Contains(item.label, keyword) {
				continue
			}
			if match := pattern.FindString(item.value); match != "" {
				out = append(out, Candidate{Value: match, Confidence: confidence, Snippet: item.snippet})
			}
			break
		}
	}
	return out
}

// weightLabelMatches wants the standalone weight item; "weight class"
// items belong to another kind.
func weightLabelMatches(items []labeledItem, confidence float64) []Candidate {
	var out []Candidate
	for _, item := range items {
		if !strings.Contains(item.label, "weight") || strings.Contains(item.label, "class") {
			continue
		}
		out = append(out, Candidate{Value: item.value, Confidence: confidence, Snippet: item.snippet})
	}
	return out
}

func reachLabelMatches(items []labeledItem, confidence float64) []Candidate {
	var out []Candidate
	for _, item := range items {
		if !strings.Contains(item.label, "reach") {
			continue
		}
		value := htmlutil.CleanText(strings.ReplaceAll(item.value, `"`, ""))
		if value == "" {
			continue
		}
		out = append(out, Candidate{Value: value, Confidence: confidence, Snippet: item.snippet})
	}
	return out
}

// splitMatches takes one half of a comma-joined item like HT/WT.
func splitMatches(items []labeledItem, confidence float64, keyword string, part int) []Candidate {
	var out []Candidate
	for _, item := range items {
		if !strings.Contains(item.label, keyword) {
			continue
		}
		parts := strings.SplitN(item.value, ",", 2)
		if len(parts) != 2 {
			continue
		}
		value := htmlutil.CleanText(parts[part])
		if value == "" {
			continue
		}
		out = append(out, Candidate{Value: value, Confidence: confidence, Snippet: item.snippet})
	}
	return out
}

func patternMatches(items []labeledItem, pattern *regexp.Regexp, confidence float64) []Candidate {
	var out []Candidate
	for _, item := range items {
		match := pattern.FindString(item.snippet)
		if match == "" {
			continue
		}
		out = append(out, Candidate{Value: match, Confidence: confidence, Snippet: item.snippet})
	}
	return out
}

// headerMatches scans the page title and headline, the lowest-trust
// region.
func headerMatches(doc *goquery.Document, pattern *regexp.Regexp, confidence float64) []Candidate {
	var out []Candidate
	doc.Find("title, h1").Each(func(_ int, sel *goquery.Selection) {
		text := htmlutil.Text(sel)
		match := pattern.FindString(text)
		if match == "" {
			return
		}
		out = append(out, Candidate{Value: match, Confidence: confidence, Snippet: text})
	})
	return out
}
