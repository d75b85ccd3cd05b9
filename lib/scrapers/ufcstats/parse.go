package ufcstats

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
)

var (
	fractionPattern = regexp.MustCompile(`(\d+)(?:\s+of\s+(\d+))?`)
	percentPattern  = regexp.MustCompile(`(\d+)%`)
	clockPattern    = regexp.MustCompile(`(\d+):(\d+)`)
	recordPattern   = regexp.MustCompile(`Record:\s*(\d+)-(\d+)-(\d+)(?:\s*\((\d+)\s*NC\))?`)
)

// absent reports whether a stat cell holds a placeholder instead of a value.
// The site renders runs of dashes ("--", "---") for stats it never recorded.
func absent(text string) bool {
	if text == "" {
		return true
	}
	for _, r := range text {
		if r != '-' {
			return false
		}
	}
	return true
}

// optional returns the text as a value, or nil when the cell is a
// placeholder.
func optional(text string) *string {
	if absent(text) {
		return nil
	}
	return &text
}

// parseFraction reads an "X of Y" strike count. A bare "X" is a count
// rendered without an attempt column, so both sides carry it.
func parseFraction(text string) *Fraction {
	text = strings.TrimSpace(text)
	if absent(text) {
		return nil
	}
	m := fractionPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	landed, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	attempted := landed
	if m[2] != "" {
		attempted, err = strconv.Atoi(m[2])
		if err != nil {
			return nil
		}
	}
	if landed > attempted {
		slog.Warn("discarding strike count with more landed than attempted", "text", text)
		return nil
	}
	return &Fraction{Landed: landed, Attempted: attempted}
}

func parsePercent(text string) *int {
	text = strings.TrimSpace(text)
	if absent(text) {
		return nil
	}
	m := percentPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	if value > 100 {
		slog.Warn("discarding percentage above 100", "text", text)
		return nil
	}
	return &value
}

// parseClock converts an MM:SS control time to seconds. "0:00" is a real
// zero; dashes and empty cells mean the stat was never recorded.
func parseClock(text string) *int {
	text = strings.TrimSpace(text)
	if absent(text) {
		return nil
	}
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	total := minutes*60 + seconds
	return &total
}

// parseCount reads a plain digit cell like knockdowns or reversals.
func parseCount(text string) *int {
	text = strings.TrimSpace(text)
	if absent(text) {
		return nil
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &value
}

func parseDecimal(text string) *float64 {
	text = strings.TrimSpace(text)
	if absent(text) {
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil
	}
	return &value
}

// parseRecord reads the "Record: W-L-D" title suffix, with an optional
// "(N NC)" no-contest tail.
func parseRecord(text string) *Record {
	m := recordPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	wins, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	losses, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	draws, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}
	record := Record{Wins: wins, Losses: losses, Draws: draws}
	if m[4] != "" {
		nc, err := strconv.Atoi(m[4])
		if err == nil {
			record.NoContests = nc
		}
	}
	return &record
}

// labeledValue strips the "Label:" element's text out of its parent item,
// leaving just the value.
func labeledValue(item, label *goquery.Selection) string {
	return strings.TrimSpace(strings.Replace(htmlutil.Text(item), htmlutil.Text(label), "", 1))
}
