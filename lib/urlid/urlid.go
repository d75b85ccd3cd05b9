// Package urlid derives stable entity identifiers from canonical
// source urls. Two urls pointing at the same entity always yield the
// same id, so callers must pass the canonical non-redirected,
// non-query-decorated form.
package urlid

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ErrInvalidURL = errors.New("url does not match the expected entity path shape")

var ufcstatsToken = regexp.MustCompile(`^[0-9a-zA-Z]+$`)

// UFCStats extracts the opaque token from a ufcstats.com entity url,
// e.g. "http://ufcstats.com/fighter-details/1338839efad0be88". The
// scheme and host are ignored so http/https and www variants of the
// same page derive the same id.
func UFCStats(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) != 2 {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	switch segments[0] {
	case "fighter-details", "event-details", "fight-details":
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	if !ufcstatsToken.MatchString(segments[1]) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return segments[1], nil
}

var espnID = regexp.MustCompile(`/id/(\d+)(?:/|$)`)

// ESPN extracts the numeric id from an espn.com entity url, e.g.
// "https://www.espn.com/mma/fighter/_/id/3022677/israel-adesanya" or
// "https://www.espn.com/mma/fightcenter/_/id/600040999/league/ufc".
func ESPN(raw string) (string, error) {
	match := espnID.FindStringSubmatch(raw)
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return match[1], nil
}
