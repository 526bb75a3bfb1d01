package seasonjoin

import (
	"fmt"
	"strings"
)

// MalformedInputError is returned for a transfer season that is not of
// the form "YY/YY".
type MalformedInputError struct {
	Input  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed season %q: %s", e.Input, e.Reason)
}

const DefaultCentury = 2000

// SeasonParser converts two-digit transfer seasons, Century is added to
// the first year ("10/11" is 2010 under the default of 2000).
type SeasonParser struct {
	Century int
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func parseYear(s string) (int, bool) {
	if len(s) != 2 || !isDigit(s[0]) || !isDigit(s[1]) {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

// PreviousSeason returns the season before a transfer window in the
// stats tables' format: "10/11" -> "2009-2010".
func (p SeasonParser) PreviousSeason(transferSeason string) (string, error) {
	century := p.Century
	if century == 0 {
		century = DefaultCentury
	}

	trimmed := strings.TrimSpace(transferSeason)
	first, second, found := strings.Cut(trimmed, "/")
	if !found {
		return "", &MalformedInputError{Input: transferSeason, Reason: "expected YY/YY"}
	}
	start, ok := parseYear(strings.TrimSpace(first))
	if !ok {
		return "", &MalformedInputError{Input: transferSeason, Reason: "start year is not two digits"}
	}
	if _, ok := parseYear(strings.TrimSpace(second)); !ok {
		return "", &MalformedInputError{Input: transferSeason, Reason: "end year is not two digits"}
	}

	year := century + start
	return fmt.Sprintf("%d-%d", year-1, year), nil
}

func PreviousSeason(transferSeason string) (string, error) {
	return SeasonParser{}.PreviousSeason(transferSeason)
}
