package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cliffdoyle/srcomp-engine/internal/matchperiod"
)

// PlanParseError reports a malformed declarative-plan document: a bad range
// expression, a missing required field, or an invalid enum value.
type PlanParseError struct {
	Context string
	Reason  string
}

func (e *PlanParseError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Context, e.Reason)
}

// ParseRanges parses a range expression such as "1-4,6,0" into the set of
// match numbers it names. Grammar: comma-separated tokens, each either a
// bare non-negative integer or a "lo-hi" pair with lo <= hi; whitespace
// around commas is trimmed. An empty string, a token with a missing side of
// a dash, a doubled dash, or any non-digit content is a PlanParseError.
func ParseRanges(expr string) (map[matchperiod.MatchNumber]bool, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &PlanParseError{Context: "range expression", Reason: "empty"}
	}

	result := make(map[matchperiod.MatchNumber]bool)
	for _, rawToken := range strings.Split(expr, ",") {
		token := strings.TrimSpace(rawToken)
		if token == "" {
			return nil, &PlanParseError{Context: "range expression", Reason: fmt.Sprintf("empty token in %q", expr)}
		}

		if !strings.Contains(token, "-") {
			n, err := parseDigits(token)
			if err != nil {
				return nil, &PlanParseError{Context: "range expression", Reason: err.Error()}
			}
			result[matchperiod.MatchNumber(n)] = true
			continue
		}

		parts := strings.SplitN(token, "-", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], "-") {
			return nil, &PlanParseError{Context: "range expression", Reason: fmt.Sprintf("malformed range %q", token)}
		}

		lo, err := parseDigits(parts[0])
		if err != nil {
			return nil, &PlanParseError{Context: "range expression", Reason: err.Error()}
		}
		hi, err := parseDigits(parts[1])
		if err != nil {
			return nil, &PlanParseError{Context: "range expression", Reason: err.Error()}
		}
		if lo > hi {
			return nil, &PlanParseError{Context: "range expression", Reason: fmt.Sprintf("range %q has lo > hi", token)}
		}
		for n := lo; n <= hi; n++ {
			result[matchperiod.MatchNumber(n)] = true
		}
	}
	return result, nil
}

func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit token %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return n, nil
}
