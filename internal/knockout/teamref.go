package knockout

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidSeedError is returned when a "S{n}" team reference names a seed
// outside [1, number of seeds].
type InvalidSeedError struct {
	Ref string
	N   int
	Max int
}

func (e *InvalidSeedError) Error() string {
	return fmt.Sprintf("team reference %q: seed %d out of range [1,%d]", e.Ref, e.N, e.Max)
}

// InvalidReferenceError is returned for any other malformed or
// out-of-bounds team reference: bad syntax, a round/match pair that isn't
// an earlier already-defined match, or a position beyond that match's
// team count.
type InvalidReferenceError struct {
	Ref    string
	Reason string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("team reference %q: %s", e.Ref, e.Reason)
}

type refKind int

const (
	refSeed refKind = iota
	refPosition
)

type teamRef struct {
	kind  refKind
	seed  int // 1-based, refSeed only
	round int
	match int
	pos   int // 0-based, refPosition only
}

// parseTeamRef parses one non-null team-reference string: "S{n}" for a
// seed, the three-digit legacy "RMP" form, or the "R{r}M{m}P{p}" form, for
// a reference to round r, round-match m, resolved position p (0-based) of
// an earlier match.
func parseTeamRef(raw string) (teamRef, error) {
	if strings.HasPrefix(raw, "S") && len(raw) > 1 && allDigits(raw[1:]) {
		n, err := strconv.Atoi(raw[1:])
		if err != nil {
			return teamRef{}, &InvalidReferenceError{Ref: raw, Reason: "malformed seed number"}
		}
		return teamRef{kind: refSeed, seed: n}, nil
	}

	if allDigits(raw) {
		if len(raw) != 3 {
			return teamRef{}, &InvalidReferenceError{Ref: raw, Reason: "numeric reference must be exactly three digits (RMP) or use the S{n}/R{r}M{m}P{p} forms"}
		}
		r, _ := strconv.Atoi(raw[0:1])
		m, _ := strconv.Atoi(raw[1:2])
		p, _ := strconv.Atoi(raw[2:3])
		return teamRef{kind: refPosition, round: r, match: m, pos: p}, nil
	}

	if strings.HasPrefix(raw, "R") {
		mIdx := strings.Index(raw, "M")
		pIdx := strings.Index(raw, "P")
		if mIdx < 1 || pIdx < mIdx+2 {
			return teamRef{}, &InvalidReferenceError{Ref: raw, Reason: "malformed R{r}M{m}P{p} reference"}
		}
		rPart := raw[1:mIdx]
		mPart := raw[mIdx+1 : pIdx]
		pPart := raw[pIdx+1:]
		if !allDigits(rPart) || !allDigits(mPart) || !allDigits(pPart) {
			return teamRef{}, &InvalidReferenceError{Ref: raw, Reason: "R{r}M{m}P{p} fields must be decimal digits"}
		}
		r, _ := strconv.Atoi(rPart)
		m, _ := strconv.Atoi(mPart)
		p, _ := strconv.Atoi(pPart)
		return teamRef{kind: refPosition, round: r, match: m, pos: p}, nil
	}

	return teamRef{}, &InvalidReferenceError{Ref: raw, Reason: "unrecognised team reference syntax"}
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
