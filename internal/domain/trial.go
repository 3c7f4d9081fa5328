package domain

import "fmt"

type PairType string
type Role string

const (
	PairTypeRepeat PairType = "repeat"
	PairTypeLure   PairType = "lure"
	PairTypeFoil   PairType = "foil"

	RoleFirst  Role = "first"
	RoleSecond Role = "second"
	RoleNone   Role = "none"
)

// NoLag marks first occurrences and foils.
const NoLag = -1

func (p PairType) Valid() bool {
	switch p {
	case PairTypeRepeat, PairTypeLure, PairTypeFoil:
		return true
	default:
		return false
	}
}

func ParsePairType(raw string) (PairType, error) {
	pairType := PairType(raw)
	if !pairType.Valid() {
		return "", fmt.Errorf("%w: unknown pair type %q", ErrInvalidInput, raw)
	}
	return pairType, nil
}

// Repetition returns the short role label used in debug listings.
func (r Role) Repetition() string {
	switch r {
	case RoleFirst:
		return "a"
	case RoleSecond:
		return "b"
	default:
		return "x"
	}
}

type Slot struct {
	Position   int
	StimNumber int
	PairType   PairType
	Role       Role
	Lag        int
	assigned   bool
}

func (s Slot) Assigned() bool {
	return s.assigned
}

// WireLag is the lag as carried on the wire: only second occurrences keep it.
func (s Slot) WireLag() int {
	if s.Role != RoleSecond {
		return NoLag
	}
	return s.Lag
}
