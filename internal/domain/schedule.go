package domain

import (
	"fmt"
	"strings"
)

// MaxStimNumber keeps stim numbers inside one 100-wide wire range.
const MaxStimNumber = 99

type LagBin struct {
	Name  string
	Count int
	Lags  []int
}

type Schedule struct {
	Name      string
	Bins      []LagBin
	PairTypes []PairType
	FoilCount int
}

func LagRange(lo, hi int) []int {
	if hi < lo {
		return nil
	}

	lags := make([]int, 0, hi-lo+1)
	for lag := lo; lag <= hi; lag++ {
		lags = append(lags, lag)
	}
	return lags
}

func DefaultSchedule() Schedule {
	return Schedule{
		Name: "default",
		Bins: []LagBin{
			{Name: "zero", Count: 8, Lags: LagRange(0, 0)},
			{Name: "short", Count: 28, Lags: LagRange(1, 9)},
			{Name: "medium", Count: 14, Lags: LagRange(20, 80)},
			{Name: "long", Count: 14, Lags: LagRange(120, 180)},
		},
		PairTypes: []PairType{PairTypeRepeat, PairTypeLure},
		FoilCount: 64,
	}
}

// PairsPerType is the number of pairs every pair type receives.
func (s Schedule) PairsPerType() int {
	total := 0
	for _, bin := range s.Bins {
		total += bin.Count
	}
	return total
}

func (s Schedule) TotalTrials() int {
	return s.FoilCount + 2*len(s.PairTypes)*s.PairsPerType()
}

func (s Schedule) Validate() error {
	if len(s.Bins) == 0 {
		return fmt.Errorf("%w: at least one lag bin is required", ErrInvalidSchedule)
	}
	if len(s.PairTypes) == 0 {
		return fmt.Errorf("%w: at least one pair type is required", ErrInvalidSchedule)
	}

	seen := make(map[PairType]struct{}, len(s.PairTypes))
	for _, pairType := range s.PairTypes {
		if pairType != PairTypeRepeat && pairType != PairTypeLure {
			return fmt.Errorf("%w: unsupported pair type %q", ErrInvalidSchedule, pairType)
		}
		if _, ok := seen[pairType]; ok {
			return fmt.Errorf("%w: duplicate pair type %q", ErrInvalidSchedule, pairType)
		}
		seen[pairType] = struct{}{}
	}

	for i, bin := range s.Bins {
		label := binLabel(i, bin)
		if bin.Count < 0 {
			return fmt.Errorf("%w: bin %s has negative count %d", ErrInvalidSchedule, label, bin.Count)
		}
		if len(bin.Lags) == 0 {
			return fmt.Errorf("%w: bin %s has no allowed lags", ErrInvalidSchedule, label)
		}
		for _, lag := range bin.Lags {
			if lag < 0 {
				return fmt.Errorf("%w: bin %s has negative lag %d", ErrInvalidSchedule, label, lag)
			}
		}
	}

	if s.FoilCount < 0 {
		return fmt.Errorf("%w: foil count %d is negative", ErrInvalidSchedule, s.FoilCount)
	}
	if s.FoilCount > MaxStimNumber {
		return fmt.Errorf("%w: foil count %d exceeds %d", ErrInvalidSchedule, s.FoilCount, MaxStimNumber)
	}
	if pairs := s.PairsPerType(); pairs > MaxStimNumber {
		return fmt.Errorf("%w: %d pairs per type exceeds %d", ErrInvalidSchedule, pairs, MaxStimNumber)
	}

	return nil
}

// BinIndexForLag returns the first bin allowing lag, or -1.
func (s Schedule) BinIndexForLag(lag int) int {
	for i, bin := range s.Bins {
		for _, allowed := range bin.Lags {
			if allowed == lag {
				return i
			}
		}
	}
	return -1
}

func binLabel(index int, bin LagBin) string {
	if strings.TrimSpace(bin.Name) == "" {
		return fmt.Sprintf("#%d", index)
	}
	return fmt.Sprintf("#%d (%s)", index, bin.Name)
}
