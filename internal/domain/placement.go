package domain

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
)

type PlacementEngine struct {
	rng      *rand.Rand
	logger   *zap.Logger
	counters map[PairType]int
}

func NewPlacementEngine(rng *rand.Rand, logger *zap.Logger) *PlacementEngine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PlacementEngine{rng: rng, logger: logger}
}

// Place fills every pair slot of a schedule-sized sequence. Foil slots are
// left free for FillFoils.
func (e *PlacementEngine) Place(schedule Schedule) (*SequenceBuilder, error) {
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	builder := NewSequenceBuilder(schedule.TotalTrials())
	e.counters = make(map[PairType]int, len(schedule.PairTypes))

	for binIndex, bin := range schedule.Bins {
		candidates := slices.Clone(bin.Lags)
		for range bin.Count {
			for _, pairType := range schedule.PairTypes {
				e.counters[pairType]++
				stimNumber := e.counters[pairType]

				var placed bool
				var err error
				candidates, placed, err = e.placePair(builder, candidates, pairType, stimNumber)
				if err != nil {
					return nil, err
				}
				if !placed {
					return nil, &PlacementExhaustedError{
						PairType:   pairType,
						Bin:        bin.Name,
						BinIndex:   binIndex,
						StimNumber: stimNumber,
						Unassigned: builder.Unassigned(),
					}
				}
			}
		}
	}

	return builder, nil
}

func (e *PlacementEngine) placePair(builder *SequenceBuilder, candidates []int, pairType PairType, stimNumber int) ([]int, bool, error) {
	e.logger.Debug("placing pair", zap.String("pair_type", string(pairType)), zap.Int("stim_number", stimNumber))

	for len(candidates) > 0 {
		pick := e.rng.IntN(len(candidates))
		lag := candidates[pick]

		starts := builder.PairStarts(lag)
		if len(starts) == 0 {
			e.logger.Debug("no room for lag", zap.Int("lag", lag))
			candidates = slices.Delete(candidates, pick, pick+1)
			continue
		}

		start := starts[e.rng.IntN(len(starts))]
		if err := builder.AssignPair(start, lag, stimNumber, pairType); err != nil {
			return candidates, false, err
		}
		e.logger.Debug("placed pair",
			zap.Int("start", start),
			zap.Int("end", start+lag+1),
			zap.Int("lag", lag))
		return candidates, true, nil
	}

	return candidates, false, nil
}

// FillFoils assigns a shuffled 1..foilCount to every slot still free.
func FillFoils(builder *SequenceBuilder, foilCount int, rng *rand.Rand) error {
	free := builder.FreePositions()
	if len(free) != foilCount {
		return fmt.Errorf("%w: %d free slots for %d foils", ErrFoilCountMismatch, len(free), foilCount)
	}

	for i, stimNumber := range rng.Perm(foilCount) {
		if err := builder.Assign(free[i], stimNumber+1, PairTypeFoil, RoleNone, NoLag); err != nil {
			return err
		}
	}

	return nil
}

// Generate runs placement and foil filling and freezes the result.
func Generate(schedule Schedule, rng *rand.Rand, logger *zap.Logger) (Sequence, error) {
	builder, err := NewPlacementEngine(rng, logger).Place(schedule)
	if err != nil {
		return Sequence{}, err
	}
	if err := FillFoils(builder, schedule.FoilCount, rng); err != nil {
		return Sequence{}, err
	}
	return builder.Freeze()
}
