package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

type pairKey struct {
	pairType PairType
	stim     int
}

func TestGenerateDefaultScheduleInvariants(t *testing.T) {
	t.Parallel()

	schedule := DefaultSchedule()
	for seed := uint64(1); seed <= 25; seed++ {
		sequence, err := Generate(schedule, newRand(seed), nil)
		require.NoError(t, err, "seed %d", seed)
		require.Equal(t, 320, sequence.Len())

		firsts := map[pairKey]Slot{}
		seconds := map[pairKey]Slot{}
		foils := map[int]bool{}
		perBin := map[pairKey]int{}

		for _, slot := range sequence.Slots() {
			require.True(t, slot.Assigned())
			key := pairKey{pairType: slot.PairType, stim: slot.StimNumber}
			switch slot.Role {
			case RoleFirst:
				_, dup := firsts[key]
				require.False(t, dup, "seed %d: duplicate first %v", seed, key)
				firsts[key] = slot
			case RoleSecond:
				_, dup := seconds[key]
				require.False(t, dup, "seed %d: duplicate second %v", seed, key)
				seconds[key] = slot
				bin := schedule.BinIndexForLag(slot.Lag)
				require.GreaterOrEqual(t, bin, 0, "seed %d: lag %d outside every bin", seed, slot.Lag)
				perBin[pairKey{pairType: slot.PairType, stim: bin}]++
			default:
				assert.Equal(t, PairTypeFoil, slot.PairType)
				assert.Equal(t, NoLag, slot.Lag)
				require.False(t, foils[slot.StimNumber], "seed %d: duplicate foil %d", seed, slot.StimNumber)
				foils[slot.StimNumber] = true
			}
		}

		require.Len(t, firsts, 128)
		require.Len(t, seconds, 128)
		for key, second := range seconds {
			first, ok := firsts[key]
			require.True(t, ok, "seed %d: second without first %v", seed, key)
			assert.Equal(t, second.Lag+1, second.Position-first.Position)
			assert.Equal(t, second.Lag, first.Lag)
			assert.GreaterOrEqual(t, key.stim, 1)
			assert.LessOrEqual(t, key.stim, 64)
		}

		require.Len(t, foils, 64)
		for stim := 1; stim <= 64; stim++ {
			assert.True(t, foils[stim], "seed %d: foil %d missing", seed, stim)
		}

		for binIndex, bin := range schedule.Bins {
			for _, pairType := range schedule.PairTypes {
				assert.Equal(t, bin.Count, perBin[pairKey{pairType: pairType, stim: binIndex}],
					"seed %d: bin %s %s", seed, bin.Name, pairType)
			}
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	first, err := Generate(DefaultSchedule(), newRand(42), nil)
	require.NoError(t, err)
	second, err := Generate(DefaultSchedule(), newRand(42), nil)
	require.NoError(t, err)

	if diff := cmp.Diff(first.Slots(), second.Slots(), cmp.AllowUnexported(Slot{})); diff != "" {
		t.Fatalf("same seed produced different sequences (-first +second):\n%s", diff)
	}

	other, err := Generate(DefaultSchedule(), newRand(43), nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.Slots(), other.Slots())
}

func TestPlaceForcedSmallSchedule(t *testing.T) {
	t.Parallel()

	schedule := Schedule{
		Name: "forced",
		Bins: []LagBin{
			{Name: "far", Count: 1, Lags: []int{2}},
			{Name: "near", Count: 1, Lags: []int{0}},
		},
		PairTypes: []PairType{PairTypeRepeat},
	}

	for seed := uint64(0); seed < 10; seed++ {
		sequence, err := Generate(schedule, newRand(seed), nil)
		require.NoError(t, err)

		got := make([][3]any, 0, sequence.Len())
		for _, slot := range sequence.Slots() {
			got = append(got, [3]any{slot.StimNumber, slot.Role, slot.Lag})
		}
		assert.Equal(t, [][3]any{
			{1, RoleFirst, 2},
			{2, RoleFirst, 0},
			{2, RoleSecond, 0},
			{1, RoleSecond, 2},
		}, got)
	}
}

func TestPlaceReportsExhaustionWhenNoLayoutExists(t *testing.T) {
	t.Parallel()

	schedule := Schedule{
		Bins: []LagBin{
			{Name: "zero", Count: 1, Lags: []int{0}},
			{Name: "one", Count: 1, Lags: []int{1}},
		},
		PairTypes: []PairType{PairTypeRepeat},
	}

	for seed := uint64(0); seed < 10; seed++ {
		_, err := NewPlacementEngine(newRand(seed), nil).Place(schedule)
		require.ErrorIs(t, err, ErrPlacementExhausted)

		var exhausted *PlacementExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, PairTypeRepeat, exhausted.PairType)
		assert.Equal(t, "one", exhausted.Bin)
		assert.Equal(t, 1, exhausted.BinIndex)
		assert.Equal(t, 2, exhausted.StimNumber)
		assert.Equal(t, 2, exhausted.Unassigned)
	}
}

func TestPlaceReportsExhaustionForLagLongerThanSequence(t *testing.T) {
	t.Parallel()

	schedule := Schedule{
		Bins:      []LagBin{{Name: "huge", Count: 1, Lags: []int{10}}},
		PairTypes: []PairType{PairTypeLure},
		FoilCount: 2,
	}

	_, err := Generate(schedule, newRand(7), nil)
	require.ErrorIs(t, err, ErrPlacementExhausted)
	assert.Contains(t, err.Error(), "out of possible lags")
}

func TestPlaceRejectsInvalidSchedule(t *testing.T) {
	t.Parallel()

	_, err := NewPlacementEngine(newRand(1), nil).Place(Schedule{PairTypes: []PairType{PairTypeRepeat}})
	require.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestFillFoils(t *testing.T) {
	t.Parallel()

	t.Run("fills every free slot with a permutation", func(t *testing.T) {
		t.Parallel()

		builder := NewSequenceBuilder(5)
		require.NoError(t, builder.AssignPair(1, 1, 1, PairTypeRepeat))

		require.NoError(t, FillFoils(builder, 3, newRand(3)))
		sequence, err := builder.Freeze()
		require.NoError(t, err)

		var stims []int
		for _, position := range []int{0, 2, 4} {
			slot := sequence.At(position)
			assert.Equal(t, PairTypeFoil, slot.PairType)
			assert.Equal(t, RoleNone, slot.Role)
			stims = append(stims, slot.StimNumber)
		}
		assert.ElementsMatch(t, []int{1, 2, 3}, stims)
	})

	t.Run("count mismatch", func(t *testing.T) {
		t.Parallel()

		err := FillFoils(NewSequenceBuilder(3), 2, newRand(3))
		require.ErrorIs(t, err, ErrFoilCountMismatch)
	})
}
