package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSchedule(t *testing.T) {
	t.Parallel()

	schedule := DefaultSchedule()
	require.NoError(t, schedule.Validate())
	assert.Equal(t, 64, schedule.PairsPerType())
	assert.Equal(t, 320, schedule.TotalTrials())
	assert.Equal(t, 0, schedule.BinIndexForLag(0))
	assert.Equal(t, 1, schedule.BinIndexForLag(9))
	assert.Equal(t, 2, schedule.BinIndexForLag(50))
	assert.Equal(t, 3, schedule.BinIndexForLag(180))
	assert.Equal(t, -1, schedule.BinIndexForLag(10))
}

func TestLagRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{3, 4, 5}, LagRange(3, 5))
	assert.Equal(t, []int{7}, LagRange(7, 7))
	assert.Nil(t, LagRange(5, 3))
}

func TestScheduleValidate(t *testing.T) {
	t.Parallel()

	valid := func() Schedule {
		return Schedule{
			Bins:      []LagBin{{Name: "short", Count: 2, Lags: []int{1, 2}}},
			PairTypes: []PairType{PairTypeRepeat},
			FoilCount: 4,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Schedule)
		wantErr string
	}{
		{name: "valid", mutate: func(*Schedule) {}},
		{name: "no bins", mutate: func(s *Schedule) { s.Bins = nil }, wantErr: "at least one lag bin"},
		{name: "no pair types", mutate: func(s *Schedule) { s.PairTypes = nil }, wantErr: "at least one pair type"},
		{name: "foil pair type", mutate: func(s *Schedule) { s.PairTypes = []PairType{PairTypeFoil} }, wantErr: "unsupported pair type"},
		{name: "duplicate pair type", mutate: func(s *Schedule) { s.PairTypes = append(s.PairTypes, PairTypeRepeat) }, wantErr: "duplicate pair type"},
		{name: "negative count", mutate: func(s *Schedule) { s.Bins[0].Count = -1 }, wantErr: "negative count"},
		{name: "empty lags", mutate: func(s *Schedule) { s.Bins[0].Lags = nil }, wantErr: "bin #0 (short) has no allowed lags"},
		{name: "negative lag", mutate: func(s *Schedule) { s.Bins[0].Lags = []int{-2} }, wantErr: "negative lag"},
		{name: "negative foils", mutate: func(s *Schedule) { s.FoilCount = -1 }, wantErr: "is negative"},
		{name: "too many foils", mutate: func(s *Schedule) { s.FoilCount = 100 }, wantErr: "foil count 100 exceeds 99"},
		{name: "too many pairs", mutate: func(s *Schedule) { s.Bins[0].Count = 100 }, wantErr: "100 pairs per type exceeds 99"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			schedule := valid()
			tc.mutate(&schedule)
			err := schedule.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidSchedule)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestOrderEntryValidate(t *testing.T) {
	t.Parallel()

	entry := OrderEntry{
		RunID:     "run-1",
		LagSet:    "lagset1",
		Order:     1,
		Path:      "lagset1/order_1.txt",
		CreatedAt: time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, entry.Validate())

	missing := entry
	missing.RunID = " "
	assert.EqualError(t, missing.Validate(), "run id is required")

	badOrder := entry
	badOrder.Order = 0
	assert.EqualError(t, badOrder.Validate(), "order must be positive, got 0")

	noPath := entry
	noPath.Path = ""
	assert.EqualError(t, noPath.Validate(), "path is required")
}
