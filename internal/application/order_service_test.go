package application

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	csvrepo "github.com/bnema/mst-orders/internal/adapters/repo/csv"
	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
	"github.com/bnema/mst-orders/internal/ports/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)

func newTestOrderService(t *testing.T, logger *zap.Logger) (*OrderService, *mocks.MockArtifactSink, *mocks.MockManifestRepository) {
	t.Helper()

	sink := mocks.NewMockArtifactSink(t)
	manifest := mocks.NewMockManifestRepository(t)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(fixedNow).Maybe()

	service := NewOrderService(sink, csvrepo.Codec{}, manifest, clock, logger)
	service.newRunID = func() domain.RunID { return "run-1" }
	return service, sink, manifest
}

func decodeArtifact(t *testing.T, artifact ports.Artifact) []domain.Trial {
	t.Helper()

	records, err := csvrepo.DecodeOrder(bytes.NewReader(artifact.Data))
	require.NoError(t, err)
	trials, err := domain.DecodeAll(records)
	require.NoError(t, err)
	return trials
}

func TestOrderServiceGenerateCommitsOrdersAndManifest(t *testing.T) {
	service, sink, manifest := newTestOrderService(t, nil)
	base := filepath.Join("orders", "base")

	var committed []ports.Artifact
	sink.EXPECT().Commit(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, artifacts []ports.Artifact) { committed = artifacts }).
		Return(nil).Once()
	var recorded []domain.OrderEntry
	manifest.EXPECT().Record(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, entries []domain.OrderEntry) { recorded = entries }).
		Return(nil).Once()

	entries, err := service.Generate(context.Background(), GenerateCommand{
		Schedule:   domain.DefaultSchedule(),
		BaseDir:    base,
		LagSet:     "lagset1",
		FirstOrder: 4,
		Count:      3,
		Seed:       42,
		Attempts:   3,
		Debug:      true,
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entries, recorded)

	for i, entry := range entries {
		order := 4 + i
		assert.Equal(t, domain.RunID("run-1"), entry.RunID)
		assert.Equal(t, order, entry.Order)
		assert.Equal(t, "default", entry.Schedule)
		assert.Equal(t, uint64(42), entry.Seed)
		assert.Equal(t, 320, entry.TotalTrials)
		assert.Equal(t, fixedNow, entry.CreatedAt)
		assert.Equal(t, OrderPath(base, "lagset1", order), entry.Path)
		assert.Equal(t, DebugPath(base, "lagset1", order), entry.DebugPath)
	}

	require.Len(t, committed, 6)
	assert.Equal(t, filepath.Join(base, "lagset1", "order_4.txt"), committed[0].Path)
	assert.Equal(t, filepath.Join(base, "lagset1", "debug", "order_4_debug.csv"), committed[1].Path)
	assert.True(t, bytes.HasPrefix(committed[1].Data, []byte("stim_number,trial_type,repetition,lag\n")))

	for _, artifact := range []ports.Artifact{committed[0], committed[2], committed[4]} {
		summary := SummarizeTrials(artifact.Path, decodeArtifact(t, artifact), domain.DefaultSchedule())
		assert.True(t, summary.OK(), "issues in %s: %v", artifact.Path, summary.Issues)
	}
}

func TestOrderServiceGenerateIsReproducibleFromSeed(t *testing.T) {
	generate := func(seed uint64) []ports.Artifact {
		service, sink, manifest := newTestOrderService(t, nil)

		var committed []ports.Artifact
		sink.EXPECT().Commit(mockAnyContext(), mock.Anything).
			Run(func(_ context.Context, artifacts []ports.Artifact) { committed = artifacts }).
			Return(nil).Once()
		manifest.EXPECT().Record(mockAnyContext(), mock.Anything).Return(nil).Once()

		_, err := service.Generate(context.Background(), GenerateCommand{
			Schedule:   domain.DefaultSchedule(),
			LagSet:     "lagset1",
			FirstOrder: 1,
			Count:      2,
			Seed:       seed,
			Attempts:   3,
		})
		require.NoError(t, err)
		return committed
	}

	first := generate(7)
	if diff := cmp.Diff(first, generate(7)); diff != "" {
		t.Fatalf("same seed produced different orders (-first +second):\n%s", diff)
	}
	assert.NotEqual(t, first[0].Data, first[1].Data)
	assert.NotEqual(t, first[0].Data, generate(8)[0].Data)
}

func TestOrderServiceGenerateReseedsAfterExhaustion(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	service, sink, manifest := newTestOrderService(t, zap.New(core))

	sink.EXPECT().Commit(mockAnyContext(), mock.Anything).Return(nil).Once()
	manifest.EXPECT().Record(mockAnyContext(), mock.Anything).Return(nil).Once()

	// The lag-2 pair only fits when the zero-lag pair lands in the middle.
	schedule := domain.Schedule{
		Name: "tight",
		Bins: []domain.LagBin{
			{Name: "zero", Count: 1, Lags: []int{0}},
			{Name: "two", Count: 1, Lags: []int{2}},
		},
		PairTypes: []domain.PairType{domain.PairTypeRepeat},
	}

	entries, err := service.Generate(context.Background(), GenerateCommand{
		Schedule:   schedule,
		LagSet:     "tight",
		FirstOrder: 1,
		Count:      1,
		Seed:       11,
		Attempts:   60,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	attempt := entries[0].Attempt
	require.GreaterOrEqual(t, attempt, 1)
	assert.Equal(t, attempt-1, logs.FilterMessage("placement exhausted, reseeding").Len())

	rng := newOrderRand(11, 1, attempt)
	sequence, err := domain.Generate(schedule, rng, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, sequence.At(1).Lag)
	assert.Equal(t, 2, sequence.At(0).Lag)
	assert.Equal(t, domain.RoleSecond, sequence.At(3).Role)
}

func TestOrderServiceGenerateWritesNothingWhenAnOrderFails(t *testing.T) {
	service, _, _ := newTestOrderService(t, nil)

	schedule := domain.Schedule{
		Bins: []domain.LagBin{
			{Name: "zero", Count: 1, Lags: []int{0}},
			{Name: "one", Count: 1, Lags: []int{1}},
		},
		PairTypes: []domain.PairType{domain.PairTypeRepeat},
	}

	_, err := service.Generate(context.Background(), GenerateCommand{
		Schedule:   schedule,
		LagSet:     "impossible",
		FirstOrder: 1,
		Count:      4,
		Seed:       1,
		Attempts:   3,
	})
	require.ErrorIs(t, err, domain.ErrPlacementExhausted)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestOrderServiceGenerateRejectsInvalidCommand(t *testing.T) {
	service, _, _ := newTestOrderService(t, nil)

	tests := []struct {
		name    string
		mutate  func(*GenerateCommand)
		wantErr string
	}{
		{name: "missing lag set", mutate: func(c *GenerateCommand) { c.LagSet = " " }, wantErr: "lag set is required"},
		{name: "zero first order", mutate: func(c *GenerateCommand) { c.FirstOrder = 0 }, wantErr: "first order must be positive"},
		{name: "zero count", mutate: func(c *GenerateCommand) { c.Count = 0 }, wantErr: "order count must be positive"},
		{name: "zero attempts", mutate: func(c *GenerateCommand) { c.Attempts = 0 }, wantErr: "attempts must be positive"},
		{name: "invalid schedule", mutate: func(c *GenerateCommand) { c.Schedule.Bins = nil }, wantErr: "invalid lag schedule"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := GenerateCommand{
				Schedule:   domain.DefaultSchedule(),
				LagSet:     "lagset1",
				FirstOrder: 1,
				Count:      1,
				Attempts:   1,
			}
			tc.mutate(&cmd)

			_, err := service.Generate(context.Background(), cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestOrderServiceGenerateCommitFailureSkipsManifest(t *testing.T) {
	service, sink, _ := newTestOrderService(t, nil)
	sink.EXPECT().Commit(mockAnyContext(), mock.Anything).Return(errors.New("disk full")).Once()

	_, err := service.Generate(context.Background(), GenerateCommand{
		Schedule:   domain.DefaultSchedule(),
		LagSet:     "lagset1",
		FirstOrder: 1,
		Count:      1,
		Seed:       3,
		Attempts:   3,
	})
	require.EqualError(t, err, "save orders: disk full")
}

func TestOrderServiceGenerateReturnsEntriesWhenManifestFails(t *testing.T) {
	service, sink, manifest := newTestOrderService(t, nil)
	sink.EXPECT().Commit(mockAnyContext(), mock.Anything).Return(nil).Once()
	manifest.EXPECT().Record(mockAnyContext(), mock.Anything).Return(errors.New("locked")).Once()

	entries, err := service.Generate(context.Background(), GenerateCommand{
		Schedule:   domain.DefaultSchedule(),
		LagSet:     "lagset1",
		FirstOrder: 1,
		Count:      1,
		Seed:       3,
		Attempts:   3,
	})
	require.EqualError(t, err, "record manifest: locked")
	assert.Len(t, entries, 1)
}

func TestOrderServiceGenerateHonorsCanceledContext(t *testing.T) {
	service, _, _ := newTestOrderService(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Generate(ctx, GenerateCommand{
		Schedule:   domain.DefaultSchedule(),
		LagSet:     "lagset1",
		FirstOrder: 1,
		Count:      2,
		Attempts:   1,
	})
	require.ErrorIs(t, err, context.Canceled)
}
