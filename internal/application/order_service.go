package application

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type OrderService struct {
	sink     ports.ArtifactSink
	encoder  ports.OrderEncoder
	manifest ports.ManifestRepository
	clock    ports.Clock
	logger   *zap.Logger
	newRunID func() domain.RunID
}

func NewOrderService(sink ports.ArtifactSink, encoder ports.OrderEncoder, manifest ports.ManifestRepository, clock ports.Clock, logger *zap.Logger) *OrderService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OrderService{
		sink:     sink,
		encoder:  encoder,
		manifest: manifest,
		clock:    clock,
		logger:   logger,
		newRunID: func() domain.RunID { return domain.RunID(uuid.NewString()) },
	}
}

type generatedOrder struct {
	entry     domain.OrderEntry
	artifacts []ports.Artifact
}

// Generate builds cmd.Count orders concurrently. Nothing is written unless
// every order succeeds.
func (s *OrderService) Generate(ctx context.Context, cmd GenerateCommand) ([]domain.OrderEntry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	runID := s.newRunID()
	s.logger.Info("generating orders",
		zap.String("run_id", string(runID)),
		zap.String("lag_set", cmd.LagSet),
		zap.Int("count", cmd.Count),
		zap.Int("total_trials", cmd.Schedule.TotalTrials()),
		zap.Uint64("seed", cmd.Seed))

	results := make([]generatedOrder, cmd.Count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range cmd.Count {
		order := cmd.FirstOrder + i
		g.Go(func() error {
			result, err := s.generateOrder(gctx, cmd, runID, order)
			if err != nil {
				return fmt.Errorf("order %d: %w", order, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := make([]ports.Artifact, 0, cmd.Count*2)
	entries := make([]domain.OrderEntry, 0, cmd.Count)
	for _, result := range results {
		artifacts = append(artifacts, result.artifacts...)
		entries = append(entries, result.entry)
	}

	if err := s.sink.Commit(ctx, artifacts); err != nil {
		return nil, fmt.Errorf("save orders: %w", err)
	}
	for _, entry := range entries {
		s.logger.Info("saved order", zap.Int("order", entry.Order), zap.String("path", entry.Path))
		if entry.DebugPath != "" {
			s.logger.Debug("saved debug trial list", zap.String("path", entry.DebugPath))
		}
	}

	if err := s.manifest.Record(ctx, entries); err != nil {
		return entries, fmt.Errorf("record manifest: %w", err)
	}

	return entries, nil
}

func (s *OrderService) generateOrder(ctx context.Context, cmd GenerateCommand, runID domain.RunID, order int) (generatedOrder, error) {
	logger := s.logger.With(zap.Int("order", order))

	var lastErr error
	for attempt := 1; attempt <= cmd.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return generatedOrder{}, err
		}

		sequence, err := domain.Generate(cmd.Schedule, newOrderRand(cmd.Seed, order, attempt), logger)
		if err != nil {
			if !errors.Is(err, domain.ErrPlacementExhausted) {
				return generatedOrder{}, err
			}
			logger.Warn("placement exhausted, reseeding", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
			continue
		}

		return s.encodeOrder(cmd, runID, order, attempt, sequence)
	}

	return generatedOrder{}, fmt.Errorf("after %d attempts: %w", cmd.Attempts, lastErr)
}

func (s *OrderService) encodeOrder(cmd GenerateCommand, runID domain.RunID, order, attempt int, sequence domain.Sequence) (generatedOrder, error) {
	records, err := domain.EncodeSequence(sequence)
	if err != nil {
		return generatedOrder{}, err
	}
	data, err := s.encoder.EncodeOrder(records)
	if err != nil {
		return generatedOrder{}, err
	}

	entry := domain.OrderEntry{
		RunID:       runID,
		LagSet:      cmd.LagSet,
		Order:       order,
		Schedule:    cmd.Schedule.Name,
		Seed:        cmd.Seed,
		Attempt:     attempt,
		Path:        OrderPath(cmd.BaseDir, cmd.LagSet, order),
		TotalTrials: sequence.Len(),
		CreatedAt:   s.clock.Now(),
	}
	artifacts := []ports.Artifact{{Path: entry.Path, Data: data}}

	if cmd.Debug {
		debug, err := s.encoder.EncodeDebug(sequence)
		if err != nil {
			return generatedOrder{}, err
		}
		entry.DebugPath = DebugPath(cmd.BaseDir, cmd.LagSet, order)
		artifacts = append(artifacts, ports.Artifact{Path: entry.DebugPath, Data: debug})
	}

	return generatedOrder{entry: entry, artifacts: artifacts}, nil
}

// OrderStream gives every (order, attempt) pair its own PCG stream under one
// seed, so a manifest entry can be regenerated exactly.
func OrderStream(order, attempt int) uint64 {
	return uint64(order)<<32 | uint64(attempt)
}

func newOrderRand(seed uint64, order, attempt int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, OrderStream(order, attempt)))
}
