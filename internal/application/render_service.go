package application

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
	"go.uber.org/zap"
)

type RenderService struct {
	bins    ports.BinSource
	orders  ports.OrderSource
	encoder ports.PresentationEncoder
	sink    ports.ArtifactSink
	logger  *zap.Logger
}

func NewRenderService(bins ports.BinSource, orders ports.OrderSource, encoder ports.PresentationEncoder, sink ports.ArtifactSink, logger *zap.Logger) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RenderService{bins: bins, orders: orders, encoder: encoder, sink: sink, logger: logger}
}

// Render writes cmd.Runs presentation files for one order and stimulus set,
// all sharing a single pool assignment.
func (s *RenderService) Render(ctx context.Context, cmd RenderCommand) ([]string, error) {
	artifacts, err := s.prepare(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, artifacts)
}

func (s *RenderService) RenderAll(ctx context.Context, cmd RenderAllCommand) ([]string, error) {
	if len(cmd.StimSets) == 0 || len(cmd.Orders) == 0 {
		return nil, fmt.Errorf("at least one stimulus set and one order are required")
	}

	commands := cmd.commands()
	var artifacts []ports.Artifact
	for i, command := range commands {
		prepared, err := s.prepare(ctx, command)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, prepared...)
		if cmd.Progress != nil {
			cmd.Progress(i+1, len(commands))
		}
	}
	return s.commit(ctx, artifacts)
}

func (s *RenderService) prepare(ctx context.Context, cmd RenderCommand) ([]ports.Artifact, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	binsPath := cmd.BinsPath
	if strings.TrimSpace(binsPath) == "" {
		binsPath = BinsPath(cmd.BaseDir, cmd.StimSet)
	}
	labels, err := s.bins.LoadBins(ctx, binsPath)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", cmd.StimSet, err)
	}

	rng := rand.New(rand.NewPCG(cmd.Seed, RenderStream(cmd.StimSet, cmd.Order)))
	pools, err := domain.BuildPools(labels, rng)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", cmd.StimSet, err)
	}

	orderPath := OrderPath(cmd.BaseDir, cmd.LagSet, cmd.Order)
	records, err := s.orders.ReadOrder(ctx, orderPath, cmd.ExpectedTrials)
	if err != nil {
		return nil, err
	}
	trials, err := domain.DecodeAll(records)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", orderPath, err)
	}

	descriptors, err := domain.RenderTrials(trials, pools, domain.SetDirectory(cmd.SetDirFormat, cmd.StimSet))
	if err != nil {
		return nil, fmt.Errorf("set %s order %d: %w", cmd.StimSet, cmd.Order, err)
	}
	data, err := s.encoder.EncodePresentation(descriptors)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("rendered order",
		zap.String("lag_set", cmd.LagSet),
		zap.String("stim_set", cmd.StimSet),
		zap.Int("order", cmd.Order),
		zap.Int("trials", len(descriptors)))

	artifacts := make([]ports.Artifact, 0, cmd.Runs)
	for run := 1; run <= cmd.Runs; run++ {
		artifacts = append(artifacts, ports.Artifact{
			Path: PresentationPath(cmd.OutDir, cmd.LagSet, cmd.StimSet, cmd.Order, run),
			Data: data,
		})
	}
	return artifacts, nil
}

func (s *RenderService) commit(ctx context.Context, artifacts []ports.Artifact) ([]string, error) {
	if err := s.sink.Commit(ctx, artifacts); err != nil {
		return nil, fmt.Errorf("save presentation files: %w", err)
	}

	paths := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		paths = append(paths, artifact.Path)
	}
	s.logger.Info("saved presentation files", zap.Int("files", len(paths)))
	return paths, nil
}

// RenderStream separates pool permutations per stimulus set and order.
func RenderStream(stimSet string, order int) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stimSet))
	return h.Sum64() ^ uint64(order)
}
