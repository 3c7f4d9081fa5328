package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/mst-orders/internal/adapters/fs/staged"
	"github.com/bnema/mst-orders/internal/adapters/render/jsorder"
	summaryadapter "github.com/bnema/mst-orders/internal/adapters/render/summary"
	csvrepo "github.com/bnema/mst-orders/internal/adapters/repo/csv"
	tomlrepo "github.com/bnema/mst-orders/internal/adapters/repo/toml"
	"github.com/bnema/mst-orders/internal/adapters/repo/tsv"
	"github.com/bnema/mst-orders/internal/application"
	"github.com/bnema/mst-orders/internal/config"
	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

type app struct {
	settings        config.Settings
	schedule        domain.Schedule
	logger          *zap.Logger
	orderService    *application.OrderService
	renderService   *application.RenderService
	summaryService  *application.SummaryService
	manifest        ports.ManifestRepository
	summaryRenderer func([]application.OrderSummary) (string, error)
	isTerminal      func(io.Writer) bool
}

func wireApp(configPath string, logger *zap.Logger) (*app, error) {
	cfg, err := config.New(configPath)
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(cfg)
	if err != nil {
		return nil, err
	}
	schedule, err := settings.Schedule()
	if err != nil {
		return nil, err
	}

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire manifest repository: %w", err)
	}

	sink := staged.NewSink()
	codec := csvrepo.Codec{}

	return &app{
		settings:        settings,
		schedule:        schedule,
		logger:          logger,
		orderService:    application.NewOrderService(sink, codec, repo, ports.SystemClock{}, logger),
		renderService:   application.NewRenderService(tsv.BinLoader{}, codec, jsorder.Encoder{}, sink, logger),
		summaryService:  application.NewSummaryService(codec),
		manifest:        repo,
		summaryRenderer: summaryadapter.Render,
		isTerminal:      isTerminal,
	}, nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
