package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/mst-orders/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	configName = "mst"
	configType = "toml"
	envPrefix  = "MST"
)

var validate = validator.New()

type LagBinConfig struct {
	Name  string `mapstructure:"name"`
	Count int    `mapstructure:"count" validate:"gte=0,lte=99"`
	Min   *int   `mapstructure:"min" validate:"omitempty,gte=0"`
	Max   *int   `mapstructure:"max" validate:"omitempty,gte=0"`
	Lags  []int  `mapstructure:"lags" validate:"omitempty,dive,gte=0"`
}

type RenderConfig struct {
	Runs         int    `mapstructure:"runs" validate:"gte=1,lte=1000"`
	SetDirFormat string `mapstructure:"set_dir_format" validate:"required,contains=%s"`
	OutDir       string `mapstructure:"out_dir" validate:"required"`
}

type Settings struct {
	ScheduleName string         `mapstructure:"schedule_name" validate:"required"`
	FoilCount    int            `mapstructure:"foil_count" validate:"gte=0,lte=99"`
	PairTypes    []string       `mapstructure:"pair_types" validate:"required,min=1,max=2,unique,dive,oneof=repeat lure"`
	LagBins      []LagBinConfig `mapstructure:"lag_bins" validate:"required,min=1,dive"`
	Attempts     int            `mapstructure:"attempts" validate:"gte=1,lte=1000"`
	Render       RenderConfig   `mapstructure:"render"`
}

// New returns a viper instance with defaults, env binding and the optional
// config file loaded. An explicit path must exist; the search path may not.
func New(explicitPath string) (*viper.Viper, error) {
	cfg := viper.New()
	setDefaults(cfg)

	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if explicitPath != "" {
		cfg.SetConfigFile(explicitPath)
		if err := cfg.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		return cfg, nil
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.AddConfigPath(filepath.Join(homeDir, ".config", "mst"))
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

func setDefaults(cfg *viper.Viper) {
	defaults := domain.DefaultSchedule()

	bins := make([]map[string]any, 0, len(defaults.Bins))
	for _, bin := range defaults.Bins {
		bins = append(bins, map[string]any{
			"name":  bin.Name,
			"count": bin.Count,
			"min":   bin.Lags[0],
			"max":   bin.Lags[len(bin.Lags)-1],
		})
	}

	pairTypes := make([]string, 0, len(defaults.PairTypes))
	for _, pairType := range defaults.PairTypes {
		pairTypes = append(pairTypes, string(pairType))
	}

	cfg.SetDefault("schedule_name", defaults.Name)
	cfg.SetDefault("foil_count", defaults.FoilCount)
	cfg.SetDefault("pair_types", pairTypes)
	cfg.SetDefault("lag_bins", bins)
	cfg.SetDefault("attempts", 1)
	cfg.SetDefault("render.runs", 20)
	cfg.SetDefault("render.set_dir_format", domain.DefaultSetDirFormat)
	cfg.SetDefault("render.out_dir", "jsOrders")
}

func Load(cfg *viper.Viper) (Settings, error) {
	var settings Settings
	if err := cfg.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := validate.Struct(settings); err != nil {
		return Settings{}, fmt.Errorf("validate settings: %w", err)
	}
	if _, err := settings.Schedule(); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

func (s Settings) Schedule() (domain.Schedule, error) {
	schedule := domain.Schedule{
		Name:      s.ScheduleName,
		FoilCount: s.FoilCount,
	}

	for _, raw := range s.PairTypes {
		pairType, err := domain.ParsePairType(raw)
		if err != nil {
			return domain.Schedule{}, err
		}
		schedule.PairTypes = append(schedule.PairTypes, pairType)
	}

	for i, bin := range s.LagBins {
		lags, err := bin.lags()
		if err != nil {
			return domain.Schedule{}, fmt.Errorf("%w: lag bin %d: %v", domain.ErrInvalidSchedule, i, err)
		}
		schedule.Bins = append(schedule.Bins, domain.LagBin{Name: bin.Name, Count: bin.Count, Lags: lags})
	}

	if err := schedule.Validate(); err != nil {
		return domain.Schedule{}, err
	}
	return schedule, nil
}

func (b LagBinConfig) lags() ([]int, error) {
	switch {
	case len(b.Lags) > 0 && (b.Min != nil || b.Max != nil):
		return nil, errors.New("set either lags or min/max, not both")
	case len(b.Lags) > 0:
		return append([]int(nil), b.Lags...), nil
	case b.Min == nil || b.Max == nil:
		return nil, errors.New("min and max are required without explicit lags")
	case *b.Max < *b.Min:
		return nil, fmt.Errorf("max %d is below min %d", *b.Max, *b.Min)
	default:
		return domain.LagRange(*b.Min, *b.Max), nil
	}
}
