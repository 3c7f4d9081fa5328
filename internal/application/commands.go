package application

import (
	"fmt"
	"strings"

	"github.com/bnema/mst-orders/internal/domain"
)

type GenerateCommand struct {
	Schedule   domain.Schedule
	BaseDir    string
	LagSet     string
	FirstOrder int
	Count      int
	Seed       uint64
	Attempts   int
	Debug      bool
}

func (c GenerateCommand) Validate() error {
	if strings.TrimSpace(c.LagSet) == "" {
		return fmt.Errorf("lag set is required")
	}
	if c.FirstOrder < 1 {
		return fmt.Errorf("first order must be positive, got %d", c.FirstOrder)
	}
	if c.Count < 1 {
		return fmt.Errorf("order count must be positive, got %d", c.Count)
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be positive, got %d", c.Attempts)
	}
	return c.Schedule.Validate()
}

type RenderCommand struct {
	BaseDir        string
	LagSet         string
	Order          int
	StimSet        string
	BinsPath       string
	Runs           int
	OutDir         string
	SetDirFormat   string
	Seed           uint64
	ExpectedTrials int
}

func (c RenderCommand) Validate() error {
	if strings.TrimSpace(c.LagSet) == "" {
		return fmt.Errorf("lag set is required")
	}
	if strings.TrimSpace(c.StimSet) == "" {
		return fmt.Errorf("stimulus set is required")
	}
	if c.Order < 1 {
		return fmt.Errorf("order must be positive, got %d", c.Order)
	}
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}
	return nil
}

// RenderAllCommand renders every stimulus set against every order of one
// lag set.
type RenderAllCommand struct {
	BaseDir        string
	LagSet         string
	StimSets       []string
	Orders         []int
	Runs           int
	OutDir         string
	SetDirFormat   string
	Seed           uint64
	ExpectedTrials int
	// Progress, when set, is called after each set and order pair is prepared.
	Progress func(done, total int)
}

func (c RenderAllCommand) commands() []RenderCommand {
	commands := make([]RenderCommand, 0, len(c.StimSets)*len(c.Orders))
	for _, stimSet := range c.StimSets {
		for _, order := range c.Orders {
			commands = append(commands, RenderCommand{
				BaseDir:        c.BaseDir,
				LagSet:         c.LagSet,
				Order:          order,
				StimSet:        stimSet,
				Runs:           c.Runs,
				OutDir:         c.OutDir,
				SetDirFormat:   c.SetDirFormat,
				Seed:           c.Seed,
				ExpectedTrials: c.ExpectedTrials,
			})
		}
	}
	return commands
}
