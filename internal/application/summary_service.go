package application

import (
	"context"
	"fmt"
	"slices"

	"github.com/bnema/mst-orders/internal/domain"
	"github.com/bnema/mst-orders/internal/ports"
)

type SummaryService struct {
	orders ports.OrderSource
}

func NewSummaryService(orders ports.OrderSource) *SummaryService {
	return &SummaryService{orders: orders}
}

type pairKey struct {
	pairType domain.PairType
	stim     int
}

// Summarize decodes an order file and checks it against the schedule it was
// meant to realize. Violations are reported as issues, not errors.
func (s *SummaryService) Summarize(ctx context.Context, path string, schedule domain.Schedule) (OrderSummary, error) {
	records, err := s.orders.ReadOrder(ctx, path, 0)
	if err != nil {
		return OrderSummary{}, err
	}
	trials, err := domain.DecodeAll(records)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("decode %s: %w", path, err)
	}

	return SummarizeTrials(path, trials, schedule), nil
}

func SummarizeTrials(path string, trials []domain.Trial, schedule domain.Schedule) OrderSummary {
	summary := OrderSummary{
		Path:     path,
		Trials:   len(trials),
		Expected: schedule.TotalTrials(),
		Bins:     make([]BinSummary, len(schedule.Bins)),
	}
	for i, bin := range schedule.Bins {
		summary.Bins[i] = BinSummary{
			Name:     bin.Name,
			Required: bin.Count,
			Placed:   make(map[domain.PairType]int, len(schedule.PairTypes)),
			MinLag:   domain.NoLag,
			MaxLag:   domain.NoLag,
		}
	}
	if summary.Trials != summary.Expected {
		summary.issue("order has %d trials, schedule expects %d", summary.Trials, summary.Expected)
	}

	firsts := make(map[pairKey]int)
	seconds := make(map[pairKey]int)
	foils := make(map[int]bool)
	for position, trial := range trials {
		summary.KindCounts[trial.Kind]++
		key := pairKey{pairType: trial.PairType, stim: trial.StimIndex}

		switch trial.Role {
		case domain.RoleFirst:
			if _, dup := firsts[key]; dup {
				summary.issue("%s #%d has more than one first occurrence", trial.PairType, trial.StimIndex)
			}
			firsts[key] = position
			if trial.Lag != domain.NoLag {
				summary.issue("%s #%d first occurrence carries lag %d", trial.PairType, trial.StimIndex, trial.Lag)
			}
		case domain.RoleSecond:
			if _, dup := seconds[key]; dup {
				summary.issue("%s #%d has more than one second occurrence", trial.PairType, trial.StimIndex)
			}
			seconds[key] = position
			summary.placeLag(schedule, trial)
		default:
			if foils[trial.StimIndex] {
				summary.issue("foil #%d appears twice", trial.StimIndex)
			}
			foils[trial.StimIndex] = true
			if trial.Lag != domain.NoLag {
				summary.issue("foil #%d carries lag %d", trial.StimIndex, trial.Lag)
			}
			if trial.StimIndex > schedule.FoilCount {
				summary.issue("foil #%d exceeds foil count %d", trial.StimIndex, schedule.FoilCount)
			}
		}
	}

	for key, second := range seconds {
		first, ok := firsts[key]
		if !ok {
			summary.issue("%s #%d has no first occurrence", key.pairType, key.stim)
			continue
		}
		lag := trials[second].Lag
		if second-first-1 != lag {
			summary.issue("%s #%d declares lag %d but is %d trials apart", key.pairType, key.stim, lag, second-first-1)
		}
	}
	for key := range firsts {
		if _, ok := seconds[key]; !ok {
			summary.issue("%s #%d has no second occurrence", key.pairType, key.stim)
		}
	}

	if len(foils) != schedule.FoilCount {
		summary.issue("order has %d foils, schedule expects %d", len(foils), schedule.FoilCount)
	}
	for _, bin := range summary.Bins {
		for _, pairType := range schedule.PairTypes {
			if bin.Placed[pairType] != bin.Required {
				summary.issue("bin %s holds %d %s pairs, schedule requires %d", bin.Name, bin.Placed[pairType], pairType, bin.Required)
			}
		}
	}

	slices.Sort(summary.Issues)
	return summary
}

func (s *OrderSummary) placeLag(schedule domain.Schedule, trial domain.Trial) {
	if !slices.Contains(schedule.PairTypes, trial.PairType) {
		s.issue("%s pairs are not part of the schedule", trial.PairType)
		return
	}

	index := schedule.BinIndexForLag(trial.Lag)
	if index < 0 {
		s.issue("%s #%d has lag %d outside every bin", trial.PairType, trial.StimIndex, trial.Lag)
		return
	}

	bin := &s.Bins[index]
	bin.Placed[trial.PairType]++
	if bin.MinLag == domain.NoLag || trial.Lag < bin.MinLag {
		bin.MinLag = trial.Lag
	}
	if trial.Lag > bin.MaxLag {
		bin.MaxLag = trial.Lag
	}
}

func (s *OrderSummary) issue(format string, args ...any) {
	s.Issues = append(s.Issues, fmt.Sprintf(format, args...))
}
