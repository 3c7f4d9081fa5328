package application

import "github.com/bnema/mst-orders/internal/domain"

type BinSummary struct {
	Name     string
	Required int
	Placed   map[domain.PairType]int
	MinLag   int
	MaxLag   int
}

type OrderSummary struct {
	Path       string
	Trials     int
	Expected   int
	KindCounts [domain.KindFoil + 1]int
	Bins       []BinSummary
	Issues     []string
}

func (s OrderSummary) OK() bool {
	return len(s.Issues) == 0
}
