package summary

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/bnema/mst-orders/internal/application"
	"github.com/bnema/mst-orders/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 16

var kindLabels = [...]string{
	domain.KindRepeatFirst:  "repeat a",
	domain.KindRepeatSecond: "repeat b",
	domain.KindLureFirst:    "lure a",
	domain.KindLureSecond:   "lure b",
	domain.KindFoil:         "foil",
}

func renderView(summaries []application.OrderSummary, s styles) string {
	lines := []string{
		s.title.Render("Trial Order Summary"),
		s.header.Render(fmt.Sprintf("orders: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No orders to summarize."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, summary := range summaries {
		lines = append(lines, s.section.Render(renderOrder(summary, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderOrder(summary application.OrderSummary, s styles) string {
	status := s.ok.Render("ok")
	if !summary.OK() {
		status = s.warning.Render(fmt.Sprintf("%d issues", len(summary.Issues)))
	}

	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, s.order.Render(summary.Path), " ", status),
		s.detail.Render(fmt.Sprintf("trials: %d/%d", summary.Trials, summary.Expected)),
		s.detail.Render(kindLine(summary)),
	}
	for _, bin := range summary.Bins {
		parts = append(parts, binLine(bin, s))
	}
	for _, issue := range summary.Issues {
		parts = append(parts, s.warning.Render("! "+issue))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func kindLine(summary application.OrderSummary) string {
	counts := make([]string, 0, len(kindLabels))
	for kind, label := range kindLabels {
		counts = append(counts, fmt.Sprintf("%s %d", label, summary.KindCounts[kind]))
	}
	return strings.Join(counts, " | ")
}

func binLine(bin application.BinSummary, s styles) string {
	pairTypes := make([]domain.PairType, 0, len(bin.Placed))
	for pairType := range bin.Placed {
		pairTypes = append(pairTypes, pairType)
	}
	slices.Sort(pairTypes)

	segments := []string{s.binName.Render(bin.Name)}
	for _, pairType := range pairTypes {
		placed := bin.Placed[pairType]
		segments = append(segments,
			" ",
			fmt.Sprintf("%s ", pairType),
			renderProgressBar(placed, bin.Required, s),
			fmt.Sprintf(" %d/%d", placed, bin.Required),
		)
	}
	segments = append(segments, " ", s.empty.Render(lagRange(bin)))

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func lagRange(bin application.BinSummary) string {
	if bin.MinLag == domain.NoLag {
		return "lags: none"
	}
	if bin.MinLag == bin.MaxLag {
		return fmt.Sprintf("lags: %d", bin.MinLag)
	}
	return fmt.Sprintf("lags: %d..%d", bin.MinLag, bin.MaxLag)
}

func renderProgressBar(placed, required int, s styles) string {
	filled := barWidth
	if required > 0 {
		filled = int(math.Round(float64(barWidth) * float64(placed) / float64(required)))
	}
	filled = min(max(filled, 0), barWidth)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", barWidth-filled)),
		s.barBracket.Render("]"),
	)
}
