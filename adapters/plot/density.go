package plot

import (
	"fmt"
	"math"
	"strings"

	"gobayes/domain/core"
	"gobayes/internal/errors"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

const (
	chartWidth  = 64
	chartHeight = 10
	binCount    = 30
)

var (
	densityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("39"))
	markerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Background(lipgloss.Color("208"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Renderer draws posterior densities as terminal histograms. It implements
// ports.PlotterPort; the statistical core never depends on it directly.
type Renderer struct{}

// NewRenderer creates a terminal density plot renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderDensity renders the draws as a histogram with the bin containing
// the marker value (typically the posterior median) highlighted.
func (r *Renderer) RenderDensity(key core.VariableKey, draws []float64, marker float64) (string, error) {
	if len(draws) < 2 {
		return "", errors.InvalidInput(fmt.Sprintf("density plot for %s needs at least 2 draws, got %d", key, len(draws)))
	}

	lo, hi := draws[0], draws[0]
	for _, d := range draws {
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	bins := make([]int, binCount)
	width := (hi - lo) / binCount
	for _, d := range draws {
		idx := int((d - lo) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx]++
	}
	markerBin := int((marker - lo) / width)
	if markerBin < 0 {
		markerBin = 0
	}
	if markerBin >= binCount {
		markerBin = binCount - 1
	}

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(0),
		barchart.WithBarWidth(2),
		barchart.WithNoAxis(),
	)
	for i, count := range bins {
		style := densityStyle
		if i == markerBin {
			style = markerStyle
		}
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: key.String(), Value: float64(count), Style: style},
			},
		})
	}
	bc.Draw()

	title := titleStyle.Render(fmt.Sprintf("Posterior density: %s", key))
	footer := footerStyle.Render(fmt.Sprintf("range [%.4f, %.4f], marker %.4f, %d draws", lo, hi, marker, len(draws)))
	return strings.Join([]string{title, bc.View(), footer}, "\n"), nil
}

// RenderAll renders densities for several coefficients, keyed by name
func (r *Renderer) RenderAll(keys []core.VariableKey, drawsByKey map[core.VariableKey][]float64, markers map[core.VariableKey]float64) (string, error) {
	var out strings.Builder
	for _, key := range keys {
		draws, ok := drawsByKey[key]
		if !ok {
			continue
		}
		marker := markers[key]
		if math.IsNaN(marker) {
			marker = 0
		}
		chart, err := r.RenderDensity(key, draws, marker)
		if err != nil {
			return "", err
		}
		out.WriteString(chart)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}
