package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/piwi3910/EndGrain/internal/engine"
	"github.com/piwi3910/EndGrain/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FDE96D"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(24)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func length(v float64, units string) string {
	if units == "" {
		units = model.UnitsInches
	}
	return strconv.FormatFloat(v, 'f', 3, 64) + " " + units
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// swatch renders a two-cell block in the wood's colour.
func swatch(color string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render("  ")
}

func renderSummary(d model.Design, plan engine.Plan, est model.StockEstimate) string {
	m := plan.Measurements
	var b strings.Builder

	name := d.Name
	if name == "" {
		name = "End grain board"
	}
	b.WriteString(titleStyle.Render(name) + "\n\n")
	b.WriteString(row("Board width", length(m.BoardWidth, d.Units)) + "\n")
	b.WriteString(row("End grain board length", length(m.EndgrainBoardLength, d.Units)) + "\n")
	b.WriteString(row("Edge grain blank length", length(m.EdgegrainBoardLength, d.Units)) + "\n")
	b.WriteString(row("Slices", strconv.Itoa(m.SliceCount)) + "\n")
	b.WriteString(row("Leftover stock", length(m.LeftoverStock, d.Units)) + "\n")

	if len(m.WoodUsage) > 0 {
		colors := map[int]string{}
		for _, p := range plan.Template.Polygons {
			colors[p.WoodIndex] = p.Color
		}

		b.WriteString("\n" + headerStyle.Render("Wood usage") + "\n")
		for i, u := range m.WoodUsage {
			sw := "  "
			if i < len(plan.Template.Usage) {
				sw = swatch(colors[plan.Template.Usage[i].WoodIndex])
			}
			line := fmt.Sprintf("%s %-14s used %s, wasted %s", sw, u.Name, length(u.Used, d.Units), length(u.Wasted, d.Units))
			if i < len(est.Woods) {
				line += fmt.Sprintf(", buy %.2f bf", est.Woods[i].BoardFeetBuy)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString(row("Total to buy", fmt.Sprintf("%.2f bf", est.TotalToBuy)) + "\n")
	}

	for _, w := range plan.Warnings {
		b.WriteString("\n" + warningStyle.Render(w.Message))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func renderComparison(results []engine.ComparisonResult, units string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("What-if scenarios") + "\n")
	b.WriteString(fmt.Sprintf("%-28s %7s %14s %14s %8s\n", "Scenario", "Slices", "Board length", "Leftover", "Waste"))
	for _, r := range results {
		if r.Err != nil {
			b.WriteString(fmt.Sprintf("%-28s %s\n", r.Scenario.Name, warningStyle.Render(r.Err.Error())))
			continue
		}
		line := fmt.Sprintf("%-28s %7d %14s %14s %7.1f%%",
			r.Scenario.Name, r.SliceCount, length(r.EndgrainLength, units), length(r.Leftover, units), r.WastePercent)
		if r.WarningCount > 0 {
			line += warningStyle.Render(fmt.Sprintf(" (%d warnings)", r.WarningCount))
		}
		b.WriteString(line + "\n")
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
