package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"honnef.co/go/pathkit"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	goodFg    = lipgloss.Color("#10B981")
	badFg     = lipgloss.Color("#EF4444")
	borderCol = lipgloss.Color("#243141")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(baseDimFg).Width(14)
	goodStyle  = lipgloss.NewStyle().Foreground(goodFg)
	badStyle   = lipgloss.NewStyle().Foreground(badFg)
)

// report compares a document before and after an operation.
type report struct {
	op     string
	before pathkit.DocumentHealth
	after  pathkit.DocumentHealth
	paths  [2]int
	segs   [2]int
	// mean coverage of changed paths, or -1 if not applicable
	fidelity float64
}

func newReport(op string, pol pathkit.Policy, before, after pathkit.Document) report {
	r := report{
		op:       op,
		before:   pol.AnalyzeDocument(before),
		after:    pol.AnalyzeDocument(after),
		paths:    [2]int{len(before.Paths), len(after.Paths)},
		segs:     [2]int{before.Segments(), after.Segments()},
		fidelity: -1,
	}
	if (op == "simplify" || op == "heal") && len(before.Paths) == len(after.Paths) && len(before.Paths) > 0 {
		sum := 0.0
		for i := range before.Paths {
			sum += pathkit.Coverage(before.Paths[i], after.Paths[i], pathkit.DefaultCoverageResolution)
		}
		r.fidelity = sum / float64(len(before.Paths))
	}
	return r
}

func (r report) render() string {
	p := message.NewPrinter(language.English)
	var lines []string
	row := func(label, value string) {
		lines = append(lines, labelStyle.Render(label)+value)
	}
	change := func(before, after int, lowerIsBetter bool) string {
		s := p.Sprintf("%d", before)
		if before == after {
			return s
		}
		style := goodStyle
		if (after < before) != lowerIsBetter {
			style = badStyle
		}
		return s + " → " + style.Render(p.Sprintf("%d", after))
	}
	score := func(before, after float64) string {
		s := p.Sprintf("%.1f", before)
		if r.op == "score" || before == after {
			return s
		}
		style := goodStyle
		if after < before {
			style = badStyle
		}
		return s + " → " + style.Render(p.Sprintf("%.1f", after))
	}

	lines = append(lines, titleStyle.Render("pathkit "+r.op))
	row("paths", change(r.paths[0], r.paths[1], false))
	row("segments", change(r.segs[0], r.segs[1], true))
	row("anchors", change(r.before.Anchors, r.after.Anchors, true))
	row("bytes", change(r.before.Bytes, r.after.Bytes, true))
	row("health", score(r.before.Score, r.after.Score))
	row("savings", p.Sprintf("~%d bytes (%.0f%%)", r.after.SavingsBytes, r.after.Savings*100))
	if r.fidelity >= 0 {
		row("fidelity", p.Sprintf("%.1f%%", r.fidelity*100))
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}
