package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jvmch/internal/jar"
	"github.com/mabhi256/jvmch/utils"
)

const maxPackageBars = 8

// RenderReport formats an inspection report for plain terminal output
func RenderReport(report *jar.Report) string {
	sections := []string{
		TitleStyle.Render("📦 " + report.Path),
		renderSummary(report),
		renderEntryPoints(report),
	}

	if len(report.Packages) > 0 {
		bars := PackageBars(report.Packages, report.Size, maxPackageBars)
		sections = append(sections, CreateHorizontalBarChart(
			InfoStyle.Bold(true).Render("Size by top-level directory"), bars, DefaultBarConfig(30)))
	}

	if malformed := renderMalformed(report); malformed != "" {
		sections = append(sections, malformed)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func renderSummary(report *jar.Report) string {
	size, compressed := utils.ByteSize(report.Size), utils.ByteSize(report.CompressedSize)

	mainClass := MutedStyle.Render("(not set)")
	if report.MainClass != "" {
		mainClass = GoodStyle.Render(report.MainClass)
	}

	lines := []string{
		fmt.Sprintf("%s %d (%d classes, %d resources, %d directories)",
			PadRight("Entries:", 14), len(report.Entries), report.Classes, report.Resources, report.Directories),
		fmt.Sprintf("%s %s → %s (%.1f%%)",
			PadRight("Size:", 14), size, compressed, compressed.Percent(size)),
		fmt.Sprintf("%s %s", PadRight("Main-Class:", 14), mainClass),
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func renderEntryPoints(report *jar.Report) string {
	candidates := report.Scan.Candidates
	switch len(candidates) {
	case 0:
		return WarningStyle.Render("No class declares public static void main(String[])")
	case 1:
		return GoodStyle.Render("Entry point: ") + candidates[0].ClassName
	}

	lines := []string{WarningStyle.Render(fmt.Sprintf("%d entry points (annotate needs --use-first):", len(candidates)))}
	for i, c := range candidates {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, c.ClassName))
	}
	return strings.Join(lines, "\n")
}

func renderMalformed(report *jar.Report) string {
	if len(report.Scan.Malformed) == 0 {
		return ""
	}

	lines := []string{CriticalStyle.Render(fmt.Sprintf("%d unparseable class entries:", len(report.Scan.Malformed)))}
	for _, m := range report.Scan.Malformed {
		lines = append(lines, fmt.Sprintf("  %s %s", m.Entry, MutedStyle.Render(m.Err.Error())))
	}
	return strings.Join(lines, "\n")
}
