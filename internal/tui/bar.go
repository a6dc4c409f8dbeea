package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jvmch/internal/jar"
	"github.com/mabhi256/jvmch/utils"
)

const (
	DefaultLabelWidth = 20
	DefaultFilledChar = "█"
	DefaultEmptyChar  = "▱"
	MinBarWidth       = 1
)

// BarData represents a single bar in the chart
type BarData struct {
	Label      string
	Bytes      uint64
	Percentage float64 // share of the total, drives the bar width
	Style      lipgloss.Style
	Suffix     string // e.g. "12 entries"
}

type HorizontalBarConfig struct {
	BarAreaWidth int
	LabelWidth   int
	FilledChar   string
	EmptyChar    string
}

func DefaultBarConfig(barAreaWidth int) HorizontalBarConfig {
	return HorizontalBarConfig{
		BarAreaWidth: barAreaWidth,
		LabelWidth:   DefaultLabelWidth,
		FilledChar:   DefaultFilledChar,
		EmptyChar:    DefaultEmptyChar,
	}
}

// CreateHorizontalBar renders "Label │████▱▱▱│ 12K (40.0%) suffix"
func CreateHorizontalBar(data BarData, config HorizontalBarConfig) string {
	barWidth := max(MinBarWidth, int(data.Percentage*float64(config.BarAreaWidth)/100))
	barWidth = min(barWidth, config.BarAreaWidth)
	emptyWidth := max(0, config.BarAreaWidth-barWidth)

	bar := strings.Repeat(config.FilledChar, barWidth) +
		strings.Repeat(config.EmptyChar, emptyWidth)

	value := fmt.Sprintf("%s (%4.1f%%)", utils.ByteSize(data.Bytes), data.Percentage)
	if data.Suffix != "" {
		value += " " + data.Suffix
	}

	return fmt.Sprintf("%-*s │%s│ %s",
		config.LabelWidth, TruncateString(data.Label, config.LabelWidth), data.Style.Render(bar), value)
}

// CreateHorizontalBarChart builds a complete bar chart with optional title
func CreateHorizontalBarChart(title string, bars []BarData, config HorizontalBarConfig) string {
	var lines []string

	if title != "" {
		lines = append(lines, title, "")
	}

	for _, bar := range bars {
		lines = append(lines, CreateHorizontalBar(bar, config))
	}

	return strings.Join(lines, "\n")
}

// PackageBars turns package statistics into bars, keeping at most limit rows
// and folding the rest into one "(other)" bar
func PackageBars(packages []jar.PackageStat, total uint64, limit int) []BarData {
	var bars []BarData
	var otherBytes uint64
	otherEntries := 0

	for i, p := range packages {
		if i >= limit {
			otherBytes += p.Size
			otherEntries += p.Entries
			continue
		}
		bars = append(bars, BarData{
			Label:      p.Name,
			Bytes:      p.Size,
			Percentage: utils.ByteSize(p.Size).Percent(utils.ByteSize(total)),
			Style:      InfoStyle,
			Suffix:     fmt.Sprintf("%d entries", p.Entries),
		})
	}

	if otherEntries > 0 {
		bars = append(bars, BarData{
			Label:      "(other)",
			Bytes:      otherBytes,
			Percentage: utils.ByteSize(otherBytes).Percent(utils.ByteSize(total)),
			Style:      MutedStyle,
			Suffix:     fmt.Sprintf("%d entries", otherEntries),
		})
	}

	return bars
}
