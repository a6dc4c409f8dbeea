package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/jvmch/internal/classfile/model"
	"github.com/mabhi256/jvmch/internal/jar"
)

func sampleReport() *jar.Report {
	manifest := jar.NewManifest()
	manifest.SetMainClass("com.example.App")

	return &jar.Report{
		Path: "app.jar",
		Entries: []jar.EntryInfo{
			{Name: "META-INF/", Kind: jar.KindDirectory},
			{Name: "META-INF/MANIFEST.MF", Kind: jar.KindManifest, Size: 60},
			{Name: "com/example/App.class", Kind: jar.KindClass, Size: 900, EntryPoint: true},
			{Name: "com/example/Tool.class", Kind: jar.KindClass, Size: 800, EntryPoint: true},
			{Name: "com/example/Bad.class", Kind: jar.KindClass, Size: 4, Malformed: true},
		},
		Classes:     3,
		Directories: 1,
		Size:        1764,
		Packages: []jar.PackageStat{
			{Name: "com/", Entries: 3, Size: 1704},
			{Name: "META-INF/", Entries: 1, Size: 60},
		},
		Manifest:  manifest,
		MainClass: "com.example.App",
		Scan: &jar.ScanResult{
			Classes: 3,
			Candidates: []jar.Candidate{
				{ClassName: "com.example.App", Entry: "com/example/App.class", Methods: []model.MethodDescriptor{
					{Name: model.MainMethodName, Descriptor: model.MainMethodDescriptor},
				}},
				{ClassName: "com.example.Tool", Entry: "com/example/Tool.class"},
			},
			Malformed: []jar.MalformedEntry{{Entry: "com/example/Bad.class", Err: errors.New("bad magic")}},
		},
	}
}

func TestRenderReport(t *testing.T) {
	out := RenderReport(sampleReport())

	assert.Contains(t, out, "app.jar")
	assert.Contains(t, out, "com.example.App")
	assert.Contains(t, out, "2 entry points")
	assert.Contains(t, out, "1. com.example.App")
	assert.Contains(t, out, "2. com.example.Tool")
	assert.Contains(t, out, "com/example/Bad.class")
	assert.Contains(t, out, "com/")
}

func TestRenderReportWithoutCandidates(t *testing.T) {
	report := sampleReport()
	report.Scan = &jar.ScanResult{}
	report.MainClass = ""

	out := RenderReport(report)
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "No class declares")
}

func TestPackageBarsFoldsRemainder(t *testing.T) {
	packages := []jar.PackageStat{
		{Name: "a/", Entries: 2, Size: 50},
		{Name: "b/", Entries: 1, Size: 30},
		{Name: "c/", Entries: 4, Size: 20},
	}

	bars := PackageBars(packages, 100, 1)
	require.Len(t, bars, 2)
	assert.Equal(t, "a/", bars[0].Label)
	assert.InDelta(t, 50.0, bars[0].Percentage, 0.001)
	assert.Equal(t, "(other)", bars[1].Label)
	assert.Equal(t, uint64(50), bars[1].Bytes)
	assert.Equal(t, "5 entries", bars[1].Suffix)
}

func TestPackageBarsZeroTotal(t *testing.T) {
	bars := PackageBars([]jar.PackageStat{{Name: "a/", Entries: 1}}, 0, 5)
	require.Len(t, bars, 1)
	assert.Zero(t, bars[0].Percentage)
}

func TestRenderManifest(t *testing.T) {
	out := RenderManifest(sampleReport())
	assert.Contains(t, out, "Manifest-Version: 1.0")
	assert.Contains(t, out, "Main-Class: com.example.App")

	report := sampleReport()
	report.Manifest = nil
	assert.Contains(t, RenderManifest(report), "No META-INF/MANIFEST.MF")
}

func TestRenderEntryPointsListsMethods(t *testing.T) {
	out := RenderEntryPoints(sampleReport())
	assert.Contains(t, out, "com/example/App.class")
	assert.Contains(t, out, model.MainMethodDescriptor)
}

func TestModelTabNavigation(t *testing.T) {
	m := initialModel(sampleReport())
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, EntriesTab, m.currentTab)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, EntryPointsTab, m.currentTab)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, ManifestTab, m.currentTab)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, EntriesTab, m.currentTab, "wraps around")

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, ManifestTab, m.currentTab)

	assert.Contains(t, m.View(), "Main-Class")
}

func TestModelScrollClamps(t *testing.T) {
	m := initialModel(sampleReport())
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 200})
	m.currentTab = ManifestTab

	for range 10 {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	m.View()
	assert.Equal(t, 0, m.scroll[ManifestTab], "content fits, nothing to scroll")

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.scroll[ManifestTab])
}

func TestModelQuit(t *testing.T) {
	m := initialModel(sampleReport())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEntryItemDescription(t *testing.T) {
	item := entryItem{info: jar.EntryInfo{Name: "a.txt", Kind: jar.KindResource, Size: 2048, CompressedSize: 1024}}
	assert.Equal(t, "a.txt", item.Title())
	assert.Equal(t, "resource · 2K → 1K · stored", item.Description())

	assert.Equal(t, "▶ x.class", entryItem{info: jar.EntryInfo{Name: "x.class", EntryPoint: true}}.Title())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "com/ex...", TruncateString("com/example/", 9))
	assert.Equal(t, "ünï...", TruncateString("ünïcödé", 6))
	assert.Equal(t, "..", TruncateString("abcdef", 2))
}
