package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/jvmch/internal/jar"
	"github.com/mabhi256/jvmch/utils"
)

const chromeHeight = 4 // tab line, border, blank line, help bar

type entryItem struct {
	info jar.EntryInfo
}

func (i entryItem) FilterValue() string {
	return i.info.Name
}

func (i entryItem) Title() string {
	switch {
	case i.info.EntryPoint:
		return "▶ " + i.info.Name
	case i.info.Malformed:
		return "✗ " + i.info.Name
	default:
		return i.info.Name
	}
}

func (i entryItem) Description() string {
	if i.info.Kind == jar.KindDirectory {
		return "directory"
	}
	return fmt.Sprintf("%s · %s → %s · %s",
		i.info.Kind, utils.ByteSize(i.info.Size), utils.ByteSize(i.info.CompressedSize), i.info.MethodName())
}

func initialModel(report *jar.Report) *Model {
	items := make([]list.Item, 0, len(report.Entries))
	for _, e := range report.Entries {
		items = append(items, entryItem{info: e})
	}

	entries := list.New(items, list.NewDefaultDelegate(), 0, 0)
	entries.Title = report.Path
	entries.SetShowStatusBar(true)
	entries.SetFilteringEnabled(true)
	entries.SetShowHelp(false)

	return &Model{
		report:     report,
		currentTab: EntriesTab,
		entries:    entries,
		scroll:     make(map[TabType]int),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.entries.SetSize(msg.Width, max(1, msg.Height-chromeHeight))
		return m, nil

	case tea.KeyMsg:
		// While typing a filter every key belongs to the list
		if m.currentTab == EntriesTab && m.entries.FilterState() == list.Filtering {
			return m.updateEntries(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab1):
			m.currentTab = EntriesTab
		case key.Matches(msg, m.keys.Tab2):
			m.currentTab = EntryPointsTab
		case key.Matches(msg, m.keys.Tab3):
			m.currentTab = ManifestTab
		case key.Matches(msg, m.keys.Left):
			m.currentTab = utils.GetPrevEnum(m.currentTab, lastTab)
		case key.Matches(msg, m.keys.Right):
			m.currentTab = utils.GetNextEnum(m.currentTab, lastTab)
		default:
			return m.handleTabSpecificKeys(msg)
		}
		return m, nil
	}

	if m.currentTab == EntriesTab {
		return m.updateEntries(msg)
	}
	return m, nil
}

func (m *Model) updateEntries(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.entries, cmd = m.entries.Update(msg)
	return m, cmd
}

func (m *Model) handleTabSpecificKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentTab == EntriesTab {
		return m.updateEntries(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.scroll[m.currentTab] > 0 {
			m.scroll[m.currentTab]--
		}
	case key.Matches(msg, m.keys.Down):
		m.scroll[m.currentTab]++
	}
	return m, nil
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.currentTab {
	case EntriesTab:
		content = m.entries.View()
	case EntryPointsTab:
		content = m.scrolled(RenderEntryPoints(m.report))
	case ManifestTab:
		content = m.scrolled(RenderManifest(m.report))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		HelpBarStyle.Render(m.help.View(m.keys)),
	)
}

// scrolled clips content to the visible area, clamping the stored offset
func (m *Model) scrolled(content string) string {
	lines := strings.Split(content, "\n")
	visible := max(1, m.height-chromeHeight)

	offset := min(m.scroll[m.currentTab], max(0, len(lines)-visible))
	m.scroll[m.currentTab] = offset

	end := min(len(lines), offset+visible)
	return strings.Join(lines[offset:end], "\n")
}

func (m *Model) renderHeader() string {
	tabs := []string{}
	tabIcons := []string{"📦", "▶", "📄"}

	for i := EntriesTab; i <= lastTab; i++ {
		style := TabInactiveStyle
		indicator := " "

		if i == m.currentTab {
			style = TabActiveStyle
			indicator = "●"
		}

		tabs = append(tabs, style.Render(fmt.Sprintf("%s %s %s [%d]", indicator, tabIcons[i], i, int(i)+1)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(tabs, "  "),
		strings.Repeat("─", m.width),
	)
}

// RenderEntryPoints lists every entry point candidate with its matching methods
func RenderEntryPoints(report *jar.Report) string {
	lines := []string{renderEntryPoints(report), ""}

	for _, c := range report.Scan.Candidates {
		lines = append(lines, InfoStyle.Bold(true).Render(c.ClassName), MutedStyle.Render("  "+c.Entry))
		for _, method := range c.Methods {
			lines = append(lines, "    "+method.String())
		}
		lines = append(lines, "")
	}

	if malformed := renderMalformed(report); malformed != "" {
		lines = append(lines, malformed)
	}

	return strings.Join(lines, "\n")
}

// RenderManifest shows the manifest attributes in file order
func RenderManifest(report *jar.Report) string {
	if report.Manifest == nil {
		return WarningStyle.Render("No " + jar.ManifestPath + " in this archive")
	}

	lines := []string{TitleStyle.Render(jar.ManifestPath), ""}
	for _, attr := range report.Manifest.Main.All() {
		lines = append(lines, renderAttribute(attr))
	}

	for _, section := range report.Manifest.Sections {
		lines = append(lines, "")
		for _, attr := range section.All() {
			lines = append(lines, renderAttribute(attr))
		}
	}

	return strings.Join(lines, "\n")
}

func renderAttribute(attr jar.Attribute) string {
	name := InfoStyle.Render(attr.Name + ":")
	if strings.EqualFold(attr.Name, jar.AttrMainClass) {
		return name + " " + GoodStyle.Render(attr.Value)
	}
	return name + " " + attr.Value
}

// Run opens the interactive archive browser
func Run(report *jar.Report) error {
	model := initialModel(report)

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := program.Run()
	return err
}
