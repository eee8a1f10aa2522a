package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/scline/collegevis/internal/config"
	"github.com/scline/collegevis/internal/logging"
	"github.com/scline/collegevis/internal/plot"
	"github.com/scline/collegevis/internal/scorecard"
	"github.com/scline/collegevis/internal/tui/styles"
	"github.com/scline/collegevis/internal/util"
)

// screen selects which of the two views is active.
type screen int

const (
	screenPlot screen = iota
	screenPanel
)

// zone is the focused region of the series panel.
type zone int

const (
	zoneColleges zone = iota
	zoneFields
	zoneRequests
)

// AddSeriesRequest appends one series request to the pending list.
type AddSeriesRequest struct {
	Request scorecard.SeriesRequest
}

// RemoveSeriesRequest drops the pending request at Index.
type RemoveSeriesRequest struct {
	Index int
}

// SubmitPlot resolves the pending list and replaces the figure wholesale.
type SubmitPlot struct{}

// Model is the Bubbletea model: a plot view over the last submitted figure
// and a series panel that edits the pending request list. Each submit runs
// resolve-then-layout synchronously, so there is never a partially updated
// figure on screen.
type Model struct {
	engine  *scorecard.Engine
	catalog *scorecard.Catalog
	cfg     *config.Config
	log     *logging.Logger

	screen screen
	zone   zone

	filter     textinput.Model
	filtered   []string
	collegeIdx int
	fieldIdx   int
	startYear  int
	endYear    int

	requests   RequestList
	requestIdx int

	figure plot.Figure
	diags  []scorecard.Diagnostic

	status string
	width  int
	height int
}

// NewModel builds the initial model: empty figure, empty request list, and
// a year range covering the catalog.
func NewModel(engine *scorecard.Engine, catalog *scorecard.Catalog, cfg *config.Config, log *logging.Logger) Model {
	filter := textinput.New()
	filter.Placeholder = "filter colleges"
	filter.CharLimit = 64
	filter.Focus()

	first, last := yearBounds(catalog)
	fig, _ := plot.Layout(nil)

	return Model{
		engine:    engine,
		catalog:   catalog,
		cfg:       cfg,
		log:       log,
		screen:    screenPlot,
		filter:    filter,
		filtered:  catalog.Colleges,
		startYear: first,
		endYear:   last,
		requests:  NewRequestList(cfg.Plot.MaxSeries),
		figure:    fig,
	}
}

func yearBounds(catalog *scorecard.Catalog) (first, last int) {
	if len(catalog.Years) == 0 {
		return 0, 0
	}
	first, _ = strconv.Atoi(catalog.Years[0])
	last, _ = strconv.Atoi(catalog.Years[len(catalog.Years)-1])
	return first, last
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case AddSeriesRequest:
		next, err := m.requests.Add(msg.Request)
		if err != nil {
			m.status = fmt.Sprintf("cannot add series: %v", err)
			return m, nil
		}
		m.requests = next
		m.status = fmt.Sprintf("added %s (%d pending)", msg.Request.Label(), m.requests.Len())
		return m, nil

	case RemoveSeriesRequest:
		m.requests = m.requests.Remove(msg.Index)
		if m.requestIdx >= m.requests.Len() && m.requestIdx > 0 {
			m.requestIdx--
		}
		m.status = fmt.Sprintf("%d pending", m.requests.Len())
		return m, nil

	case SubmitPlot:
		return m.submit(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// submit runs the full render pass: resolve every pending request, lay out
// the figure, and surface diagnostics in the status line.
func (m Model) submit() Model {
	items := m.requests.Items()
	if max := m.cfg.Plot.MaxSeries; max > 0 && len(items) > max {
		m.status = fmt.Sprintf("cannot plot %d series, limit is %d", len(items), max)
		return m
	}

	resolved, diags := m.engine.Resolve(items)
	fig, layoutDiags := plot.Layout(resolved)
	m.figure = fig
	m.diags = scorecard.MergeDiagnostics(diags, layoutDiags)
	m.screen = screenPlot

	switch {
	case len(items) == 0:
		m.status = "plot cleared"
	case len(m.diags) > 0:
		m.status = fmt.Sprintf("plotted %d series, %d without data", len(items), len(m.diags))
	default:
		m.status = fmt.Sprintf("plotted %d series", len(items))
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.screen == screenPlot {
		return m.handlePlotKey(msg)
	}
	return m.handlePanelKey(msg)
}

func (m Model) handlePlotKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s", "enter":
		m.screen = screenPanel
		m.zone = zoneColleges
		m.filter.Focus()
		return m, textinput.Blink
	case "e":
		m.status = m.export()
		return m, nil
	}
	return m, nil
}

func (m Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenPlot
		return m, nil

	case "tab":
		m.zone = (m.zone + 1) % 3
		m.syncFocus()
		return m, nil

	case "shift+tab":
		m.zone = (m.zone + 2) % 3
		m.syncFocus()
		return m, nil

	case "up":
		m.moveSelection(-1)
		return m, nil

	case "down":
		m.moveSelection(1)
		return m, nil

	case "left":
		if m.startYear > 0 {
			m.startYear--
		}
		return m, nil

	case "right":
		m.startYear++
		return m, nil

	case "shift+left":
		if m.endYear > 0 {
			m.endYear--
		}
		return m, nil

	case "shift+right":
		m.endYear++
		return m, nil

	case "enter":
		if m.zone == zoneRequests {
			return m, func() tea.Msg { return SubmitPlot{} }
		}
		req, ok := m.currentRequest()
		if !ok {
			m.status = "select a college and a field first"
			return m, nil
		}
		return m, func() tea.Msg { return AddSeriesRequest{Request: req} }
	}

	if m.zone == zoneRequests {
		switch msg.String() {
		case "d", "x", "backspace":
			if m.requests.Len() > 0 {
				idx := m.requestIdx
				return m, func() tea.Msg { return RemoveSeriesRequest{Index: idx} }
			}
			return m, nil
		}
	}

	// Remaining keystrokes feed the college filter when it has focus.
	if m.zone == zoneColleges {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.refilter()
		return m, cmd
	}
	return m, nil
}

func (m *Model) syncFocus() {
	if m.zone == zoneColleges {
		m.filter.Focus()
	} else {
		m.filter.Blur()
	}
}

func (m *Model) moveSelection(delta int) {
	switch m.zone {
	case zoneColleges:
		m.collegeIdx = clamp(m.collegeIdx+delta, len(m.filtered))
	case zoneFields:
		m.fieldIdx = clamp(m.fieldIdx+delta, len(m.catalog.Fields))
	case zoneRequests:
		m.requestIdx = clamp(m.requestIdx+delta, m.requests.Len())
	}
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m *Model) refilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.filtered = m.catalog.Colleges
	} else {
		filtered := make([]string, 0, len(m.catalog.Colleges))
		for _, college := range m.catalog.Colleges {
			if strings.Contains(strings.ToLower(college), query) {
				filtered = append(filtered, college)
			}
		}
		m.filtered = filtered
	}
	m.collegeIdx = clamp(m.collegeIdx, len(m.filtered))
}

func (m Model) currentRequest() (scorecard.SeriesRequest, bool) {
	if m.collegeIdx >= len(m.filtered) || m.fieldIdx >= len(m.catalog.Fields) {
		return scorecard.SeriesRequest{}, false
	}
	return scorecard.SeriesRequest{
		College:   m.filtered[m.collegeIdx],
		Field:     m.catalog.Fields[m.fieldIdx].Name,
		StartYear: m.startYear,
		EndYear:   m.endYear,
	}, true
}

// export writes the current figure to a timestamped SVG file and returns
// the status line for it.
func (m Model) export() string {
	name := fmt.Sprintf("collegevis-%s.svg", time.Now().Format("20060102-150405"))
	path := filepath.Join(m.cfg.Export.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		m.log.WithComponent("tui").Error("export failed", "error", err)
		return fmt.Sprintf("export failed: %v", err)
	}
	defer f.Close()

	if err := plot.ExportSVG(f, m.figure, m.cfg.Export.Width, m.cfg.Export.Height); err != nil {
		m.log.WithComponent("tui").Error("export failed", "error", err)
		return fmt.Sprintf("export failed: %v", err)
	}
	m.log.WithComponent("tui").Info("figure exported", "path", path)
	return fmt.Sprintf("exported %s", path)
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var body string
	if m.screen == screenPlot {
		body = m.viewPlot()
	} else {
		body = m.viewPanel()
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render("College Scorecard Visualizer"))
	b.WriteByte('\n')
	b.WriteString(body)
	b.WriteByte('\n')
	if m.status != "" {
		b.WriteString(styles.StatusBar.Width(m.width).Render(m.status))
		b.WriteByte('\n')
	}
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m Model) viewPlot() string {
	height := m.cfg.TUI.CanvasHeight
	if max := m.height - 8; max > 0 && height > max {
		height = max
	}
	c := canvas{width: m.width - 4, height: height}
	content := c.render(m.figure)

	for _, d := range m.diags {
		content += "\n" + util.TruncateANSI(styles.Warning.Render(d.String()), m.width-6)
	}
	return styles.Canvas.Width(m.width - 2).Render(content)
}

func (m Model) viewPanel() string {
	colWidth := (m.width - 6) / 3

	colleges := m.viewList("Colleges", m.zone == zoneColleges, collegeLines(m), m.collegeIdx, colWidth)
	fields := m.viewList("Fields", m.zone == zoneFields, fieldLines(m.catalog), m.fieldIdx, colWidth)
	requests := m.viewList(
		fmt.Sprintf("Pending (%d/%d)", m.requests.Len(), m.cfg.Plot.MaxSeries),
		m.zone == zoneRequests, requestLines(m.requests), m.requestIdx, colWidth)

	panel := lipgloss.JoinHorizontal(lipgloss.Top, colleges, fields, requests)
	years := fmt.Sprintf("Years: %d to %d", m.startYear, m.endYear)
	return panel + "\n" + styles.Muted.Render(years)
}

func collegeLines(m Model) []string {
	lines := make([]string, 0, len(m.filtered)+1)
	lines = append(lines, m.filter.View())
	lines = append(lines, m.filtered...)
	return lines
}

func fieldLines(catalog *scorecard.Catalog) []string {
	lines := make([]string, len(catalog.Fields))
	for i, f := range catalog.Fields {
		lines[i] = fmt.Sprintf("%s (%s)", f.Name, f.Scope)
	}
	return lines
}

func requestLines(requests RequestList) []string {
	items := requests.Items()
	lines := make([]string, len(items))
	for i, req := range items {
		lines[i] = req.String()
	}
	return lines
}

// viewList renders one panel column with the selection highlighted and the
// window scrolled to keep it visible. The college column's first line is
// the filter input and is never treated as selectable.
func (m Model) viewList(title string, active bool, lines []string, selected, width int) string {
	titleStyle := styles.ZoneInactive
	if active {
		titleStyle = styles.ZoneActive
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))

	visible := m.height - 12
	if visible < 3 {
		visible = 3
	}

	offset := 0
	if selected >= visible {
		offset = selected - visible + 1
	}

	header := 0
	if strings.HasPrefix(title, "Colleges") {
		b.WriteByte('\n')
		b.WriteString(lines[0])
		header = 1
	}

	items := lines[header:]
	for i := offset; i < len(items) && i < offset+visible; i++ {
		b.WriteByte('\n')
		line := util.TruncateString(items[i], width-2)
		if active && i == selected {
			b.WriteString(styles.Selected.Render(line))
		} else {
			b.WriteString(styles.Unselected.Render(line))
		}
	}

	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m Model) viewHelp() string {
	key := styles.HelpKey.Render
	var help string
	if m.screen == screenPlot {
		help = fmt.Sprintf("%s series  %s export  %s quit", key("s"), key("e"), key("q"))
	} else {
		help = fmt.Sprintf("%s zone  %s select  %s years  %s add/submit  %s remove  %s back",
			key("tab"), key("↑↓"), key("←→"), key("enter"), key("d"), key("esc"))
	}
	return styles.HelpBar.Render(help)
}
