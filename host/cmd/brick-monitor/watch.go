package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"brickgo/device"
	"brickgo/host/monitor"
	"brickgo/protocol"
)

type WatchCommand struct {
	SourceOptions
	MinMV float64 `long:"min-mv" default:"5000" description:"Bottom of the voltage chart in millivolts"`
	MaxMV float64 `long:"max-mv" default:"9000" description:"Top of the voltage chart in millivolts"`
}

const (
	headerHeight = 2 // title + blank line
	statusHeight = 2 // motor row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border

	voltsDataSet = "mv"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	voltsStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	cutoffStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// Direction colors
var directionColors = map[device.Direction]string{
	device.Off:     "241", // grey
	device.Forward: "46",  // green
	device.Reverse: "208", // orange
	device.Brake:   "196", // red
}

type watchModel struct {
	mon      *monitor.Monitor
	source   string
	chart    *streamlinechart.Model
	width    int // terminal width
	height   int // terminal height
	logs     []string
	last     *protocol.Telemetry
	quitting bool
}

func (m *watchModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// Messages from the monitor
type sampleMsg monitor.Sample
type logMsg string

func waitForSample(mon *monitor.Monitor) tea.Cmd {
	return func() tea.Msg {
		return sampleMsg(<-mon.Samples())
	}
}

func waitForLog(mon *monitor.Monitor) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-mon.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *watchModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - statusHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *watchModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialWatchModel(mon *monitor.Monitor, source string, minMV, maxMV float64) watchModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(minMV, maxMV),
	)
	chart.SetDataSetStyles(voltsDataSet, runes.ThinLineStyle, voltsStyle)

	return watchModel{
		mon:    mon,
		source: source,
		chart:  &chart,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		waitForSample(m.mon),
		waitForLog(m.mon),
	)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case sampleMsg:
		t := msg.Telemetry
		m.chart.PushDataSet(voltsDataSet, float64(t.Millivolts))
		m.chart.DrawAll()
		m.last = &t
		return m, waitForSample(m.mon)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.mon)
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return "Monitor stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Brick Monitor"))
	sb.WriteString(" - " + m.source)
	if m.width > 0 {
		sb.WriteString(statusStyle.Render(fmt.Sprintf("  [%dx%d]", m.width, m.height)))
	}
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Motors and battery
	sb.WriteString(m.renderStatus())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(m.width - 4).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("Press 'q' to quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func (m watchModel) renderStatus() string {
	if m.last == nil {
		return statusStyle.Render("waiting for telemetry...")
	}
	t := m.last

	items := []string{
		voltsStyle.Render(fmt.Sprintf("%d mV", t.Millivolts)) + statusStyle.Render(fmt.Sprintf(" (level %d)", t.Level)),
		renderMotor("left", t.Left),
		renderMotor("right", t.Right),
	}
	if t.Tripped() {
		items = append(items, cutoffStyle.Render("CUTOFF"))
	}

	stats := m.mon.Stats()
	items = append(items, statusStyle.Render(fmt.Sprintf("lost %d", stats.Lost)))
	return strings.Join(items, "  ")
}

func renderMotor(name string, mt protocol.MotorTelemetry) string {
	dir := device.Direction(mt.Direction)
	color, ok := directionColors[dir]
	if !ok {
		color = "241"
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	return style.Render("━━") + fmt.Sprintf(" %s %s/%d", name, dir, mt.Speed)
}

func (c *WatchCommand) Execute(args []string) error {
	if c.MaxMV <= c.MinMV {
		return fmt.Errorf("--max-mv must be above --min-mv")
	}

	mon, err := c.open()
	if err != nil {
		log.Fatalf("Failed to open %s: %v", c.describe(), err)
	}
	defer mon.Close()

	// Start monitor in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := mon.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Monitor error: %v", err)
		}
	}()

	// Run TUI
	p := tea.NewProgram(initialWatchModel(mon, c.describe(), c.MinMV, c.MaxMV), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}

	return nil
}
