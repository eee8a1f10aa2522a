package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scline/collegevis/internal/plot"
	"github.com/scline/collegevis/internal/tui/styles"
)

// canvas renders a figure description onto a character grid. Each visible
// axis keeps its own y scale, so the grid carries markers and the shared
// year axis but no common y labels; per-axis ranges appear in the legend.
type canvas struct {
	width  int
	height int
}

type cell struct {
	r     rune
	color string
}

// render returns the figure as styled terminal lines. The Empty state is a
// centered caption; a populated figure is the marker grid, the year axis,
// and a legend line per visible series.
func (c canvas) render(fig plot.Figure) string {
	if c.width < 20 || c.height < 6 {
		return styles.Muted.Render("window too small")
	}

	if fig.State == plot.StateEmpty {
		return lipgloss.Place(c.width, c.height,
			lipgloss.Center, lipgloss.Center,
			styles.Muted.Render(fig.Caption))
	}

	plotRows := c.height - 2 // one row for the axis, one for tick labels
	plotCols := c.width

	grid := make([][]cell, plotRows)
	for i := range grid {
		grid[i] = make([]cell, plotCols)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	for _, ax := range fig.VisibleAxes() {
		c.plotAxis(grid, fig, ax)
	}

	var b strings.Builder
	for _, row := range grid {
		b.WriteString(renderRow(row))
		b.WriteByte('\n')
	}
	b.WriteString(c.axisLine(fig))
	b.WriteByte('\n')
	b.WriteString(c.tickLabels(fig))

	for _, entry := range fig.Legend {
		b.WriteByte('\n')
		b.WriteString(styles.SeriesStyle(entry.Style.Color.Hex).
			Render(fmt.Sprintf("%c %s", entry.Style.Marker.Rune(), entry.Label)))
	}
	return b.String()
}

func (c canvas) plotAxis(grid [][]cell, fig plot.Figure, ax plot.Axis) {
	rows := len(grid)
	cols := len(grid[0])
	for i := range ax.X {
		col := c.xColumn(fig, ax.X[i], cols)
		row := yRow(ax, ax.Y[i], rows)
		if row < 0 || row >= rows || col < 0 || col >= cols {
			continue
		}
		grid[row][col] = cell{r: ax.Style.Marker.Rune(), color: ax.Style.Color.Hex}
	}
}

func (c canvas) xColumn(fig plot.Figure, year, cols int) int {
	span := fig.XMax - fig.XMin
	if span == 0 {
		return cols / 2
	}
	return (year - fig.XMin) * (cols - 1) / span
}

func yRow(ax plot.Axis, v float64, rows int) int {
	span := ax.YMax - ax.YMin
	if span == 0 {
		return rows / 2
	}
	return rows - 1 - int((v-ax.YMin)/span*float64(rows-1))
}

func (c canvas) axisLine(fig plot.Figure) string {
	line := []rune(strings.Repeat("─", c.width))
	for _, year := range fig.XTicks() {
		col := c.xColumn(fig, year, c.width)
		if col >= 0 && col < len(line) {
			line[col] = '┬'
		}
	}
	return styles.Muted.Render(string(line))
}

// tickLabels writes year labels under as many ticks as fit without
// overlapping, always including the first and last year.
func (c canvas) tickLabels(fig plot.Figure) string {
	line := []rune(strings.Repeat(" ", c.width))
	ticks := fig.XTicks()
	lastEnd := -2
	for i, year := range ticks {
		label := fmt.Sprintf("%d", year)
		col := c.xColumn(fig, year, c.width)
		if col <= lastEnd+1 && i != len(ticks)-1 {
			continue
		}
		if col+len(label) > c.width {
			col = c.width - len(label)
		}
		if col <= lastEnd {
			continue
		}
		for j, r := range label {
			line[col+j] = r
		}
		lastEnd = col + len(label)
	}
	return styles.Muted.Render(string(line))
}

func renderRow(row []cell) string {
	var b strings.Builder
	i := 0
	for i < len(row) {
		if row[i].color == "" {
			j := i
			for j < len(row) && row[j].color == "" {
				j++
			}
			runes := make([]rune, 0, j-i)
			for _, c := range row[i:j] {
				runes = append(runes, c.r)
			}
			b.WriteString(string(runes))
			i = j
			continue
		}
		b.WriteString(styles.SeriesStyle(row[i].color).Render(string(row[i].r)))
		i++
	}
	return b.String()
}
