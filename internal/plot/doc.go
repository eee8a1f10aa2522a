// Package plot turns resolved Scorecard series into a renderable figure
// description: a shared year axis, one independently scaled y-axis per
// series, per-series color/marker styling and a combined legend. The
// description is backend-neutral; the TUI draws it on a character canvas
// and the export path renders it to SVG.
package plot
