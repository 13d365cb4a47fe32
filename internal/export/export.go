// Package export writes an evaluated grid as CSV, JSON or a text table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/grid"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatText, FormatCSV, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, csv or json)", s)
}

// Corner is the header of the angle column in the density table.
const Corner = `Angles \ Distances`

// Report is everything the table command prints.
type Report struct {
	Type    string                 `json:"type"`
	Profile []emitter.ProfilePoint `json:"profile"`
	Grid    grid.Result            `json:"grid"`
}

// Write encodes r in format f.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		_, err := fmt.Fprintln(w, RenderText(r))
		return err
	}
}

// TableHeader returns the density table header row.
func TableHeader(distances []float64) []string {
	out := make([]string, 0, len(distances)+1)
	out = append(out, Corner)
	for _, d := range distances {
		out = append(out, FormatDistance(d)+" m")
	}
	return out
}

// TableRows formats the linear table with the given precision.
func TableRows(g grid.Result, prec int) [][]string {
	rows := make([][]string, len(g.Angles))
	for i, a := range g.Angles {
		row := make([]string, 0, len(g.CoarseDistances)+1)
		row = append(row, strconv.FormatFloat(a, 'f', -1, 64))
		for _, v := range g.Table[i] {
			row = append(row, strconv.FormatFloat(v, 'f', prec, 64))
		}
		rows[i] = row
	}
	return rows
}

// FormatDistance prints a distance without trailing zeros.
func FormatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// WriteCSV writes the density table followed by a blank line and the profile.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TableHeader(r.Grid.CoarseDistances)); err != nil {
		return fmt.Errorf("csv write header: %w", err)
	}
	if err := cw.WriteAll(TableRows(r.Grid, -1)); err != nil {
		return fmt.Errorf("csv write table: %w", err)
	}
	if err := cw.Write(nil); err != nil {
		return fmt.Errorf("csv write separator: %w", err)
	}
	if err := cw.Write([]string{"Angular Displacement", "Relative Radiant Intensity"}); err != nil {
		return fmt.Errorf("csv write profile header: %w", err)
	}
	for _, p := range r.Profile {
		rec := []string{
			strconv.FormatFloat(p.Angle, 'f', -1, 64),
			strconv.FormatFloat(p.Factor, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv write profile: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF41")).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00CC33")).Padding(0, 1).Align(lipgloss.Right)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#008F11"))
)

// RenderText draws the density table and the profile table with lipgloss.
func RenderText(r Report) string {
	density := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		StyleFunc(cellStyle).
		Headers(TableHeader(r.Grid.CoarseDistances)...).
		Rows(TableRows(r.Grid, 2)...)

	profileRows := make([][]string, len(r.Profile))
	for i, p := range r.Profile {
		profileRows[i] = []string{
			strconv.FormatFloat(p.Angle, 'f', -1, 64),
			strconv.FormatFloat(p.Factor, 'f', -1, 64),
		}
	}
	profile := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		StyleFunc(cellStyle).
		Headers("Angular Displacement", "Relative Radiant Intensity").
		Rows(profileRows...)

	title := styleHeader.Render(fmt.Sprintf("Received power density (mW/m²), %s", r.Type))
	return lipgloss.JoinVertical(lipgloss.Left, title, density.Render(), "", profile.Render())
}

func cellStyle(row, _ int) lipgloss.Style {
	if row == table.HeaderRow {
		return styleHeader
	}
	return styleCell
}
