package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"irradiance-map.klederson.com/internal/config"
	"irradiance-map.klederson.com/internal/emitter"
	"irradiance-map.klederson.com/internal/export"
	"irradiance-map.klederson.com/internal/grid"
	"irradiance-map.klederson.com/internal/heatmap"
	"irradiance-map.klederson.com/internal/ui"
)

// View selects the map rendering.
type View int

const (
	ViewHeatmap View = iota
	ViewBeam
)

func (v View) String() string {
	if v == ViewBeam {
		return "beam"
	}
	return "heatmap"
}

type focus int

const (
	focusParams focus = iota
	focusMap
)

// shared is state every copy of AppModel points at.
type shared struct {
	history *History
	log     zerolog.Logger
}

// AppModel is the root Bubble Tea model. Every accepted parameter change
// replaces the previous result with a full recomputation.
type AppModel struct {
	width  int
	height int

	catalog emitter.Catalog
	initial emitter.Params
	params  emitter.Params
	model   emitter.Model
	result  grid.Result
	err     error
	notice  string

	cursor  int
	editing bool
	buffer  string
	focus   focus
	view    View
	probe   heatmap.Probe

	exportDir string

	shared *shared
}

// Option customises a new AppModel.
type Option func(*AppModel)

// WithLogger sets the logger for recompute and export events.
func WithLogger(l zerolog.Logger) Option {
	return func(m *AppModel) { m.shared.log = l }
}

// WithExportDir sets where the export key writes CSV files.
func WithExportDir(dir string) Option {
	return func(m *AppModel) { m.exportDir = dir }
}

// New creates an AppModel from an initial parameter snapshot. Invalid
// initial parameters are rejected so the view always starts with a result.
func New(cat emitter.Catalog, initial emitter.Params, opts ...Option) (AppModel, error) {
	m := AppModel{
		catalog:   cat,
		initial:   initial,
		exportDir: ".",
		probe:     heatmap.Probe{Row: 0, Col: int(1 / config.FineStep)},
		shared: &shared{
			history: NewHistory(config.HistorySize),
			log:     zerolog.Nop(),
		},
	}
	for _, o := range opts {
		o(&m)
	}

	model, err := initial.Model(cat)
	if err != nil {
		return m, err
	}
	m.params = initial
	m.model = model
	m.result = grid.ComputeDefault(model)
	return m, nil
}

// Params returns the current parameter snapshot.
func (m AppModel) Params() emitter.Params { return m.params }

// Result returns the current evaluation.
func (m AppModel) Result() grid.Result { return m.result }

// Err returns the last rejected input, if any.
func (m AppModel) Err() error { return m.err }

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case ExportedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.shared.log.Error().Err(msg.Err).Msg("export failed")
			return m, nil
		}
		m.notice = "saved " + msg.Path
		m.shared.log.Info().Str("path", msg.Path).Msg("table exported")
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "tab", "shift+tab":
		if m.focus == focusParams {
			m.focus = focusMap
		} else {
			m.focus = focusParams
		}
		return m, nil

	case "v", "V":
		if m.view == ViewHeatmap {
			m.view = ViewBeam
		} else {
			m.view = ViewHeatmap
		}
		return m, nil

	case "u", "U":
		return m.undo(), nil

	case "r", "R":
		return m.apply(m.initial), nil

	case "e", "E":
		return m, m.exportCmd()
	}

	if m.focus == focusMap {
		return m.handleMapKey(msg), nil
	}
	return m.handleParamKey(msg), nil
}

func (m AppModel) handleParamKey(msg tea.KeyMsg) AppModel {
	fs := fields(m.params)

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(fs)-1 {
			m.cursor++
		}

	case "left", "h":
		return m.step(fs[m.cursor], -1)

	case "right", "l":
		return m.step(fs[m.cursor], 1)

	case "enter":
		if f := fs[m.cursor]; f.editable() {
			m.editing = true
			m.buffer = f.text(m.params)
		}
	}
	return m
}

// step handles left/right on the type selector and the LED count slider.
func (m AppModel) step(f field, dir int) AppModel {
	switch f.kind {
	case fieldType:
		types := m.catalog.Types()
		idx := 0
		for i, t := range types {
			if t == m.params.Type {
				idx = i
			}
		}
		idx = (idx + dir + len(types)) % len(types)
		next, err := m.params.WithType(m.catalog, types[idx])
		if err != nil {
			m.err = err
			return m
		}
		return m.apply(next)

	case fieldCount:
		next := m.params
		next.Count = max(config.MinCount, min(config.MaxCount, next.Count+dir))
		if next.Count == m.params.Count {
			return m
		}
		return m.apply(next)
	}
	return m
}

func (m AppModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.editing = false
		m.buffer = ""

	case tea.KeyEnter:
		f := fields(m.params)[m.cursor]
		m.editing = false
		next, err := f.commit(m.params, m.buffer)
		m.buffer = ""
		if err != nil {
			m.err = err
			m.shared.log.Warn().Err(err).Msg("input rejected")
			return m, nil
		}
		return m.apply(next), nil

	case tea.KeyBackspace:
		if r := []rune(m.buffer); len(r) > 0 {
			m.buffer = string(r[:len(r)-1])
		}

	case tea.KeyRunes, tea.KeySpace:
		m.buffer += string(msg.Runes)
	}
	return m, nil
}

func (m AppModel) handleMapKey(msg tea.KeyMsg) AppModel {
	rows, cols := len(m.result.Angles), len(m.result.FineDistances)
	switch msg.String() {
	case "up", "k":
		m.probe.Row--
	case "down", "j":
		m.probe.Row++
	case "left", "h":
		m.probe.Col--
	case "right", "l":
		m.probe.Col++
	case "pgup":
		m.probe.Col -= int(1 / config.FineStep)
	case "pgdown":
		m.probe.Col += int(1 / config.FineStep)
	case "home":
		m.probe.Col = 0
	case "end":
		m.probe.Col = cols - 1
	}
	m.probe = m.probe.Clamp(rows, cols)
	return m
}

// apply validates next and, when accepted, recomputes every grid from it.
// Rejected input keeps the previous parameters and result.
func (m AppModel) apply(next emitter.Params) AppModel {
	model, err := next.Model(m.catalog)
	if err != nil {
		m.err = err
		m.shared.log.Warn().Err(err).Msg("parameters rejected")
		return m
	}

	m.shared.history.Push(m.params)
	return m.recompute(next, model)
}

func (m AppModel) undo() AppModel {
	prev, ok := m.shared.history.Pop()
	if !ok {
		m.notice = "nothing to undo"
		return m
	}
	model, err := prev.Model(m.catalog)
	if err != nil {
		m.err = err
		return m
	}
	return m.recompute(prev, model)
}

func (m AppModel) recompute(p emitter.Params, model emitter.Model) AppModel {
	start := time.Now()
	m.params = p
	m.model = model
	m.result = grid.ComputeDefault(model)
	m.err = nil
	m.notice = ""
	m.probe = m.probe.Clamp(len(m.result.Angles), len(m.result.FineDistances))
	m.cursor = min(m.cursor, len(fields(p))-1)

	m.shared.log.Debug().
		Str("type", p.Type).
		Int("count", p.Count).
		Float64("intensity", p.Intensity).
		Float64("environment", p.Environment).
		Float64("windshield", p.Windshield).
		Dur("took", time.Since(start)).
		Msg("grids recomputed")
	return m
}

func (m AppModel) exportCmd() tea.Cmd {
	report := export.Report{Type: m.params.Type, Profile: m.model.Profile.Points(), Grid: m.result}
	path := filepath.Join(m.exportDir, fmt.Sprintf("irradiance-%s.csv", time.Now().Format("20060102_150405")))
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return ExportedMsg{Err: fmt.Errorf("export: %w", err)}
		}
		defer f.Close()
		if err := export.WriteCSV(f, report); err != nil {
			return ExportedMsg{Err: fmt.Errorf("export: %w", err)}
		}
		return ExportedMsg{Path: path}
	}
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	menuH := 1
	statusH := 1
	bodyH := max(10, m.height-menuH-statusH)

	leftW := max(34, min(48, m.width/3))
	rightW := max(30, m.width-leftW)

	fs := fields(m.params)
	paramsH := min(bodyH-4, len(fs)+7)
	profileH := bodyH - paramsH

	tableH := min(bodyH/2, len(m.result.Angles)+6)
	mapH := bodyH - tableH

	menuBar := ui.RenderMenuBar(m.width, m.params.Type, m.view.String())

	paramsPanel := ui.RenderParamsPanel(formFields(m.params, fs, m.cursor, m.editing, m.buffer),
		m.cursor, leftW, paramsH, m.focus == focusParams)
	profilePanel := ui.RenderProfilePanel(m.model.Profile.Points(), leftW, profileH)
	left := paramsPanel + "\n" + profilePanel

	right := m.renderMapPanel(rightW, mapH) + "\n" + ui.RenderTablePanel(m.result, rightW, tableH)

	statusBar := ui.RenderStatusBar(m.width, ui.StatusInfo{
		Count:       m.params.Count,
		Intensity:   m.params.Intensity,
		Aggregate:   m.model.Emitter.Aggregate(),
		Environment: m.model.Attenuation.EnvironmentOrDefault(),
		Windshield:  m.model.Attenuation.WindshieldOrDefault(),
		MaxRange:    config.MaxDistance,
		Err:         m.statusErr(),
	})

	return ui.ComposeLayout(menuBar, left, right, statusBar)
}

func (m AppModel) statusErr() error {
	if m.err != nil {
		return m.err
	}
	if m.notice != "" {
		return noticeError(m.notice)
	}
	return nil
}

// noticeError lets informational notices reuse the status slot.
type noticeError string

func (n noticeError) Error() string { return string(n) }

func (m AppModel) renderMapPanel(width, height int) string {
	innerW := max(10, width-4)
	chartH := max(3, height-3-5)

	var chart string
	if m.view == ViewBeam {
		chart = heatmap.RenderBeam(innerW, chartH, m.result, m.probe)
	} else {
		chart = heatmap.Render(innerW, chartH, m.result, m.probe)
	}

	scale := heatmap.NewScale(m.result.Heatmap)
	content := chart + "\n" + heatmap.RenderColorBar(innerW, scale) + "\n" + ui.RenderReadout(m.reading(scale), innerW)

	title := "RECEIVED POWER DENSITY"
	if m.focus == focusMap {
		title += "  arrows move probe"
	}
	return ui.RenderPanel(width, height, title, content, m.focus == focusMap)
}

func (m AppModel) reading(scale heatmap.Scale) ui.Reading {
	r := m.result
	p := m.probe.Clamp(len(r.Angles), len(r.FineDistances))
	if len(r.Angles) == 0 || len(r.FineDistances) == 0 {
		return ui.Reading{Scale: scale}
	}
	return ui.Reading{
		Distance: r.FineDistances[p.Col],
		Angle:    r.Angles[p.Row],
		Density:  r.Fine[p.Row][p.Col],
		Falloff:  r.Heatmap[p.Row],
		Scale:    scale,
	}
}
