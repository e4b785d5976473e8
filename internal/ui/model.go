// Package ui is the terminal live calculator. Every keystroke goes through
// the session, so results are always those of the parameters on screen.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/catalog"
	"github.com/structura/structura/internal/report"
	"github.com/structura/structura/internal/session"
)

// Tab is one view of the calculator
type Tab int

const (
	TabAnalysis Tab = iota
	TabWorkflow
	TabCompliance
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabWorkflow:
		return "Workflow"
	case TabCompliance:
		return "Compliance"
	default:
		return "Analysis"
	}
}

// Exporter writes a dossier somewhere and returns where it went
type Exporter func(d report.Dossier) (string, error)

// editTarget says what the text input is editing
type editTarget int

const (
	editNone editTarget = iota
	editField
	editStage
	editDate
)

// Model is the bubbletea model of the live calculator
type Model struct {
	session  *session.Session
	exporter Exporter
	styles   Styles

	tab   Tab
	field int // cursor on the analysis tab
	phase int // cursor on the workflow tab
	check int // cursor on the compliance tab

	input   textinput.Model
	editing editTarget

	status string
	err    error
	width  int
}

// New returns a model over s. exporter may be nil, which disables export.
func New(s *session.Session, exporter Exporter) Model {
	in := textinput.New()
	in.CharLimit = 40
	in.Width = 24
	in.Prompt = "› "

	return Model{
		session:  s,
		exporter: exporter,
		styles:   DefaultStyles(),
		input:    in,
	}
}

// Session returns the session behind the model
func (m Model) Session() *session.Session {
	return m.session
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.editing != editNone {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.editing = editNone
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()

	// Apply on every keystroke; invalid text keeps the previous value
	switch m.editing {
	case editField:
		m.err = m.session.Set(analysis.FieldNames[m.field], value)
	case editStage:
		m.err = m.session.RenamePhase(m.currentPhaseID(), value)
	case editDate:
		m.err = m.session.SetPhaseDate(m.currentPhaseID(), value)
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		return m, tea.Quit
	case "tab":
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	case "e":
		m.export()
		return m, nil
	case "s":
		m.session.SyncSensors()
		return m, nil
	}

	switch m.tab {
	case TabAnalysis:
		return m.updateAnalysis(key)
	case TabWorkflow:
		return m.updateWorkflow(key)
	default:
		return m.updateCompliance(key)
	}
}

func (m Model) updateAnalysis(key string) (tea.Model, tea.Cmd) {
	name := analysis.FieldNames[m.field]
	switch key {
	case "up", "k":
		m.field = clampCursor(m.field-1, len(analysis.FieldNames))
	case "down", "j":
		m.field = clampCursor(m.field+1, len(analysis.FieldNames))
	case "enter":
		if isChoice(name) {
			m.err = m.session.Set(name, nextChoice(m.session.Parameters(), name))
			return m, nil
		}
		value, _ := m.session.Parameters().Field(name)
		return m.startEditing(editField, value)
	case "right", "l", " ":
		if isChoice(name) {
			m.err = m.session.Set(name, nextChoice(m.session.Parameters(), name))
		}
	case "r":
		m.session.Reset()
		m.err = nil
	}
	return m, nil
}

func (m Model) updateWorkflow(key string) (tea.Model, tea.Cmd) {
	phases := m.session.Phases()
	switch key {
	case "up", "k":
		m.phase = clampCursor(m.phase-1, len(phases))
	case "down", "j":
		m.phase = clampCursor(m.phase+1, len(phases))
	case "a":
		m.session.AddPhase()
		m.phase = len(m.session.Phases()) - 1
	case "x", "delete":
		if len(phases) > 0 {
			m.err = m.session.RemovePhase(m.currentPhaseID())
			m.phase = clampCursor(m.phase, len(m.session.Phases()))
		}
	case "left", "h", "right", "l":
		if len(phases) > 0 {
			delta := session.ProgressStep
			if key == "left" || key == "h" {
				delta = -delta
			}
			_, m.err = m.session.SetProgress(m.currentPhaseID(), phases[m.phase].Progress+delta)
		}
	case "n", "enter":
		if len(phases) > 0 {
			return m.startEditing(editStage, phases[m.phase].Stage)
		}
	case "t":
		if len(phases) > 0 {
			return m.startEditing(editDate, phases[m.phase].Date)
		}
	}
	return m, nil
}

func (m Model) updateCompliance(key string) (tea.Model, tea.Cmd) {
	items := m.session.Checklist()
	switch key {
	case "up", "k":
		m.check = clampCursor(m.check-1, len(items))
	case "down", "j":
		m.check = clampCursor(m.check+1, len(items))
	case "enter", " ":
		if len(items) > 0 {
			_, m.err = m.session.Toggle(items[m.check].ID)
		}
	}
	return m, nil
}

func (m Model) startEditing(target editTarget, value string) (tea.Model, tea.Cmd) {
	m.editing = target
	m.err = nil
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) export() {
	if m.exporter == nil {
		m.status = "export disabled"
		return
	}
	title := report.DefaultTitle
	if m.tab == TabWorkflow {
		title = "Workflow Dossier"
	}
	d := m.session.ExportDossier(title)
	where, err := m.exporter(d)
	if err != nil {
		m.err = err
		return
	}
	m.status = "saved " + where
}

func (m Model) currentPhaseID() int {
	phases := m.session.Phases()
	if m.phase < 0 || m.phase >= len(phases) {
		return 0
	}
	return phases[m.phase].ID
}

func clampCursor(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func isChoice(name string) bool {
	switch name {
	case analysis.FieldLoadType, analysis.FieldMaterial, analysis.FieldShape, analysis.FieldSeismicZone:
		return true
	}
	return false
}

func nextChoice(p analysis.Parameters, name string) string {
	switch name {
	case analysis.FieldLoadType:
		if p.LoadType == analysis.PointLoad {
			return string(analysis.UDL)
		}
		return string(analysis.PointLoad)
	case analysis.FieldMaterial:
		return catalog.Next(catalog.Materials, func(m catalog.Material) string { return m.ID }, p.MaterialID)
	case analysis.FieldShape:
		return catalog.Next(catalog.Shapes, func(s catalog.Shape) string { return s.ID }, p.ShapeID)
	case analysis.FieldSeismicZone:
		return catalog.Next(catalog.SeismicZones, func(z catalog.SeismicZone) string { return z.Level }, p.SeismicZone)
	}
	return ""
}
