package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/catalog"
)

var fieldLabels = map[string]string{
	analysis.FieldSpan:         "Span (m)",
	analysis.FieldLoad:         "Load (kg)",
	analysis.FieldLoadType:     "Load type",
	analysis.FieldMaterial:     "Material",
	analysis.FieldDepth:        "Depth (mm)",
	analysis.FieldWidth:        "Width (mm)",
	analysis.FieldShape:        "Section",
	analysis.FieldSafetyFactor: "Safety factor",
	analysis.FieldSeismicZone:  "Seismic zone",
	analysis.FieldWindSpeed:    "Wind (km/h)",
	analysis.FieldHeight:       "Height (m)",
	analysis.FieldFootingArea:  "Footing (m²)",
}

// View renders the model
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("STRUCTURA · LIVE ENGINE"))
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n\n")

	var body string
	switch m.tab {
	case TabWorkflow:
		body = m.renderWorkflow()
	case TabCompliance:
		body = m.renderCompliance()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderFields(), "  ", m.renderResults())
	}
	sb.WriteString(body)
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render("! " + m.err.Error()))
		sb.WriteString("\n")
	} else if m.status != "" {
		sb.WriteString(m.styles.Success.Render(m.status))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderLog())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render(m.help()))
	return sb.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		style := m.styles.Tab
		if t == m.tab {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFields() string {
	p := m.session.Parameters()
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("PARAMETERS"))
	sb.WriteString("\n")

	for i, name := range analysis.FieldNames {
		cursor := "  "
		if i == m.field {
			cursor = m.styles.Selected.Render("▸ ")
		}

		var value string
		if i == m.field && m.editing == editField {
			value = m.input.View()
		} else {
			value = m.styles.Value.Render(displayValue(p, name))
		}
		sb.WriteString(cursor + m.styles.Label.Render(fieldLabels[name]) + value + "\n")
	}
	return m.styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func displayValue(p analysis.Parameters, name string) string {
	switch name {
	case analysis.FieldMaterial:
		if mat, ok := catalog.LookupMaterial(p.MaterialID); ok {
			return mat.Name
		}
	case analysis.FieldShape:
		if s, ok := catalog.LookupShape(p.ShapeID); ok {
			return s.Label
		}
	case analysis.FieldSeismicZone:
		if z, ok := catalog.LookupSeismicZone(p.SeismicZone); ok {
			return fmt.Sprintf("Zone %s - %s", z.Level, z.Label)
		}
	case analysis.FieldLoadType:
		return strings.ToUpper(string(p.LoadType))
	}
	v, _ := p.Field(name)
	return v
}

func (m Model) renderResults() string {
	r := m.session.Result().Rounded()
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("RESULTS"))
	sb.WriteString("\n")

	row := func(label, value string) {
		sb.WriteString(m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n")
	}
	row("Deflection", fmt.Sprintf("%.3f mm", r.DeflectionMm))
	row("Stress", fmt.Sprintf("%.2f MPa", r.StressMPa))
	row("Wind pressure", fmt.Sprintf("%.2f kPa", r.WindPressureKPa))
	row("Soil pressure", fmt.Sprintf("%.2f kPa", r.SoilPressureKPa))
	row("Self-weight", fmt.Sprintf("%d kg", r.WeightKg))
	sb.WriteString("\n")

	if r.IsCompliant {
		sb.WriteString(m.styles.Success.Render("✓ " + r.Status()))
	} else {
		sb.WriteString(m.styles.Error.Render("✗ " + r.Status()))
	}
	return m.styles.Panel.Render(sb.String())
}

func (m Model) renderWorkflow() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("PROJECT SITE TIMELINE"))
	sb.WriteString("\n")

	phases := m.session.Phases()
	if len(phases) == 0 {
		sb.WriteString(m.styles.Muted.Render("no phases, press a to add one"))
	}
	for i, p := range phases {
		cursor := "  "
		if i == m.phase {
			cursor = m.styles.Selected.Render("▸ ")
		}

		stage := p.Stage
		date := p.Date
		if i == m.phase && m.editing == editStage {
			stage = m.input.View()
		}
		if i == m.phase && m.editing == editDate {
			date = m.input.View()
		}

		filled := p.Progress / 5
		bar := strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
		sb.WriteString(fmt.Sprintf("%s%-8s %-34s %s %3d%%\n", cursor, date, stage, bar, p.Progress))
	}
	return m.styles.Panel.Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) renderCompliance() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("GLOBAL SITE COMPLIANCE CHECKLIST"))
	sb.WriteString("\n")

	items := m.session.Checklist()
	for i, c := range items {
		cursor := "  "
		if i == m.check {
			cursor = m.styles.Selected.Render("▸ ")
		}
		mark := m.styles.Muted.Render("[ ] PENDING ")
		if c.Done {
			mark = m.styles.Success.Render("[✓] VERIFIED")
		}
		sb.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, mark, c.Label))
	}
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf("\n%d of %d nodes verified", m.session.Completed(), len(items))))
	return m.styles.Panel.Render(sb.String())
}

func (m Model) renderLog() string {
	lines := m.session.Log()
	return m.styles.Muted.Render(strings.Join(lines, "\n"))
}

func (m Model) help() string {
	if m.editing != editNone {
		return "type to edit · enter/esc done · ctrl+c quit"
	}
	common := "tab switch · e export · s sync · q quit"
	switch m.tab {
	case TabWorkflow:
		return "↑/↓ select · a add · x remove · ←/→ progress · n rename · t date · " + common
	case TabCompliance:
		return "↑/↓ select · enter toggle · " + common
	default:
		return "↑/↓ select · enter edit · →/space cycle · r reset · " + common
	}
}
