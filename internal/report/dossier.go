package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/structura/structura/internal/analysis"
	"github.com/structura/structura/internal/catalog"
)

// DefaultTitle is used when a dossier is exported without a title
const DefaultTitle = "Structural Dynamics Audit"

// Dossier is an exported copy of one analysis: the parameters that were
// evaluated and the full-precision result they produced
type Dossier struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	CreatedAt  time.Time           `json:"created_at"`
	Parameters analysis.Parameters `json:"parameters"`
	Result     analysis.Result     `json:"result"`
}

// New evaluates p and wraps the outcome in a dossier stamped at now
func New(title string, p analysis.Parameters, now time.Time) Dossier {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return Dossier{
		ID:         NewID(),
		Title:      title,
		CreatedAt:  now,
		Parameters: p,
		Result:     analysis.Evaluate(p),
	}
}

// NewID returns a 9 character uppercase report identifier
func NewID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:9])
}

// FileName builds the download name for a dossier, e.g.
// "Structura_Audit_Workflow_Dossier.pdf"
func FileName(title, ext string) string {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	return "Structura_Audit_" + strings.Join(strings.Fields(title), "_") + "." + strings.TrimPrefix(ext, ".")
}

// MaterialName resolves the display name of the dossier's material
func (d Dossier) MaterialName() string {
	if m, ok := catalog.LookupMaterial(d.Parameters.MaterialID); ok {
		return m.Name
	}
	return d.Parameters.MaterialID
}

// line is one "label: value" entry of a dossier section
type line struct {
	label string
	value string
}

func (d Dossier) parameterLines() []line {
	p := d.Parameters
	return []line{
		{"Material", d.MaterialName()},
		{"Structure Height", num(p.Height) + "m"},
		{"Span/Node Length", num(p.Span) + "m"},
		{"Load Case", num(p.Load) + "kg (" + strings.ToUpper(string(p.LoadType)) + ")"},
		{"Wind Velocity", num(p.WindSpeed) + " km/h"},
	}
}

func (d Dossier) resultLines() []line {
	r := d.Result.Rounded()
	return []line{
		{"Vertical Deflection", num(r.DeflectionMm) + " mm"},
		{"Material Stress", num(r.StressMPa) + " MPa"},
		{"Peak Wind Pressure", num(r.WindPressureKPa) + " kPa"},
		{"Bearing Pressure", num(r.SoilPressureKPa) + " kPa"},
		{"Total Self-Weight", strconv.Itoa(r.WeightKg) + " kg"},
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
