package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura/structura/internal/analysis"
)

var stamp = time.Date(2025, 11, 5, 14, 30, 0, 0, time.UTC)

func TestNewID(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 9)
	assert.Equal(t, strings.ToUpper(id), id)
	assert.NotEqual(t, id, NewID())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Structura_Audit_Structural_Dynamics_Audit.txt", FileName("Structural Dynamics Audit", "txt"))
	assert.Equal(t, "Structura_Audit_Workflow_Dossier.pdf", FileName("Workflow  Dossier", ".pdf"))
	assert.Equal(t, "Structura_Audit_Structural_Dynamics_Audit.txt", FileName("  ", "txt"))
}

func TestNewDefaultsTitle(t *testing.T) {
	d := New("", analysis.DefaultParameters(), stamp)
	assert.Equal(t, DefaultTitle, d.Title)
	assert.Equal(t, analysis.Evaluate(analysis.DefaultParameters()), d.Result)
	assert.Equal(t, "Reinforced Steel", d.MaterialName())
}

func TestWriteText(t *testing.T) {
	p := analysis.DefaultParameters()
	p.WindSpeed = 100
	d := New("Structural Dynamics Audit", p, stamp)
	d.ID = "ABC123XYZ"

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, d))

	want := strings.Join([]string{
		"STRUCTURA PROFESSIONAL ENGINEERING REPORT",
		"REPORT ID: ABC123XYZ",
		"DATE: 2025-11-05 14:30:00",
		"------------------------------------------",
		"ANALYSIS PARAMETERS:",
		"- Material: Reinforced Steel",
		"- Structure Height: 35m",
		"- Span/Node Length: 12.5m",
		"- Load Case: 4500kg (POINT)",
		"- Wind Velocity: 100 km/h",
		"------------------------------------------",
		"SIMULATION RESULTS:",
		"- Vertical Deflection: 0 mm",
		"- Material Stress: 0.61 MPa",
		"- Peak Wind Pressure: 0.77 kPa",
		"- Bearing Pressure: 9.81 kPa",
		"- Total Self-Weight: 7065 kg",
		"------------------------------------------",
		"STATUS: STRUCTURALLY SOUND",
		"------------------------------------------",
		"ENGINE: LOCAL STRUCTURA RELAY (OFFLINE)",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteTextFailureStatus(t *testing.T) {
	p := analysis.DefaultParameters()
	p.MaterialID = "timber"
	p.Load = 500000
	p.LoadType = analysis.UDL

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, New("Overload", p, stamp)))
	assert.Contains(t, buf.String(), "STATUS: DESIGN ALERT: CRITICAL FAILURE")
	assert.Contains(t, buf.String(), "- Load Case: 500000kg (UDL)")
	assert.Contains(t, buf.String(), "- Material: Glulam Timber")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, New("Structural Dynamics Audit", analysis.DefaultParameters(), stamp)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 500)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "TXT": FormatText, "text": FormatText, " pdf ": FormatPDF} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("docx")
	assert.Error(t, err)

	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Contains(t, FormatText.ContentType(), "text/plain")
}

func TestWriteDispatch(t *testing.T) {
	d := New("", analysis.DefaultParameters(), stamp)

	var txt, pdf bytes.Buffer
	require.NoError(t, Write(&txt, d, FormatText))
	require.NoError(t, Write(&pdf, d, FormatPDF))
	assert.True(t, strings.HasPrefix(txt.String(), "STRUCTURA PROFESSIONAL ENGINEERING REPORT"))
	assert.True(t, bytes.HasPrefix(pdf.Bytes(), []byte("%PDF-")))
}
