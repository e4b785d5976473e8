package session

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura/structura/internal/analysis"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 10, 12, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestNewSession(t *testing.T) {
	s := New(WithClock(fixedClock()))

	assert.Equal(t, analysis.DefaultParameters(), s.Parameters())
	assert.Equal(t, analysis.Evaluate(analysis.DefaultParameters()), s.Result())
	assert.Equal(t, []string{
		"[SYSTEM] Structura Professional Engine Initialized.",
		"[MODE] Local Execution / Zero Latency Relay.",
	}, s.Log())
	assert.Len(t, s.Phases(), 3)
	assert.Len(t, s.Checklist(), 4)
	assert.Equal(t, 3, s.Completed())
}

func TestWithParameters(t *testing.T) {
	p := analysis.DefaultParameters()
	p.Span = 6
	s := New(WithParameters(p))
	assert.Equal(t, p, s.Parameters())
	assert.Len(t, s.Log(), 2)

	bad := analysis.DefaultParameters()
	bad.Span = -1
	s = New(WithClock(fixedClock()), WithParameters(bad))
	assert.Equal(t, analysis.DefaultParameters(), s.Parameters())
	assert.Equal(t, analysis.Evaluate(analysis.DefaultParameters()), s.Result())
	require.Len(t, s.Log(), 3)
	assert.Contains(t, s.Log()[0], "Starting parameters rejected: invalid parameters: span must be positive")
}

func TestSetRecomputes(t *testing.T) {
	s := New()
	before := s.Result()

	require.NoError(t, s.Set("load", "9000"))
	assert.Equal(t, 9000.0, s.Parameters().Load)
	assert.Greater(t, s.Result().DeflectionMm, before.DeflectionMm)
	assert.Equal(t, analysis.Evaluate(s.Parameters()), s.Result())
}

func TestSetKeepsPreviousOnInvalid(t *testing.T) {
	s := New()
	before := s.Parameters()

	err := s.Set("span", "-3")
	var verr *analysis.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, s.Parameters())

	err = s.Set("span", "abc")
	require.Error(t, err)
	assert.Equal(t, before, s.Parameters())

	err = s.Set("material", "granite")
	require.Error(t, err)
	assert.Equal(t, "steel", s.Parameters().MaterialID)
}

func TestApply(t *testing.T) {
	s := New()
	require.NoError(t, s.Apply(func(p *analysis.Parameters) {
		p.LoadType = analysis.UDL
		p.SeismicZone = "3"
	}))
	assert.Equal(t, analysis.UDL, s.Parameters().LoadType)

	s.Reset()
	assert.Equal(t, analysis.DefaultParameters(), s.Parameters())
}

func TestLogCapAndOrder(t *testing.T) {
	s := New(WithClock(fixedClock()))
	for i := 1; i <= 6; i++ {
		s.Logf("entry %d", i)
	}

	log := s.Log()
	require.Len(t, log, MaxLogEntries)
	assert.Equal(t, "[09:00:06] entry 6", log[0])
	assert.Equal(t, "[09:00:02] entry 2", log[4])
}

func TestExportDossier(t *testing.T) {
	s := New(WithClock(fixedClock()))
	d := s.ExportDossier("Workflow Dossier")

	assert.Equal(t, "Workflow Dossier", d.Title)
	assert.Equal(t, s.Result(), d.Result)
	assert.Equal(t, "[09:00:02] Dossier Exported: Workflow Dossier", s.Log()[0])
}

func TestSyncSensors(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.SyncSensors()
	log := s.Log()
	assert.Equal(t, "[09:00:02] Hardware Nodes Synchronized.", log[0])
	assert.Equal(t, "[09:00:01] Initiating local hardware parity check...", log[1])
}

func TestWorkflow(t *testing.T) {
	s := New(WithClock(fixedClock()))

	p := s.AddPhase()
	assert.Equal(t, Phase{ID: 4, Stage: NewPhaseStage, Date: NewPhaseDate}, p)
	assert.Contains(t, s.Log()[0], "New workflow node registered.")

	require.NoError(t, s.RemovePhase(2))
	assert.Contains(t, s.Log()[0], "Phase node decommissioned.")

	// Count is back to 3 but id 4 is taken
	p = s.AddPhase()
	assert.Equal(t, 5, p.ID)

	require.NoError(t, s.RenamePhase(3, "Roof Deck"))
	require.NoError(t, s.SetPhaseDate(3, "JAN 20"))

	got, err := s.SetProgress(3, 47)
	require.NoError(t, err)
	assert.Equal(t, 45, got)

	want := []Phase{
		{ID: 1, Stage: "Site Preparation & Excavation", Date: "OCT 12", Progress: 100},
		{ID: 3, Stage: "Roof Deck", Date: "JAN 20", Progress: 45},
		{ID: 4, Stage: NewPhaseStage, Date: NewPhaseDate},
		{ID: 5, Stage: NewPhaseStage, Date: NewPhaseDate},
	}
	if diff := cmp.Diff(want, s.Phases()); diff != "" {
		t.Errorf("phases mismatch (-want +got):\n%s", diff)
	}

	assert.Error(t, s.RemovePhase(2))
	assert.Error(t, s.RenamePhase(99, "x"))
	assert.Error(t, s.SetPhaseDate(99, "x"))
	_, err = s.SetProgress(99, 10)
	assert.Error(t, err)
}

func TestSnapProgress(t *testing.T) {
	cases := map[int]int{-10: 0, 0: 0, 2: 0, 3: 5, 47: 45, 48: 50, 100: 100, 140: 100}
	for in, want := range cases {
		assert.Equal(t, want, snapProgress(in), "input %d", in)
	}
}

func TestToggle(t *testing.T) {
	s := New(WithClock(fixedClock()))

	item, err := s.Toggle(3)
	require.NoError(t, err)
	assert.True(t, item.Done)
	assert.Equal(t, 4, s.Completed())
	assert.Equal(t, "[09:00:01] Node Validation: Fire Safety Coating Certification", s.Log()[0])

	_, err = s.Toggle(3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Completed())

	_, err = s.Toggle(42)
	assert.Error(t, err)
}
