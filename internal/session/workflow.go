package session

import "fmt"

// Phase is one stage of the project timeline
type Phase struct {
	ID       int    `json:"id"`
	Stage    string `json:"stage"`
	Date     string `json:"date"`
	Progress int    `json:"progress"` // percent, multiple of ProgressStep
}

// CheckItem is one entry of the compliance checklist
type CheckItem struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// ProgressStep is the granularity of phase progress
const ProgressStep = 5

// Defaults for a newly added phase
const (
	NewPhaseStage = "Next Phase Node"
	NewPhaseDate  = "TBD"
)

// DefaultPhases returns the seeded project timeline
func DefaultPhases() []Phase {
	return []Phase{
		{ID: 1, Stage: "Site Preparation & Excavation", Date: "OCT 12", Progress: 100},
		{ID: 2, Stage: "Foundation & Load Bearing Pour", Date: "NOV 05", Progress: 45},
		{ID: 3, Stage: "Main Frame Erection", Date: "DEC 14", Progress: 0},
	}
}

// DefaultChecklist returns the seeded compliance checklist
func DefaultChecklist() []CheckItem {
	return []CheckItem{
		{ID: 1, Label: "Seismic Dampening Calibration", Done: true},
		{ID: 2, Label: "BIM LOD 400 Parity Check", Done: true},
		{ID: 3, Label: "Fire Safety Coating Certification", Done: false},
		{ID: 4, Label: "Site Safety Protocol Audit", Done: true},
	}
}

// Phases returns a copy of the timeline
func (s *Session) Phases() []Phase {
	out := make([]Phase, len(s.phases))
	copy(out, s.phases)
	return out
}

// AddPhase appends a placeholder phase. Its id is the phase count plus one,
// bumped past any id already in use.
func (s *Session) AddPhase() Phase {
	id := len(s.phases) + 1
	for s.phaseIndex(id) >= 0 {
		id++
	}
	p := Phase{ID: id, Stage: NewPhaseStage, Date: NewPhaseDate}
	s.phases = append(s.phases, p)
	s.Logf("New workflow node registered.")
	return p
}

// RemovePhase deletes a phase
func (s *Session) RemovePhase(id int) error {
	i := s.phaseIndex(id)
	if i < 0 {
		return fmt.Errorf("phase %d not found", id)
	}
	s.phases = append(s.phases[:i], s.phases[i+1:]...)
	s.Logf("Phase node decommissioned.")
	return nil
}

// RenamePhase sets the stage name of a phase
func (s *Session) RenamePhase(id int, stage string) error {
	i := s.phaseIndex(id)
	if i < 0 {
		return fmt.Errorf("phase %d not found", id)
	}
	s.phases[i].Stage = stage
	return nil
}

// SetPhaseDate sets the free-form date label of a phase
func (s *Session) SetPhaseDate(id int, date string) error {
	i := s.phaseIndex(id)
	if i < 0 {
		return fmt.Errorf("phase %d not found", id)
	}
	s.phases[i].Date = date
	return nil
}

// SetProgress sets the progress of a phase, clamped to 0..100 and rounded
// to the nearest ProgressStep. It returns the stored value.
func (s *Session) SetProgress(id, percent int) (int, error) {
	i := s.phaseIndex(id)
	if i < 0 {
		return 0, fmt.Errorf("phase %d not found", id)
	}
	s.phases[i].Progress = snapProgress(percent)
	return s.phases[i].Progress, nil
}

func snapProgress(percent int) int {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return (percent + ProgressStep/2) / ProgressStep * ProgressStep
}

func (s *Session) phaseIndex(id int) int {
	for i, p := range s.phases {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Checklist returns a copy of the compliance checklist
func (s *Session) Checklist() []CheckItem {
	out := make([]CheckItem, len(s.checklist))
	copy(out, s.checklist)
	return out
}

// Toggle flips a checklist item and logs the validation
func (s *Session) Toggle(id int) (CheckItem, error) {
	for i := range s.checklist {
		if s.checklist[i].ID == id {
			s.checklist[i].Done = !s.checklist[i].Done
			s.Logf("Node Validation: %s", s.checklist[i].Label)
			return s.checklist[i], nil
		}
	}
	return CheckItem{}, fmt.Errorf("checklist item %d not found", id)
}

// Completed counts checked items
func (s *Session) Completed() int {
	n := 0
	for _, c := range s.checklist {
		if c.Done {
			n++
		}
	}
	return n
}
