package catalog

// SeismicZone amplifies deflection according to site risk
type SeismicZone struct {
	Level      string  `json:"level" yaml:"level"`
	Label      string  `json:"label" yaml:"label"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"` // >= 1.0
}

// DefaultSeismicZone is the stable zone
const DefaultSeismicZone = "1"

// SeismicZones is the fixed seismic zone table
var SeismicZones = []SeismicZone{
	{Level: "1", Label: "Stable", Multiplier: 1.0},
	{Level: "2", Label: "Moderate", Multiplier: 1.25},
	{Level: "3", Label: "High Risk", Multiplier: 1.6},
	{Level: "4", Label: "Critical/Fault", Multiplier: 2.1},
}

// LookupSeismicZone finds a zone by level
func LookupSeismicZone(level string) (SeismicZone, bool) {
	for _, z := range SeismicZones {
		if z.Level == level {
			return z, true
		}
	}
	return SeismicZone{}, false
}

// Shape is a cross-section family with an effective-area derating factor
type Shape struct {
	ID     string  `json:"id" yaml:"id"`
	Label  string  `json:"label" yaml:"label"`
	Factor float64 `json:"factor" yaml:"factor"` // in (0, 1]
}

// Shape identifiers
const (
	IBeam = "ibeam"
	Box   = "box"
	Solid = "solid"
)

// DefaultShape is the symmetric I-beam
const DefaultShape = IBeam

// Shapes is the fixed cross-section table
var Shapes = []Shape{
	{ID: IBeam, Label: "I-Beam (Symmetry)", Factor: 0.8},
	{ID: Box, Label: "Box Section", Factor: 0.95},
	{ID: Solid, Label: "Solid Core", Factor: 1.0},
}

// LookupShape finds a cross-section shape by id
func LookupShape(id string) (Shape, bool) {
	for _, s := range Shapes {
		if s.ID == id {
			return s, true
		}
	}
	return Shape{}, false
}

// Next returns the entry after current in table order, wrapping around.
// Unknown values restart at the first entry.
func Next[T any](table []T, key func(T) string, current string) string {
	if len(table) == 0 {
		return current
	}
	for i, item := range table {
		if key(item) == current {
			return key(table[(i+1)%len(table)])
		}
	}
	return key(table[0])
}
