package catalog

// Material holds the reference properties of a structural material
type Material struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	ElasticModulus float64 `json:"elastic_modulus" yaml:"elastic_modulus"` // E (GPa)
	YieldStrength  float64 `json:"yield_strength" yaml:"yield_strength"`   // Allowable stress (MPa)
	Density        float64 `json:"density" yaml:"density"`                 // kg/m³
}

// Material identifiers
const (
	Steel    = "steel"
	Concrete = "concrete"
	Carbon   = "carbon"
	Timber   = "timber"
)

// DefaultMaterial is used when no material is selected
const DefaultMaterial = Steel

// Materials is the fixed material reference set
var Materials = []Material{
	{
		ID:             Steel,
		Name:           "Reinforced Steel",
		ElasticModulus: 200,
		YieldStrength:  250,
		Density:        7850,
	},
	{
		ID:             Concrete,
		Name:           "C30 Structural Concrete",
		ElasticModulus: 30,
		YieldStrength:  30,
		Density:        2400,
	},
	{
		ID:             Carbon,
		Name:           "Carbon Composite",
		ElasticModulus: 250,
		YieldStrength:  600,
		Density:        1600,
	},
	{
		ID:             Timber,
		Name:           "Glulam Timber",
		ElasticModulus: 12,
		YieldStrength:  24,
		Density:        600,
	},
}

// LookupMaterial finds a material by id
func LookupMaterial(id string) (Material, bool) {
	for _, m := range Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

// MaterialIDs returns the material identifiers in table order
func MaterialIDs() []string {
	ids := make([]string, len(Materials))
	for i, m := range Materials {
		ids[i] = m.ID
	}
	return ids
}
