package analysis

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura/structura/internal/catalog"
)

// boundaryParameters produce a deflection of exactly 5.0 mm:
// I = 12·10³/12000 = 1, raw = 288·10³/(48·12·1) = 500, 500·1·1/100 = 5.
func boundaryParameters() Parameters {
	return Parameters{
		Span:         10,
		Load:         288,
		LoadType:     PointLoad,
		MaterialID:   catalog.Timber,
		Depth:        10,
		Width:        12,
		ShapeID:      catalog.Solid,
		SafetyFactor: 1.0,
		SeismicZone:  "1",
		WindSpeed:    0,
		Height:       0,
		FootingArea:  1,
	}
}

func TestEvaluatePointLoadBaseline(t *testing.T) {
	p := DefaultParameters()
	r := Evaluate(p)

	inertia := MomentOfInertia(p.Width, p.Depth)
	assert.InDelta(t, 1_518_750, inertia, 1e-6)

	raw := RawDeflection(PointLoad, 4500, 12.5, 200, inertia)
	assert.InDelta(t, 4500*math.Pow(12.5, 3)/(48*200*1_518_750), raw, 1e-15)
	assert.InDelta(t, raw*1.5*1.0/100, r.DeflectionMm, 1e-15)

	assert.InDelta(t, 0.613125, r.StressMPa, 1e-9)
	assert.InDelta(t, 1.1025, r.WindPressureKPa, 1e-9)
	assert.InDelta(t, 9.81, r.SoilPressureKPa, 1e-9)
	assert.Equal(t, 7065, r.WeightKg)
	assert.True(t, r.IsCompliant)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	p := DefaultParameters()
	first := Evaluate(p)
	second := Evaluate(p)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, math.Float64bits(first.DeflectionMm), math.Float64bits(second.DeflectionMm))
}

func TestEvaluateConcurrent(t *testing.T) {
	p := DefaultParameters()
	want := Evaluate(p)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Evaluate(p)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "goroutine %d", i)
	}
}

func TestLoadMonotonicity(t *testing.T) {
	for _, lt := range []LoadType{PointLoad, UDL} {
		low := DefaultParameters()
		low.LoadType = lt
		high := low
		high.Load = low.Load + 100

		rl, rh := Evaluate(low), Evaluate(high)
		assert.Greater(t, rh.StressMPa, rl.StressMPa, string(lt))
		assert.Greater(t, rh.SoilPressureKPa, rl.SoilPressureKPa, string(lt))
		assert.Greater(t, rh.DeflectionMm, rl.DeflectionMm, string(lt))
	}
}

func TestZeroDivisorGuard(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*Parameters)
	}{
		{"zero footing", func(p *Parameters) { p.FootingArea = 0 }},
		{"negative footing", func(p *Parameters) { p.FootingArea = -2 }},
		{"zero span point", func(p *Parameters) { p.Span = 0 }},
		{"zero span udl", func(p *Parameters) { p.Span = 0; p.LoadType = UDL }},
		{"both zero", func(p *Parameters) { p.Span = 0; p.FootingArea = 0; p.LoadType = UDL }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameters()
			tc.modify(&p)
			r := Evaluate(p)
			for name, v := range map[string]float64{
				"deflection": r.DeflectionMm,
				"stress":     r.StressMPa,
				"wind":       r.WindPressureKPa,
				"soil":       r.SoilPressureKPa,
			} {
				assert.False(t, math.IsNaN(v), "%s is NaN", name)
				assert.False(t, math.IsInf(v, 0), "%s is infinite", name)
			}
		})
	}
}

func TestZeroFootingUsesFloor(t *testing.T) {
	p := DefaultParameters()
	p.FootingArea = 0
	r := Evaluate(p)
	assert.InDelta(t, p.Load*Gravity/(MinDivisor*1000), r.SoilPressureKPa, 1e-3)
}

func TestComplianceBoundary(t *testing.T) {
	p := boundaryParameters()
	r := Evaluate(p)
	require.Equal(t, 5.0, r.DeflectionMm)

	yield := catalog.Materials[3].YieldStrength
	require.Less(t, r.StressMPa, yield, "stress must pass so only deflection decides")
	assert.False(t, r.IsCompliant, "deflection at exactly the ceiling is not compliant")

	p.SafetyFactor = 0.999
	r = Evaluate(p)
	assert.Less(t, r.DeflectionMm, DeflectionCeilingMm)
	assert.True(t, r.IsCompliant)
}

func TestIsCompliantStrict(t *testing.T) {
	assert.False(t, IsCompliant(5.0, 1, 250))
	assert.False(t, IsCompliant(1, 250, 250))
	assert.True(t, IsCompliant(4.999, 249.99, 250))
}

func TestUDLDiffersFromPointLoad(t *testing.T) {
	point := DefaultParameters()
	udl := point
	udl.LoadType = UDL

	rp, ru := Evaluate(point), Evaluate(udl)
	assert.NotEqual(t, rp.DeflectionMm, ru.DeflectionMm)
	// 5PL³/384 against PL³/48
	assert.InDelta(t, 0.625, ru.DeflectionMm/rp.DeflectionMm, 1e-12)

	// Only deflection depends on the load distribution
	assert.Equal(t, rp.StressMPa, ru.StressMPa)
	assert.Equal(t, rp.WeightKg, ru.WeightKg)
}

func TestSeismicAmplification(t *testing.T) {
	zone1 := DefaultParameters()
	zone4 := zone1
	zone4.SeismicZone = "4"

	r1, r4 := Evaluate(zone1), Evaluate(zone4)
	assert.InDelta(t, 2.1, r4.DeflectionMm/r1.DeflectionMm, 1e-12)
	assert.Equal(t, r1.StressMPa, r4.StressMPa)
}

func TestShapeFactorEffect(t *testing.T) {
	ibeam := DefaultParameters()
	solid := ibeam
	solid.ShapeID = catalog.Solid

	ri, rs := Evaluate(ibeam), Evaluate(solid)
	assert.Less(t, rs.StressMPa, ri.StressMPa)
	assert.InDelta(t, 0.8, rs.StressMPa/ri.StressMPa, 1e-12)
	assert.Equal(t, 8831, rs.WeightKg)
	assert.InDelta(t, 1/0.8, float64(rs.WeightKg)/float64(ri.WeightKg), 1e-3)
}

func TestUnknownKeysFallBackToDefaults(t *testing.T) {
	p := DefaultParameters()
	p.MaterialID = "adamantium"
	p.SeismicZone = "9"
	p.ShapeID = "hex"

	assert.Equal(t, Evaluate(DefaultParameters()), Evaluate(p))
}

func TestMaterialChangesStiffnessAndWeight(t *testing.T) {
	steel := DefaultParameters()
	timber := steel
	timber.MaterialID = catalog.Timber

	rs, rt := Evaluate(steel), Evaluate(timber)
	assert.InDelta(t, 200.0/12.0, rt.DeflectionMm/rs.DeflectionMm, 1e-9)
	assert.Less(t, rt.WeightKg, rs.WeightKg)
}

func TestWindPressure(t *testing.T) {
	assert.Equal(t, 0.0, WindPressure(0, 35))
	// 36 km/h = 10 m/s at ground level: 0.5·1.225·100·1.2/1000
	assert.InDelta(t, 0.0735, WindPressure(36, 0), 1e-12)
	assert.InDelta(t, 0.0735*2, WindPressure(36, 100), 1e-12)
}
