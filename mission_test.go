package astro

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestMissionConfigurationErrors(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	initial := circularState(8.0e6, 0)
	cases := []struct {
		name             string
		initial          []float64
		start, end, step float64
	}{
		{"zero step", initial, 0, 100, 0},
		{"forward step, end before start", initial, 100, 0, 10},
		{"backward step, end after start", initial, 0, 100, -10},
		{"short state", initial[:3], 0, 100, 10},
		{"NaN step", initial, 0, 100, math.NaN()},
	}
	for _, c := range cases {
		_, err := NewMission(c.name, model, c.initial, c.start, c.end, c.step)
		var confErr ConfigurationError
		if !errors.As(err, &confErr) {
			t.Fatalf("%s: expected ConfigurationError, got %v", c.name, err)
		}
	}
	if _, err := NewMission("nil model", nil, initial, 0, 100, 10); err == nil {
		t.Fatal("nil model accepted")
	}
}

func TestMissionBoundaryAndMonotonicity(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	initial := circularState(8.0e6, 0.3)
	start := 150.0
	m, err := NewMission("boundary", model, initial, start, start+1000, 10)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := m.Propagate()
	if err != nil {
		t.Fatal(err)
	}
	// The first entry is the initial condition, exactly, no integration
	// applied.
	first := hist.First()
	if first.Epoch != start {
		t.Fatalf("first epoch %f != start %f", first.Epoch, start)
	}
	for i, comp := range first.State {
		if comp != initial[i] {
			t.Fatalf("first state component %d altered: %v != %v", i, comp, initial[i])
		}
	}
	// Strictly increasing epochs.
	for i := 1; i < hist.Len(); i++ {
		if hist.At(i).Epoch <= hist.At(i-1).Epoch {
			t.Fatalf("epoch not increasing at %d", i)
		}
	}
}

func TestMissionOvershootPolicy(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	// 95 seconds of propagation with a 10 s step: the run stops at 100,
	// overshooting by less than one step.
	m, err := NewMission("overshoot", model, circularState(8.0e6, 0), 0, 95, 10)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := m.Propagate()
	if err != nil {
		t.Fatal(err)
	}
	if hist.Len() != 11 {
		t.Fatalf("recorded %d points, want 11", hist.Len())
	}
	last := hist.Last().Epoch
	if last < 95 || last >= 95+10 {
		t.Fatalf("final epoch %f outside [end, end+step)", last)
	}
	if !scalar.EqualWithinAbs(last, 100, 1e-9) {
		t.Fatalf("final epoch %f, want 100", last)
	}
}

func TestMissionExactLanding(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	// When the interval is a multiple of the step, the last epoch is the end
	// epoch itself.
	m, err := NewMission("exact", model, circularState(8.0e6, 0), 0, 100, 10)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := m.Propagate()
	if err != nil {
		t.Fatal(err)
	}
	if hist.Len() != 11 {
		t.Fatalf("recorded %d points, want 11", hist.Len())
	}
	if !scalar.EqualWithinAbs(hist.Last().Epoch, 100, 1e-9) {
		t.Fatalf("final epoch %f", hist.Last().Epoch)
	}
}

func TestMissionBackwardPropagation(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMission("backward", model, circularState(8.0e6, 0), 1000, 905, -10)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := m.Propagate()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < hist.Len(); i++ {
		if hist.At(i).Epoch >= hist.At(i-1).Epoch {
			t.Fatalf("epoch not decreasing at %d", i)
		}
	}
	last := hist.Last().Epoch
	if last > 905 || last <= 905-10 {
		t.Fatalf("final epoch %f outside (end-step, end]", last)
	}
}

func TestMissionMaxStepsFuse(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMission("fuse", model, circularState(8.0e6, 0), 0, 1e9, 10)
	if err != nil {
		t.Fatal(err)
	}
	m.SetMaxSteps(25)
	hist, err := m.Propagate()
	var fuse MaxStepsError
	if !errors.As(err, &fuse) {
		t.Fatalf("expected MaxStepsError, got %v", err)
	}
	if fuse.Steps != 25 {
		t.Fatalf("fuse reports %d steps", fuse.Steps)
	}
	// The partial history remains usable for diagnosis.
	if hist.Len() != 26 {
		t.Fatalf("partial history has %d points", hist.Len())
	}
}

func TestMissionSingularAbort(t *testing.T) {
	reg := marsOnlyRegistry()
	pos := []float64{8.0e6, 0, 0}
	reg.Register(NewBody("Rock", 1e3, 1e9), FixedEphemeris{R: pos})
	model, err := PointMassModel(reg, "Mars", "Rock")
	if err != nil {
		t.Fatal(err)
	}
	// Spacecraft initially at the rock's exact position.
	initial := []float64{pos[0], pos[1], pos[2], 0, 2000, 0}
	m, err := NewMission("singular", model, initial, 0, 1000, 10)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := m.Propagate()
	var singular SingularGeometryError
	if !errors.As(err, &singular) {
		t.Fatalf("expected SingularGeometryError, got %v", err)
	}
	// The initial record stays accessible.
	if hist.Len() != 1 {
		t.Fatalf("history has %d points", hist.Len())
	}
}

func TestMissionZeroLengthRun(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	// The initial state is recorded before the stop condition is ever
	// evaluated, so an already-satisfied target still yields one step.
	m, err := NewMission("zero", model, circularState(8.0e6, 0), 500, 500, 10)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := m.Propagate()
	if err != nil {
		t.Fatal(err)
	}
	if hist.Len() != 2 {
		t.Fatalf("history has %d points, want initial + first step", hist.Len())
	}
	if hist.First().Epoch != 500 {
		t.Fatalf("first epoch %f", hist.First().Epoch)
	}
}

// TestMissionMarsScenario is the end-to-end run: the Mars orbiter of
// testdata/mars.toml, four days at a 10 s step, no perturbing bodies.
func TestMissionMarsScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("long propagation")
	}
	reg := marsOnlyRegistry()
	// Equator-aligned uniform spin, so the body-fixed latitude stays within
	// the orbital inclination.
	reg.SetRotationModel("Mars", UniformRotationModel{
		PoleRA: -math.Pi / 2, PoleDec: math.Pi / 2, PrimeMeridian: 0, Rate: MarsRotationModel.Rate,
	})
	model, err := PointMassModel(reg, "Mars")
	if err != nil {
		t.Fatal(err)
	}
	inc := 1.0
	orbit, err := NewOrbitFromOE(8.0e6, 0.5, inc, 2.965174772791, 2.82793255239, 1.5708, Mars)
	if err != nil {
		t.Fatal(err)
	}
	R, V := orbit.RV()
	initial := append(R, V...)

	const days = 4 * 86400.0
	m, err := NewMission("mars-orbiter", model, initial, 0, days, 10)
	if err != nil {
		t.Fatal(err)
	}
	geodetic, err := NewGeodeticComputer(reg, "Mars")
	if err != nil {
		t.Fatal(err)
	}
	m.SetGeodetic(geodetic)

	hist, err := m.Propagate()
	if err != nil {
		t.Fatal(err)
	}
	wantLen := int(math.Ceil(days/10)) + 1
	if hist.Len() != wantLen {
		t.Fatalf("history has %d points, want %d", hist.Len(), wantLen)
	}
	first := hist.First()
	for i := range initial {
		if first.State[i] != initial[i] {
			t.Fatal("first state differs from the element conversion")
		}
	}
	for i := 1; i < hist.Len(); i++ {
		if hist.At(i).Epoch <= hist.At(i-1).Epoch {
			t.Fatalf("epoch not increasing at %d", i)
		}
	}
	// With the pole on +Z, the achievable latitude is bounded by the
	// inclination.
	for i := 0; i < hist.Len(); i++ {
		pt := hist.At(i)
		lat, found := pt.DependentVariables[VarLatitude]
		if !found {
			t.Fatalf("no latitude at %d", i)
		}
		if math.Abs(lat) > inc+1e-6 {
			t.Fatalf("latitude %f exceeds inclination %f at epoch %f", lat, inc, pt.Epoch)
		}
		lon := pt.DependentVariables[VarLongitude]
		if lon <= -math.Pi || lon > math.Pi {
			t.Fatalf("longitude %f outside (-π, π]", lon)
		}
	}
	// The orbit must not have decayed: the propagation is conservative, so
	// the specific energy at the end matches the initial one.
	final := NewOrbitFromRV(hist.Last().State[:3], hist.Last().State[3:], Mars)
	if !scalar.EqualWithinAbsOrRel(final.Energyξ(), orbit.Energyξ(), 1e-2, 1e-4) {
		t.Fatalf("energy drifted: %f -> %f", orbit.Energyξ(), final.Energyξ())
	}
}
