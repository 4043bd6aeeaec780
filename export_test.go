package astro

import (
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func propagateShortRun(t *testing.T) *StateHistory {
	t.Helper()
	reg := alignedSpinRegistry(MarsRotationModel.Rate)
	model, err := PointMassModel(reg, "Mars")
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMission("export", model, circularState(8.0e6, 0), 0, 100, 10)
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
	return hist
}

func TestWriteCSV(t *testing.T) {
	hist := propagateShortRun(t)
	var buf strings.Builder
	if err := hist.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %s", err)
	}
	if len(records) != hist.Len()+1 {
		t.Fatalf("%d rows for %d points", len(records), hist.Len())
	}
	header := strings.Join(records[0], ",")
	if header != "epoch,rx,ry,rz,vx,vy,vz,latitude,longitude" {
		t.Fatalf("header: %s", header)
	}
	// Spot check the first data row against the recorded point.
	first := hist.First()
	epoch, err := strconv.ParseFloat(records[1][0], 64)
	if err != nil || epoch != first.Epoch {
		t.Fatalf("epoch column: %s", records[1][0])
	}
	rx, _ := strconv.ParseFloat(records[1][1], 64)
	if rx != first.State[0] {
		t.Fatalf("rx column: %s", records[1][1])
	}
	lat, _ := strconv.ParseFloat(records[1][7], 64)
	if !scalar.EqualWithinAbs(lat, first.DependentVariables[VarLatitude], 1e-12) {
		t.Fatalf("latitude column: %s", records[1][7])
	}
}

func TestWriteCSVWithoutDependentVariables(t *testing.T) {
	model, err := PointMassModel(marsOnlyRegistry(), "Mars")
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMission("bare", model, circularState(8.0e6, 0), 0, 30, 10)
	if err != nil {
		t.Fatal(err)
	}
	hist, err := m.Propagate()
	if err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if err := hist.WriteCSV(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "epoch,rx,ry,rz,vx,vy,vz" {
		t.Fatalf("header: %s", lines[0])
	}
	if len(lines) != hist.Len()+1 {
		t.Fatalf("%d lines for %d points", len(lines), hist.Len())
	}
}

func TestSummary(t *testing.T) {
	hist := propagateShortRun(t)
	summary := hist.Summary()
	for _, fragment := range []string{
		"initial position [km]",
		"initial velocity [km/s]",
		"after 100.0 seconds",
		"final position [km]",
		"final velocity [km/s]",
	} {
		if !strings.Contains(summary, fragment) {
			t.Fatalf("summary misses %q:\n%s", fragment, summary)
		}
	}
	// The initial radius is 8000 km along +X.
	if !strings.Contains(summary, "[8000.000000 0.000000 0.000000]") {
		t.Fatalf("initial position not in km:\n%s", summary)
	}
	if (&StateHistory{}).Summary() != "empty state history" {
		t.Fatal("empty history summary")
	}
}

func TestHistoryAccessors(t *testing.T) {
	hist := propagateShortRun(t)
	if hist.First().Epoch != hist.At(0).Epoch {
		t.Fatal("First != At(0)")
	}
	if hist.Last().Epoch != hist.At(hist.Len()-1).Epoch {
		t.Fatal("Last != At(Len-1)")
	}
	if len(hist.Points()) != hist.Len() {
		t.Fatal("Points length mismatch")
	}
}
