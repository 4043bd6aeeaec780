package astro

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteCSV exports the history as a table with columns
// epoch,rx,ry,rz,vx,vy,vz followed by one column per dependent variable, in
// lexical order. Positions in meters, velocities in m/s, angles in radians.
func (h *StateHistory) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"epoch", "rx", "ry", "rz", "vx", "vy", "vz"}
	var depNames []string
	if h.Len() > 0 {
		for name := range h.First().DependentVariables {
			depNames = append(depNames, name)
		}
		sort.Strings(depNames)
		header = append(header, depNames...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, pt := range h.points {
		record := make([]string, 0, len(header))
		record = append(record, strconv.FormatFloat(pt.Epoch, 'f', -1, 64))
		for _, comp := range pt.State {
			record = append(record, strconv.FormatFloat(comp, 'f', -1, 64))
		}
		for _, name := range depNames {
			record = append(record, strconv.FormatFloat(pt.DependentVariables[name], 'f', -1, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary reports the initial and final states in kilometers and kilometers
// per second, and the elapsed simulation time in seconds.
func (h *StateHistory) Summary() string {
	if h.Len() == 0 {
		return "empty state history"
	}
	first, last := h.First(), h.Last()
	var b strings.Builder
	fmt.Fprintf(&b, "initial position [km]: %s\n", fmtKm(first.State[:3]))
	fmt.Fprintf(&b, "initial velocity [km/s]: %s\n", fmtKm(first.State[3:]))
	fmt.Fprintf(&b, "after %.1f seconds:\n", last.Epoch-first.Epoch)
	fmt.Fprintf(&b, "final position [km]: %s\n", fmtKm(last.State[:3]))
	fmt.Fprintf(&b, "final velocity [km/s]: %s", fmtKm(last.State[3:]))
	return b.String()
}

func fmtKm(v []float64) string {
	return fmt.Sprintf("[%.6f %.6f %.6f]", v[0]/1e3, v[1]/1e3, v[2]/1e3)
}
