package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"

	"github.com/go-kit/log"

	astro "github.com/xPaul48268/Spacecraft-orbiting-Mars-with-perturbation-of-Phobos-Deimos"
)

// This binary only reads the scenario file and propagates the mission.

var (
	scenario string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "propagation scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log every propagation event")
}

func main() {
	flag.Parse()
	if scenario == "" {
		stdlog.Fatal("no scenario provided (-scenario)")
	}
	sc, err := astro.LoadScenario(scenario)
	if err != nil {
		stdlog.Fatalf("could not load scenario: %s", err)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if !verbose {
		logger = log.NewNopLogger()
	}

	registry := astro.DefaultMarsSystem()
	orbit, err := astro.NewOrbitFromOE(sc.SMA, sc.Ecc, sc.Inc, sc.RAAN, sc.ArgPeriapsis, sc.TrueAnomaly, mustBody(registry, sc.CentralBody))
	if err != nil {
		stdlog.Fatalf("bad initial orbit: %s", err)
	}
	R, V := orbit.RV()
	initial := append(R, V...)

	model, err := astro.PointMassModel(registry, sc.CentralBody, sc.PerturbingBodies...)
	if err != nil {
		stdlog.Fatalf("could not build acceleration model: %s", err)
	}

	mission, err := astro.NewMission(sc.Name, model, initial, sc.Start, sc.End, sc.Step)
	if err != nil {
		stdlog.Fatalf("could not configure mission: %s", err)
	}
	mission.SetLogger(logger)
	if sc.MaxSteps > 0 {
		mission.SetMaxSteps(sc.MaxSteps)
	}
	if geodetic, err := astro.NewGeodeticComputer(registry, sc.CentralBody); err == nil {
		mission.SetGeodetic(geodetic)
	} else {
		stdlog.Printf("dependent variables disabled: %s", err)
	}

	hist, err := mission.Propagate()
	if err != nil {
		stdlog.Fatalf("propagation failed after %d points: %s", hist.Len(), err)
	}

	fmt.Println(hist.Summary())

	if sc.CSVPath != "" {
		f, err := os.Create(sc.CSVPath)
		if err != nil {
			stdlog.Fatalf("could not create %s: %s", sc.CSVPath, err)
		}
		defer f.Close()
		if err := hist.WriteCSV(f); err != nil {
			stdlog.Fatalf("could not write %s: %s", sc.CSVPath, err)
		}
		fmt.Printf("wrote %d points to %s\n", hist.Len(), sc.CSVPath)
	}
}

func mustBody(reg *astro.BodyRegistry, name string) astro.CelestialBody {
	body, err := reg.Body(name)
	if err != nil {
		stdlog.Fatalf("could not resolve body: %s", err)
	}
	return body
}
