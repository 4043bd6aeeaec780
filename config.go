package astro

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	dateFormat      = "2006-01-02 15:04:05"
	shortDateFormat = "2006-01-02"
)

// Scenario is the validated content of a propagation scenario file. Angles
// are radians, distances meters, epochs seconds since J2000.
type Scenario struct {
	Name             string
	CentralBody      string
	PerturbingBodies []string
	SMA              float64
	Ecc              float64
	Inc              float64
	RAAN             float64
	ArgPeriapsis     float64
	TrueAnomaly      float64
	Start, End       float64
	Step             float64
	MaxSteps         int
	CSVPath          string
}

// LoadScenario reads a TOML scenario file. Example:
//
//	[mission]
//	name = "mars-orbiter"
//	start = "2025-11-01 00:00:00"
//	end = "2025-11-05 00:00:00"
//	step = 10.0
//
//	[orbit]
//	body = "Mars"
//	sma = 8.0e6
//	ecc = 0.5
//	inc = 1.0
//	RAAN = 2.965174772791
//	argPeri = 2.82793255239
//	tAnomaly = 1.5708
//
//	[perturbations]
//	bodies = ["Phobos", "Deimos"]
//
// The start and end values may also be raw floats, read as epoch seconds
// since J2000.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s := &Scenario{
		Name:             v.GetString("mission.name"),
		CentralBody:      v.GetString("orbit.body"),
		PerturbingBodies: v.GetStringSlice("perturbations.bodies"),
		SMA:              v.GetFloat64("orbit.sma"),
		Ecc:              v.GetFloat64("orbit.ecc"),
		Inc:              v.GetFloat64("orbit.inc"),
		RAAN:             v.GetFloat64("orbit.RAAN"),
		ArgPeriapsis:     v.GetFloat64("orbit.argPeri"),
		TrueAnomaly:      v.GetFloat64("orbit.tAnomaly"),
		Step:             v.GetFloat64("mission.step"),
		MaxSteps:         v.GetInt("mission.maxsteps"),
		CSVPath:          v.GetString("export.csv"),
	}
	var err error
	if s.Start, err = confReadEpochOrDate(v, "mission.start"); err != nil {
		return nil, err
	}
	if s.End, err = confReadEpochOrDate(v, "mission.end"); err != nil {
		return nil, err
	}
	if s.CentralBody == "" {
		return nil, ConfigurationError{"orbit.body is not set"}
	}
	if s.Step == 0 {
		return nil, ConfigurationError{"mission.step is zero or not set"}
	}
	if (s.End-s.Start)*s.Step < 0 {
		return nil, ConfigurationError{fmt.Sprintf("end epoch %f unreachable from %f with step %f", s.End, s.Start, s.Step)}
	}
	return s, nil
}

// confReadEpochOrDate reads an epoch from the configuration, either as raw
// seconds since J2000 or as a calendar date string.
func confReadEpochOrDate(v *viper.Viper, key string) (float64, error) {
	if !v.IsSet(key) {
		return 0, ConfigurationError{key + " is not set"}
	}
	switch val := v.Get(key).(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		for _, format := range []string{dateFormat, shortDateFormat} {
			if dt, err := time.Parse(format, val); err == nil {
				return EpochFromTime(dt), nil
			}
		}
		return 0, ConfigurationError{fmt.Sprintf("could not parse %s date '%s'", key, val)}
	default:
		return 0, ConfigurationError{fmt.Sprintf("unsupported type for %s", key)}
	}
}
