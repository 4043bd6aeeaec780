package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// J2000JD is the Julian day of the J2000 reference epoch.
const J2000JD = 2451545.0

// Epoch zero is J2000; all epochs are expressed in seconds since that
// instant, matching the ephemeris reference of the body registry.

// EpochFromTime converts a civil time to seconds since J2000.
func EpochFromTime(t time.Time) float64 {
	return (julian.TimeToJD(t.UTC()) - J2000JD) * 86400
}

// TimeFromEpoch converts seconds since J2000 to a civil time in UTC.
func TimeFromEpoch(epoch float64) time.Time {
	return julian.JDToTime(J2000JD + epoch/86400).UTC()
}
