package booking

import (
	"time"
	_ "time/tzdata"
)

// DefaultZoneID is used wherever no named zone was supplied.
const DefaultZoneID = "Asia/Seoul"

var defaultZone = mustLoadZone(DefaultZoneID)

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// HasZoneID reports whether loc carries a name Google Calendar accepts as ctz.
// time.Local is named "Local", which is not an IANA zone ID.
func HasZoneID(loc *time.Location) bool {
	if loc == nil {
		return false
	}
	name := loc.String()
	return name != "" && name != "Local"
}

// resolveZone replaces nil and unnamed zones with DefaultZoneID so that
// parsing, formatting and ctz always agree.
func resolveZone(loc *time.Location) *time.Location {
	if !HasZoneID(loc) {
		return defaultZone
	}
	return loc
}
