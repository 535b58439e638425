package domain

// Resolution is a playback resolution label
type Resolution string

const (
	ResolutionP144  Resolution = "P144"
	ResolutionP240  Resolution = "P240"
	ResolutionP360  Resolution = "P360"
	ResolutionP480  Resolution = "P480"
	ResolutionP720  Resolution = "P720"
	ResolutionP1080 Resolution = "P1080"
	ResolutionP1440 Resolution = "P1440"
	ResolutionP2160 Resolution = "P2160"
)

var knownResolutions = map[Resolution]struct{}{
	ResolutionP144:  {},
	ResolutionP240:  {},
	ResolutionP360:  {},
	ResolutionP480:  {},
	ResolutionP720:  {},
	ResolutionP1080: {},
	ResolutionP1440: {},
	ResolutionP2160: {},
}

// ParseResolution returns the resolution named by s. Labels are case sensitive.
func ParseResolution(s string) (Resolution, bool) {
	r := Resolution(s)
	if !r.Valid() {
		return "", false
	}
	return r, true
}

// Valid reports whether r is a recognized label
func (r Resolution) Valid() bool {
	_, ok := knownResolutions[r]
	return ok
}
