package enums

import "fmt"

// SpiceLevel describes how hot a dish is prepared.
type SpiceLevel string

const (
	SpiceLevelMild   SpiceLevel = "mild"
	SpiceLevelMedium SpiceLevel = "medium"
	SpiceLevelHot    SpiceLevel = "hot"
)

var validSpiceLevels = []SpiceLevel{
	SpiceLevelMild,
	SpiceLevelMedium,
	SpiceLevelHot,
}

// String implements fmt.Stringer.
func (s SpiceLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SpiceLevel.
func (s SpiceLevel) IsValid() bool {
	for _, candidate := range validSpiceLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSpiceLevel converts raw input into a SpiceLevel.
func ParseSpiceLevel(value string) (SpiceLevel, error) {
	for _, candidate := range validSpiceLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid spice level %q", value)
}
