package enums

import "fmt"

// ProfileType describes the allowed values for the `type` column in profiles.
type ProfileType string

const (
	ProfileTypeClient     ProfileType = "client"
	ProfileTypeContractor ProfileType = "contractor"
)

var validProfileTypes = []ProfileType{
	ProfileTypeClient,
	ProfileTypeContractor,
}

// IsValid reports whether the value matches the canonical profile type enum.
func (p ProfileType) IsValid() bool {
	for _, candidate := range validProfileTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProfileType converts the raw string to ProfileType.
func ParseProfileType(value string) (ProfileType, error) {
	for _, candidate := range validProfileTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid profile type %q", value)
}
