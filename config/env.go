package config

import (
	"os"
	"strings"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI=true wins, then
// ENV, then ENVIRONMENT; anything unrecognised means development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	name := os.Getenv("ENV")
	if name == "" {
		name = os.Getenv("ENVIRONMENT")
	}
	switch Environment(strings.ToLower(strings.TrimSpace(name))) {
	case Production:
		return Production
	case Test:
		return Test
	default:
		return Development
	}
}

func (e Environment) String() string {
	return string(e)
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}

// IsTest returns true when running under the test environment or CI.
func IsTest() bool {
	env := GetEnvironment()
	return env == Test || env == CI
}
