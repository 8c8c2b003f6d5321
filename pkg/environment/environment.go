package environment

import "strings"

// Environment represents application environment.
type Environment string

const (
	// Development for local runs.
	Development Environment = "development"
	// Production for production deployments.
	Production Environment = "production"
	// Staging for staging deployments.
	Staging Environment = "staging"
)

// Normalize maps an environment name, including the short aliases dev, stage
// and prod, to an Environment. Unknown or empty names fall back to Development.
func Normalize(name string) Environment {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	default:
		return Development
	}
}

// IsProduction reports whether name refers to the production environment.
func IsProduction(name string) bool {
	return Normalize(name) == Production
}
