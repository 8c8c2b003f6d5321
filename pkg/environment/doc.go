// Package environment names the deployment environments the service knows
// about and normalizes the names read from configuration.
//
//	env := environment.Normalize(os.Getenv("APP_ENV")) // "prod" -> Production
package environment
