// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every configuration type
// is parsed once per process and cached; ResetCache clears the cache in tests.
//
// # Usage
//
//	var srv httpserver.Config
//	config.MustLoad(&srv)
//
//	var emitter objects.EmitterConfig
//	if err := config.Load(&emitter); err != nil {
//		return err
//	}
//
// Load wraps parse failures with ErrParsingConfig, LoadEnv wraps file errors
// with ErrLoadingEnvFile; inspect them with errors.Is.
package config
