// Package config loads typed configuration from environment variables.
//
// Structs are annotated with github.com/caarlos0/env tags. Values from
// optional .env files (read with github.com/joho/godotenv) fill in variables
// the process environment does not set; the process environment always wins.
//
//	var cfg upload.Config
//	if err := config.Load(&cfg, config.WithEnvFiles(".env")); err != nil {
//		return err
//	}
//
// Load never modifies the process environment, so tests can load the same
// struct type repeatedly with different values.
package config
