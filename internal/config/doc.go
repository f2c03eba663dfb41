// Package config loads the service configuration from defaults, an optional
// config.yaml, an optional .env file and PARKS_-prefixed environment
// variables, and validates the result before anything else starts.
package config
