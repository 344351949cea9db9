// Package config loads shoplens runtime settings.
//
// # Resolution Order
//
//  1. Built-in defaults
//  2. TOML file (explicit path, else ~/.config/shoplens/config.toml; missing is fine)
//  3. Environment: SHOPLENS_API_URL, SHOPLENS_LOG_LEVEL, SHOPLENS_LOG_FILE
//
// Call LoadEnvFile first to pull a .env file into the environment.
//
// # File Format
//
//	api_url = "http://127.0.0.1:5000"
//	request_timeout = "30s"
//	log_file = "~/.local/state/shoplens/shoplens.log"
//	log_level = "info"
//	forecast_poll = "30s"
//
// A bare host:port api_url gets an http:// scheme. Paths starting with ~ are
// expanded against the home directory.
//
// # Validation
//
// The merged Config is checked with go-playground/validator. Invalid TOML,
// unparsable durations and failed rules are returned as errors; callers treat
// them as fatal.
package config
