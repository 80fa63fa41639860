// Package config loads and validates collector configuration from YAML.
//
// ${VAR} references in the file are expanded from the environment before
// parsing, so secrets (API token, database password) can stay out of the
// file itself.
package config
