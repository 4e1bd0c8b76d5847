// Package config loads and validates the redbreast configuration file.
//
// Configuration is TOML, looked up at ~/.config/redbreast/config.toml or a
// project-local redbreast.toml unless an explicit path is given. Missing
// files are not an error: defaults apply, so the CLI works out of the box.
package config
