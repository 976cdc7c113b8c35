// Package config loads, validates, and normalizes the crate
// configuration file. All path fields are absolute after Load.
package config
