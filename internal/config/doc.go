// Package config provides configuration loading, merging, and validation
// facilities for the fe2io client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win, later sources fill remaining fields):
//  1. Environment variables (FE2IO_* prefix)
//  2. Command-line flags and the positional username argument
//  3. Built-in defaults
//
// The main entry point is [GetConfig].
package config
