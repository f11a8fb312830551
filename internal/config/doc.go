// Package config provides configuration loading, merging, and validation for
// the clientbridge binaries.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources only fill fields the earlier ones left empty):
//  1. Environment variables
//  2. Command-line flags
//  3. Built-in defaults
//
// The main entry point is [GetConfig].
package config
