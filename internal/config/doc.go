// Package config provides layered configuration for swipeshell.
//
// Configuration is merged from three layers, lowest priority first:
//
//  1. Built-in defaults
//  2. The config file (TOML or YAML, chosen by extension)
//  3. Environment variables with the SWIPESHELL_ prefix
//
// Settings are addressed by dotted paths such as "gesture.swipeDistance".
// Environment variables map onto paths by lower-casing the first segment and
// camel-casing the rest, so SWIPESHELL_DISPLAY_CELL_WIDTH sets
// display.cellWidth.
//
// Typed section accessors (Gesture, Logging, Display) return snapshot
// structs. Watch reloads the file layer when the file changes on disk.
package config
