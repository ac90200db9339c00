// Package coerce converts loosely-typed scalar values to concrete Go types.
//
// It backs the int, float, str and dt projection transforms and is exported
// for callers that read configuration values out of a structure.
package coerce
