// Package rules provides built-in separator rules for common manifest
// dialects. A rule decides, for a 3-byte window, whether a statement
// boundary lies between the second and third byte. Callers with custom
// dialects can supply their own types.SeparatorRule instead.
package rules
