// Package sanitizer provides input normalization for booking data.
//
// All functions are idempotent - applying them multiple times produces the
// same result. They normalize whitespace and letter case only; anything that
// should be rejected rather than repaired (wrong phone format, lowercase
// airport codes) is left for validation to catch.
package sanitizer
