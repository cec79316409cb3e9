// Package model defines the typed form model shared by validators, prompt
// renderers and form specs. Fields carry a Kind that selects the built-in
// predicate (username, password, range) plus optional ValidationRule entries
// using the canonical identifiers (min/max, minLength/maxLength, pattern,
// required) with string parameters so specs decode deterministically from
// YAML or JSON.
package model
