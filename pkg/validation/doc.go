// Package validation implements the credential predicates and the per-field
// valid/invalid state machine that gates form submission. Predicates are pure;
// Validator tracks one form's visual state flags, clamps range inputs on every
// input event and decides whether a submit attempt may proceed.
package validation
