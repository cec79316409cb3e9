// Package orchestrator resolves a form by id, applies endpoint overrides and
// transformers, and renders it through a registered renderer. It is the single
// entry point the CLI uses to drive interactive form sessions.
package orchestrator
