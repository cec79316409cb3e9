// Package template defines the template engine contract used to wrap
// sanitized preview fragments into full documents.
package template
