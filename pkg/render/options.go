package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Values pre-populates fields keyed by field name.
	Values map[string]string
	// Errors surfaces server-side feedback keyed by field path (see
	// MapErrorPayload). Renderers show these before asking for input again.
	Errors map[string][]string
	// Hidden fields are merged into the submitted payload (CSRF tokens,
	// session hints, version fields).
	Hidden []HiddenField
}
