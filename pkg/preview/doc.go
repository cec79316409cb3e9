// Package preview implements the debounced live preview: a buffer of
// markdown with inline math is converted to HTML, sanitized, written to a
// Sink and handed to a typesetter. Renderer adds the idle/pending-render
// state machine so bursts of keystrokes collapse into a single render that
// fires once the quiet interval has elapsed after the last keystroke.
package preview
