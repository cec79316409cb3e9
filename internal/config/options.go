package config

// ConfigOption documents one configuration key and its default.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

const (
	KeyQuietInterval = "preview.quiet_interval"
	KeyOpen          = "preview.delimiters.open"
	KeyClose         = "preview.delimiters.close"
	KeyOutput        = "preview.output"
	KeyTitle         = "preview.title"
	KeyMathJaxURL    = "preview.mathjax_url"
	KeyRawHTML       = "preview.raw_html"
	KeyLogLevel      = "log.level"
	KeyLogDev        = "log.development"
	KeyFormsDir      = "forms.dir"
	KeyRangeMin      = "range.min"
	KeyRangeMax      = "range.max"
)

// GetConfigOptions returns the configuration options and their meanings.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: KeyQuietInterval, Default: "1s", Comment: "Quiet time after the last edit before the preview re-renders"},
		{Key: KeyOpen, Default: "@@", Comment: "Opening math delimiter"},
		{Key: KeyClose, Default: "@@", Comment: "Closing math delimiter"},
		{Key: KeyOutput, Default: "preview.html", Comment: "HTML page written by the preview command"},
		{Key: KeyTitle, Default: "Preview", Comment: "Title of the preview page"},
		{Key: KeyMathJaxURL, Default: "https://cdn.jsdelivr.net/npm/mathjax@3/es5/startup.js", Comment: "MathJax loader referenced by the preview page"},
		{Key: KeyRawHTML, Default: true, Comment: "Pass raw HTML in markdown through to the sanitizer"},

		{Key: KeyLogLevel, Default: "info", Comment: "debug, info, warn or error"},
		{Key: KeyLogDev, Default: false, Comment: "Human-readable console logs"},

		{Key: KeyFormsDir, Default: "", Comment: "Directory of YAML/JSON form definitions overlaid on the built-in forms"},

		{Key: KeyRangeMin, Default: 0, Comment: "Lower bound used by the clamp command"},
		{Key: KeyRangeMax, Default: 100, Comment: "Upper bound used by the clamp command"},
	}
}
