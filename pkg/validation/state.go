package validation

// State is the visual validity flag of a single field. Valid and Invalid are
// mutually exclusive; Pristine marks a field that has not seen input yet.
type State int

const (
	StatePristine State = iota
	StateValid
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	default:
		return "pristine"
	}
}

// Class returns the default CSS class for the state.
func (s State) Class() string {
	return DefaultClasses.For(s)
}

// ClassSet names the classes toggled for field and error indicator state.
type ClassSet struct {
	Valid        string
	Invalid      string
	ErrorHidden  string
	ErrorShown   string
	WasValidated string
}

var (
	// DefaultClasses matches the plain login page markup.
	DefaultClasses = ClassSet{
		Valid:        "valid",
		Invalid:      "invalid",
		ErrorHidden:  "error",
		ErrorShown:   "error-show",
		WasValidated: "was-validated",
	}
	// BootstrapClasses matches forms styled with Bootstrap validation classes.
	BootstrapClasses = ClassSet{
		Valid:        "is-valid",
		Invalid:      "is-invalid",
		ErrorHidden:  "error",
		ErrorShown:   "error-show",
		WasValidated: "was-validated",
	}
)

// For returns the class for the supplied state. Pristine fields carry no class.
func (c ClassSet) For(s State) string {
	switch s {
	case StateValid:
		return c.Valid
	case StateInvalid:
		return c.Invalid
	default:
		return ""
	}
}

// Error returns the error indicator class.
func (c ClassSet) Error(shown bool) string {
	if shown {
		return c.ErrorShown
	}
	return c.ErrorHidden
}
