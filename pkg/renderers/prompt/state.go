package prompt

// State holds prefilled values and server-provided errors keyed by field
// name. The validator owns the values collected during a session.
type State struct {
	values map[string]string
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]string, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]string, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for k, v := range prefill {
		s.values[k] = v
	}
	for k, v := range errs {
		s.errors[k] = append([]string(nil), v...)
	}
	return s
}

// Value returns the prefilled value for name.
func (s *State) Value(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[name]
	return v, ok
}

// ErrorsFor returns the errors attached to a field. The empty name holds
// form-level errors.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors[name]
}

// Consume drops the errors attached to name once they have been shown.
func (s *State) Consume(name string) []string {
	if s == nil {
		return nil
	}
	errs := s.errors[name]
	delete(s.errors, name)
	return errs
}
