package internal

// State is a process-wide mutable key-value bag owned by the App and shared
// by every request. Access is not synchronized: concurrent mutation is the
// caller's responsibility. Use it for values written once during startup
// (database pools, feature flags) and read thereafter.
type State struct {
	values map[string]any
}

// NewState creates an empty state bag.
func NewState() *State {
	return &State{values: make(map[string]any)}
}

// Set stores a value under key, replacing any previous value.
func (s *State) Set(key string, value any) {
	s.values[key] = value
}

// Get returns the value stored under key, or nil.
func (s *State) Get(key string) any {
	return s.values[key]
}

// Lookup returns the value stored under key and whether it exists.
func (s *State) Lookup(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Delete removes key from the bag.
func (s *State) Delete(key string) {
	delete(s.values, key)
}
