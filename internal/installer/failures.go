package installer

// Failures is an insertion-ordered set of failed package names.
type Failures struct {
	seen  map[string]bool
	names []string
}

// NewFailures returns an empty set.
func NewFailures() *Failures {
	return &Failures{seen: make(map[string]bool)}
}

// Add records name; recording the same name twice keeps a single entry.
func (f *Failures) Add(name string) {
	if f.seen[name] {
		return
	}
	f.seen[name] = true
	f.names = append(f.names, name)
}

// Contains reports whether name was recorded.
func (f *Failures) Contains(name string) bool {
	return f.seen[name]
}

// Names returns a copy of the recorded names in first-failure order.
func (f *Failures) Names() []string {
	return append([]string(nil), f.names...)
}

// Len returns the number of distinct failures.
func (f *Failures) Len() int {
	return len(f.names)
}
