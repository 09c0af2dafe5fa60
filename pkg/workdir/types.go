package workdir

// Status is a read-only view of the staging index against the working set.
type Status struct {
	// Files lists the tracked names in index order
	Files []string

	// Count is len(Files)
	Count int

	// Missing lists tracked names with no regular file in the working
	// directory. The next commit fails while this is non-empty.
	Missing []string
}

// Clean reports whether every tracked file is present.
func (s *Status) Clean() bool {
	return len(s.Missing) == 0
}

// IsMissing reports whether name is tracked but absent.
func (s *Status) IsMissing(name string) bool {
	for _, m := range s.Missing {
		if m == name {
			return true
		}
	}
	return false
}
