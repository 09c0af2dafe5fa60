package workdir

import (
	"fmt"
	"io"
)

// WriteText renders s in the status text format:
//
//	Tracked files:
//
//	<TAB>a.txt
//
//	1 files total
func WriteText(w io.Writer, s *Status) error {
	if _, err := io.WriteString(w, "Tracked files:\n\n"); err != nil {
		return err
	}
	for _, f := range s.Files {
		if _, err := fmt.Fprintf(w, "\t%s\n", f); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\n%d files total\n", s.Count)
	return err
}
