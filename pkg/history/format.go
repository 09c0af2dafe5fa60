package history

import (
	"fmt"
	"io"
)

// WriteEntry renders one entry in the log text format:
//
//	(blank line)
//	commit <id>
//	<TAB><message>
func WriteEntry(w io.Writer, e Entry) error {
	_, err := fmt.Fprintf(w, "\ncommit %s\n\t%s\n", e.ID, e.Message)
	return err
}
