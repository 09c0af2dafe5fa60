package index

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	scerr "github.com/utkarsh5026/beargit/pkg/common/err"
)

const pkgName = "index"

// maxLineLength bounds a single index line when reading. Names written by
// this package are far shorter; the slack tolerates hand-edited files.
const maxLineLength = 1 << 20

// Index represents the staging area: the ordered, duplicate-free list of
// tracked filenames that the next commit will snapshot.
//
// Index File Format:
//
//	┌────────────────────────────────────────┐
//	│ a.txt\n                                │
//	│ src/main.c\n                           │
//	│ ...                                    │
//	└────────────────────────────────────────┘
//
// One name per line in insertion order. Reading trims whitespace around each
// line and skips blank lines. Writing always rewrites the whole list, every
// entry followed by a newline.
type Index struct {
	entries []string
}

// NewIndex creates a new empty index.
func NewIndex() *Index {
	return &Index{entries: make([]string, 0)}
}

// Parse decodes the newline-delimited format.
func Parse(data []byte) (*Index, error) {
	idx := NewIndex()
	if err := idx.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return idx, nil
}

// Entries returns a copy of the tracked names in order.
func (idx *Index) Entries() []string {
	return slices.Clone(idx.entries)
}

// Has reports whether name is tracked (exact, case-sensitive match).
func (idx *Index) Has(name string) bool {
	return slices.Contains(idx.entries, name)
}

// Count returns the number of tracked names.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// Add appends name. It fails with DUPLICATE_FILE when name is already tracked.
func (idx *Index) Add(name string) error {
	if idx.Has(name) {
		return scerr.New(pkgName, scerr.CodeDuplicateFile, "add",
			fmt.Sprintf("File %s already added", name), nil)
	}
	idx.entries = append(idx.entries, name)
	return nil
}

// Remove drops the single entry equal to name, keeping the order of the
// rest. It fails with NOT_TRACKED when name is absent.
func (idx *Index) Remove(name string) error {
	i := slices.Index(idx.entries, name)
	if i < 0 {
		return scerr.New(pkgName, scerr.CodeNotTracked, "remove",
			fmt.Sprintf("File %s not tracked", name), nil)
	}
	idx.entries = slices.Delete(idx.entries, i, i+1)
	return nil
}

// Clone returns an independent copy.
func (idx *Index) Clone() *Index {
	return &Index{entries: slices.Clone(idx.entries)}
}

// Serialize writes every entry followed by a newline.
func (idx *Index) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, name := range idx.entries {
		if _, err := bw.WriteString(name); err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("write entry: %w", err)
		}
	}
	return bw.Flush()
}

// Bytes returns the serialized form.
func (idx *Index) Bytes() []byte {
	var buf bytes.Buffer
	_ = idx.Serialize(&buf)
	return buf.Bytes()
}

// Deserialize replaces the entries with those read from r. Repeated names
// in the input are kept once, at their first position.
func (idx *Index) Deserialize(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	entries := make([]string, 0)
	seen := make(map[string]struct{})
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		entries = append(entries, name)
	}
	if err := scanner.Err(); err != nil {
		return scerr.New(pkgName, scerr.CodeInvalidFormat, "parse", "", err)
	}

	idx.entries = entries
	return nil
}

// String returns a summary for debugging.
func (idx *Index) String() string {
	return fmt.Sprintf("Index{entries: %d}", len(idx.entries))
}
