package commitmanager

import "github.com/utkarsh5026/beargit/pkg/commitid"

// Commit is the metadata of one commit directory.
type Commit struct {
	// ID names the commit directory
	ID commitid.ID

	// Parent is the head at the time of the commit; the sentinel for the first
	Parent commitid.ID

	// Message is stored verbatim
	Message string

	// Files is the frozen staging index
	Files []string
}

// IsRoot reports whether the commit has no parent.
func (c *Commit) IsRoot() bool {
	return c.Parent.IsSentinel()
}
