package storage

import (
	"sync"

	"github.com/utkarsh5026/beargit/pkg/repository/scpath"
)

// Op names an FS method for fault injection.
type Op string

const (
	OpRead      Op = "read"
	OpWrite     Op = "write"
	OpCopy      Op = "copy"
	OpMkdir     Op = "mkdir"
	OpRemoveAll Op = "removeall"
	OpStat      Op = "stat"
)

// FaultFunc decides whether an operation on a path should fail. Returning nil
// lets the call through to the wrapped FS.
type FaultFunc func(op Op, p scpath.AbsolutePath) error

// FaultFS wraps an FS and fails selected calls. Tests use it to drive the
// I/O failure paths of the commit engine and the index.
type FaultFS struct {
	inner FS

	mu    sync.Mutex
	fault FaultFunc
	calls []Op
}

// NewFaultFS wraps inner; a nil fault lets every call through.
func NewFaultFS(inner FS, fault FaultFunc) *FaultFS {
	return &FaultFS{inner: inner, fault: fault}
}

// SetFault replaces the fault hook.
func (f *FaultFS) SetFault(fault FaultFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fault = fault
}

// Calls returns the operations seen so far, in order.
func (f *FaultFS) Calls() []Op {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Op, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FaultFS) check(op Op, p scpath.AbsolutePath) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if f.fault == nil {
		return nil
	}
	return f.fault(op, p)
}

func (f *FaultFS) ReadFile(p scpath.AbsolutePath) ([]byte, error) {
	if err := f.check(OpRead, p); err != nil {
		return nil, err
	}
	return f.inner.ReadFile(p)
}

func (f *FaultFS) WriteFile(p scpath.AbsolutePath, data []byte) error {
	if err := f.check(OpWrite, p); err != nil {
		return err
	}
	return f.inner.WriteFile(p, data)
}

func (f *FaultFS) CopyFile(src, dst scpath.AbsolutePath) error {
	if err := f.check(OpCopy, dst); err != nil {
		return err
	}
	return f.inner.CopyFile(src, dst)
}

func (f *FaultFS) Mkdir(p scpath.AbsolutePath) error {
	if err := f.check(OpMkdir, p); err != nil {
		return err
	}
	return f.inner.Mkdir(p)
}

func (f *FaultFS) MkdirAll(p scpath.AbsolutePath) error {
	if err := f.check(OpMkdir, p); err != nil {
		return err
	}
	return f.inner.MkdirAll(p)
}

func (f *FaultFS) RemoveAll(p scpath.AbsolutePath) error {
	if err := f.check(OpRemoveAll, p); err != nil {
		return err
	}
	return f.inner.RemoveAll(p)
}

func (f *FaultFS) Exists(p scpath.AbsolutePath) (bool, error) {
	if err := f.check(OpStat, p); err != nil {
		return false, err
	}
	return f.inner.Exists(p)
}

func (f *FaultFS) IsDir(p scpath.AbsolutePath) (bool, error) {
	if err := f.check(OpStat, p); err != nil {
		return false, err
	}
	return f.inner.IsDir(p)
}
