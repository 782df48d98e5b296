package registry

import (
	"strings"
	"sync"
)

// Format is a call-site handle for a format string.
//
// Declaring a package-level Format next to each logging call site makes the
// registry lookup a one-time cost: the identifier is interned on first use and
// cached in the handle, so steady-state logging never touches the registry.
//
//	var fmtConnAccepted = registry.NewFormat("accepted conn from {} after {} retries")
//
//	logger.Logf(fmtConnAccepted, logger.String(addr), logger.Int64(retries))
//
// A Format is safe for concurrent use.
type Format struct {
	str          string
	reg          *Registry
	placeholders int

	once sync.Once
	id   uint16
	err  error
}

// NewFormat creates a call-site handle bound to the process-wide registry.
// The string is interned lazily on first use.
func NewFormat(s string) *Format {
	return &Format{
		str:          s,
		placeholders: strings.Count(s, "{}"),
	}
}

// NewFormatIn creates a call-site handle bound to the given registry.
func NewFormatIn(r *Registry, s string) *Format {
	return &Format{
		str:          s,
		reg:          r,
		placeholders: strings.Count(s, "{}"),
	}
}

// ID returns the identifier for the format string, interning it on first call.
// Subsequent calls return the cached identifier without touching the registry.
func (f *Format) ID() (uint16, error) {
	f.once.Do(func() {
		reg := f.reg
		if reg == nil {
			reg = Default()
		}
		f.id, f.err = reg.Intern(f.str)
	})

	return f.id, f.err
}

// String returns the format string.
func (f *Format) String() string {
	return f.str
}

// Placeholders returns the number of "{}" placeholders in the format string,
// which is the number of argument values a record logged with it carries.
func (f *Format) Placeholders() int {
	return f.placeholders
}
