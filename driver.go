package treewire

import (
	"io"
	"sync"
)

// Driver converts byte streams into Cursor/Sink capabilities via a pluggable
// SPI. The default implementation reads and writes XML 1.0 text on top of
// encoding/xml and may be swapped with SetDriver.
type Driver interface {
	NewCursor(r io.Reader) (Cursor, error)
	NewSink(w io.Writer, opts SinkOptions) Sink
	Name() string
}

var (
	driverMu      sync.RWMutex
	currentDriver Driver = xmlDriver{}
)

// SetDriver replaces the global driver; nil values are ignored.
func SetDriver(d Driver) {
	if d == nil {
		return
	}
	driverMu.Lock()
	currentDriver = d
	driverMu.Unlock()
}

// UseDefaultDriver restores the default encoding/xml-backed driver.
func UseDefaultDriver() {
	driverMu.Lock()
	currentDriver = xmlDriver{}
	driverMu.Unlock()
}

// DriverName reports the name of the driver currently in effect.
func DriverName() string {
	return getDriver().Name()
}

func getDriver() Driver {
	driverMu.RLock()
	d := currentDriver
	driverMu.RUnlock()
	return d
}

// NewCursor wraps an io.Reader as a Cursor through the current driver.
func NewCursor(r io.Reader) (Cursor, error) { return getDriver().NewCursor(r) }

// NewSink wraps an io.Writer as a Sink through the current driver.
func NewSink(w io.Writer, opts SinkOptions) Sink { return getDriver().NewSink(w, opts) }
