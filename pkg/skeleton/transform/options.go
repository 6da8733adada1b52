package transform

import "github.com/charmbracelet/log"

// Options controls the copy discipline and diagnostics of a transform.
//
// The zero value is the safe default: operate on an independent deep copy
// and log through log.Default.
type Options struct {
	// InPlace mutates the given skeleton instead of returning a copy.
	InPlace bool
	// Logger receives progress and warning diagnostics. Nil means
	// log.Default().
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
