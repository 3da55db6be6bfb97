package microtable

import (
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

// Sentinel errors for programmatic error handling.
var (
	ErrUnsupportedValue = errors.New("unsupported value")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownAlignment = errors.New("unknown alignment")
	ErrUnknownBorder    = errors.New("unknown border style")
)

var discardLogger logrus.FieldLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Options configures [Table]. The zero value renders with
// [ConsoleRenderer] and applies only the quote cleanup.
type Options struct {
	// PropertyFilter restricts and orders the data columns of record rows.
	// It is handed to the renderer untouched.
	PropertyFilter []string

	// RowFormatter is applied in order after quote cleanup.
	RowFormatter []RowFormatter

	// Renderer draws the raw grid. Default: ConsoleRenderer.
	Renderer Renderer

	// Logger receives debug output for each formatter pass. Default: discard.
	Logger logrus.FieldLogger
}

// Table renders data as a text grid and runs it through the formatters in
// opts. data may be a scalar, a record (map, struct, [Record], yaml
// mapping), or a list of any of those. A nil opts is the same as the zero
// Options.
//
// Errors come only from the renderer. A panicking formatter is not
// recovered.
func Table(data any, opts *Options) (string, error) {
	if opts == nil {
		opts = &Options{}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = ConsoleRenderer{}
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger
	}

	raw, err := renderer.Render(data, opts.PropertyFilter)
	if err != nil {
		return "", err
	}
	log.WithField("formatters", len(opts.RowFormatter)).Debug("Rendered raw grid.")
	return format(log, raw, opts.RowFormatter), nil
}
