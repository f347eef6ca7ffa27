package minic

import (
	"github.com/rs/zerolog"

	"github.com/minic-lang/minic/lexer"
	"github.com/minic-lang/minic/parser"
	"github.com/minic-lang/minic/semantic"
)

// Option configures a Tokenize, Parse, Check or Analyze call.
type Option func(*options)

type options struct {
	filename  string
	logger    zerolog.Logger
	maxErrors int
}

func collectOptions(opts ...Option) *options {
	o := &options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) lexerOpts() []lexer.Option {
	var opts []lexer.Option
	if o.filename != "" {
		opts = append(opts, lexer.WithFilename(o.filename))
	}
	return opts
}

func (o *options) parserOpts() []parser.Option {
	opts := []parser.Option{parser.WithLogger(o.logger)}
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.maxErrors > 0 {
		opts = append(opts, parser.WithMaxErrors(o.maxErrors))
	}
	return opts
}

func (o *options) checkerOpts() []semantic.Option {
	opts := []semantic.Option{semantic.WithLogger(o.logger)}
	if o.filename != "" {
		opts = append(opts, semantic.WithFilename(o.filename))
	}
	return opts
}

// WithFilename sets the file name reported in positions and diagnostics.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets the logger that receives debug output from each stage.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMaxErrors sets how many syntax errors are collected before parsing
// stops. Values below one keep the parser default.
func WithMaxErrors(n int) Option {
	return func(o *options) {
		o.maxErrors = n
	}
}
