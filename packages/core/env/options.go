package env

// WarnFunc receives recoverable conditions such as a missing key.
type WarnFunc func(format string, args ...any)

type options struct {
	format      FormatOptions
	environ     Environ
	override    bool
	interpolate bool
	warnFunc    WarnFunc
}

// Option configures an Editor or a Load call.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{
		format:      FormatOptions{Quote: QuoteAlways},
		environ:     OSEnviron,
		interpolate: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithQuoteMode sets how values are quoted when written.
func WithQuoteMode(mode QuoteMode) Option {
	return func(o *options) {
		if mode != "" {
			o.format.Quote = mode
		}
	}
}

// WithExport prefixes newly written assignments with "export ".
func WithExport(export bool) Option {
	return func(o *options) {
		o.format.Export = export
	}
}

// WithWarnFunc sets the function that receives warnings.
func WithWarnFunc(fn WarnFunc) Option {
	return func(o *options) {
		o.warnFunc = fn
	}
}

// WithEnviron sets the environment Load reads from and writes into.
func WithEnviron(environ Environ) Option {
	return func(o *options) {
		if environ != nil {
			o.environ = environ
		}
	}
}

// WithOverride lets Load replace variables that are already set.
func WithOverride(override bool) Option {
	return func(o *options) {
		o.override = override
	}
}

// WithInterpolation toggles ${VAR} expansion in Load and Values.
func WithInterpolation(interpolate bool) Option {
	return func(o *options) {
		o.interpolate = interpolate
	}
}

func (o *options) warn(format string, args ...any) {
	if o.warnFunc != nil {
		o.warnFunc(format, args...)
	}
}
