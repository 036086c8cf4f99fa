package validation

type options struct {
	exactProtocol bool
	originCheck   bool
	requireOrigin bool
}

// Option configures Validate.
type Option func(*options)

// WithExactProtocol requires protocol to be the literal "NCP/1.0".
// By default any NCP/<major>.<minor> is accepted for forward compatibility.
func WithExactProtocol() Option {
	return func(o *options) { o.exactProtocol = true }
}

// WithoutOriginCheck disables the identity.url / crawled-domain comparison.
// VERIFIED-L1 then no longer depends on origin.
func WithoutOriginCheck() Option {
	return func(o *options) { o.originCheck = false }
}

// WithRequireOrigin makes a positive origin match a prerequisite for
// VERIFIED-L1. Without it, an unchecked origin (no crawled domain supplied)
// does not hold a payload back; only a mismatch does.
func WithRequireOrigin() Option {
	return func(o *options) { o.requireOrigin = true }
}

func newOptions(opts []Option) options {
	o := options{originCheck: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
