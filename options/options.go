// Package options holds the functional option interfaces shared by providers and the library client.
package options

// NewProviderOption is implemented by options accepted by a backend's NewProvider.
// Example:
// ```
//
//	type timeoutOpt struct{ d time.Duration }
//	func (o *timeoutOpt) Apply(p *Provider) { p.options.Timeout = o.d }
//	func (o *timeoutOpt) NewProviderOptionName() string { return "timeout" }
//
// ```
type NewProviderOption[T any] interface {
	Apply(*T)
	NewProviderOptionName() string
}

// NewClientOption is implemented by options accepted by library.New.
type NewClientOption[T any] interface {
	Apply(*T)
	NewClientOptionName() string
}

// ApplyOptions applies provider options in order.  Later options win.
func ApplyOptions[T any](target *T, opts ...NewProviderOption[T]) {
	for _, o := range opts {
		if o != nil {
			o.Apply(target)
		}
	}
}

// ApplyClientOptions applies client options in order.  Later options win.
func ApplyClientOptions[T any](target *T, opts ...NewClientOption[T]) {
	for _, o := range opts {
		if o != nil {
			o.Apply(target)
		}
	}
}
