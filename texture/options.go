package texture

// DefaultDegree is the default branching degree of the cache's B-tree.
const DefaultDegree = 16

// Option configures a Cache during creation.
//
// Example:
//
//	c := texture.NewCache(dev, texture.WithName("main window"), texture.WithDegree(8))
type Option func(*options)

// options holds optional configuration for Cache creation.
type options struct {
	degree int
	name   string
}

// defaultOptions returns the default cache options.
func defaultOptions() options {
	return options{
		degree: DefaultDegree,
		name:   "texture",
	}
}

// WithDegree sets the branching degree of the B-tree holding the entries.
// Values below 2 keep the default.
func WithDegree(degree int) Option {
	return func(o *options) {
		if degree >= 2 {
			o.degree = degree
		}
	}
}

// WithName sets the name the cache uses in log records.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}
