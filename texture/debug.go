//go:build texcachedebug

package texture

const debugChecks = true
