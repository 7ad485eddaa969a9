//go:build !texcachedebug

package texture

const debugChecks = false
