// Package guard validates Jikan request parameters before any network call
// or rate limit permit is spent. Every check returns nil or a
// *ValidationError naming the offending parameter.
package guard
