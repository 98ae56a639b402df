// Package pathutil normalizes request paths into low-cardinality metric labels.
package pathutil

import (
	"strings"
)

// InvokePrefix is the route prefix of every command.
const InvokePrefix = "/invoke/"

// Fallback labels for unregistered paths.
const (
	UnknownCommand = "/invoke/:unknown"
	Other          = "other"
)

// Normalizer maps paths to themselves when registered and to a fallback label
// otherwise, so arbitrary client paths cannot grow the metric label space.
type Normalizer struct {
	known map[string]struct{}
}

// NewNormalizer registers static paths (e.g. "/health") and command names
// (served under InvokePrefix).
func NewNormalizer(static []string, commands []string) *Normalizer {
	known := make(map[string]struct{}, len(static)+len(commands))
	for _, p := range static {
		known[p] = struct{}{}
	}
	for _, c := range commands {
		known[InvokePrefix+c] = struct{}{}
	}
	return &Normalizer{known: known}
}

// NormalizePath strips the query string and a trailing slash, then returns the
// path if it is registered, UnknownCommand for other /invoke/ paths, and Other
// for everything else.
func (n *Normalizer) NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	isInvoke := strings.HasPrefix(path, InvokePrefix)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := n.known[path]; ok {
		return path
	}
	if isInvoke {
		return UnknownCommand
	}
	return Other
}

// Cardinality returns the maximum number of distinct labels NormalizePath can produce.
func (n *Normalizer) Cardinality() int {
	return len(n.known) + 2
}
