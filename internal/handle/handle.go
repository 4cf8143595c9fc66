package handle

import "strings"

// Fallback is used when neither the path nor the config names a handle.
const Fallback = "warren"

// Resolve returns the first non-empty segment of path with trailing slashes
// removed. When the path has no segment it falls back to defaultHandle, and
// then to Fallback.
func Resolve(path, defaultHandle string) string {
	path = strings.TrimRight(path, "/")
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	if defaultHandle != "" {
		return defaultHandle
	}
	return Fallback
}
