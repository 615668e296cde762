package common

import "strings"

// HasAnyPrefix returns true if s starts with any of the prefixes, ignoring case.
func HasAnyPrefix(s string, prefixes ...string) bool {
	lower := strings.ToLower(s)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// SplitPair splits "key=value" around the first '=' and trims both halves.
func SplitPair(s string) (key, value string, ok bool) {
	k, v, found := strings.Cut(s, "=")
	if !found {
		return "", "", false
	}
	k, v = strings.TrimSpace(k), strings.TrimSpace(v)
	if k == "" || v == "" {
		return "", "", false
	}
	return k, v, true
}
