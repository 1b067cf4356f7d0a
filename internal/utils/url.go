package utils

import (
	"net/url"
)

// IsHTTPURL reports whether s parses as an absolute http or https URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// JoinURL appends path elements to a base URL, collapsing duplicate slashes.
// The base may carry a path of its own (e.g. an endpoint with a bucket prefix).
func JoinURL(base string, elems ...string) (string, error) {
	return url.JoinPath(base, elems...)
}
