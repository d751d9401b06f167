package router

import (
	"net/url"
	"strings"
)

// DecodeQuery parses a raw query string (without the leading "?") into a
// flat string-keyed map. Pairs are split on "&", then on the first "=";
// both key and value are percent-decoded with "+" treated as space. A key
// with no "=" maps to the empty string. A duplicated key keeps its last
// value. Empty input yields an empty, non-nil map.
func DecodeQuery(raw string) map[string]string {
	out := make(map[string]string)
	if raw == "" {
		return out
	}
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		out[key] = value
	}
	return out
}
