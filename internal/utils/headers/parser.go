// Package headers parses the extra request headers given on the command line.
package headers

import (
	"fmt"
	"net/textproto"
	"strings"
)

// reserved headers are owned by the browser session and cannot be overridden
var reserved = map[string]bool{
	"User-Agent": true,
	"Host":       true,
	"Cookie":     true,
}

// Parse converts "Key: Value" strings into a header map with canonical keys.
// Later duplicates win.
func Parse(h []string) (map[string]string, error) {
	m := make(map[string]string, len(h))
	for _, hdr := range h {
		key, value, ok := strings.Cut(hdr, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Key: Value\"", hdr)
		}
		key = textproto.CanonicalMIMEHeaderKey(key)
		if reserved[key] {
			return nil, fmt.Errorf("header %s cannot be set, use the matching flag instead", key)
		}
		m[key] = strings.TrimSpace(value)
	}
	return m, nil
}
