package service

import (
	"strings"
	"time"
)

// timestamp returns the creation time stored for new content, in UTC and
// truncated to the precision every supported database keeps.
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// normalizeLinks drops entries with a blank key and trims every key and
// value. The result is never nil.
func normalizeLinks(links map[string]string) map[string]string {
	out := make(map[string]string, len(links))
	for k, v := range links {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

// normalizeList trims every entry and drops blanks. The result is never nil.
func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
