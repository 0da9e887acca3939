package store

import (
	"encoding/json"
	"fmt"
)

func marshalLinks(links map[string]string) (string, error) {
	if links == nil {
		links = map[string]string{}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", fmt.Errorf("marshal social links: %w", err)
	}
	return string(b), nil
}

func unmarshalLinks(raw string) map[string]string {
	links := map[string]string{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &links)
	}
	return links
}
