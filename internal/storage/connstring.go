package storage

import (
	"errors"
	"fmt"
	"strings"
)

type pair struct {
	key, value string
}

// ConnectionString is a parsed "Key=Value;Key=Value" descriptor. Key lookup
// is case-insensitive and the original order is kept for String.
type ConnectionString struct {
	pairs []pair
}

// ParseConnectionString splits s on ';' and each segment on the first '='.
// Empty segments are skipped; a segment without '=' is an error.
func ParseConnectionString(s string) (ConnectionString, error) {
	var cs ConnectionString
	for _, seg := range strings.Split(s, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		k, v, ok := strings.Cut(seg, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return ConnectionString{}, fmt.Errorf("malformed connection string segment %q", redact(seg))
		}
		cs.pairs = append(cs.pairs, pair{key: k, value: strings.TrimSpace(v)})
	}
	if len(cs.pairs) == 0 {
		return ConnectionString{}, errors.New("connection string has no key=value pairs")
	}
	return cs, nil
}

// Get returns the value for key, or "" when absent. The last occurrence wins.
func (c ConnectionString) Get(key string) string {
	var v string
	for _, p := range c.pairs {
		if strings.EqualFold(p.key, key) {
			v = p.value
		}
	}
	return v
}

// Without returns a copy with every occurrence of key removed.
func (c ConnectionString) Without(key string) ConnectionString {
	out := ConnectionString{pairs: make([]pair, 0, len(c.pairs))}
	for _, p := range c.pairs {
		if !strings.EqualFold(p.key, key) {
			out.pairs = append(out.pairs, p)
		}
	}
	return out
}

func (c ConnectionString) String() string {
	parts := make([]string, len(c.pairs))
	for i, p := range c.pairs {
		parts[i] = p.key + "=" + p.value
	}
	return strings.Join(parts, ";")
}

// redact keeps segment errors from echoing secrets into logs.
func redact(seg string) string {
	if len(seg) <= 4 {
		return "****"
	}
	return seg[:4] + "****"
}
