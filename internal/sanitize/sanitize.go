// Package sanitize turns raw inbound query parameters into the validated,
// typed subset forwarded upstream. Malformed numeric input never fails, it
// falls back to the documented default.
package sanitize

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MaxSearchLength = 200

	DefaultEndEp = 100
	MaxEndEp     = 10_000

	DefaultLimit = 12
	MaxLimit     = 100
)

type pair struct {
	key   string
	value string
}

// Params is an insertion-ordered set of sanitized parameters. Ordering does
// not affect upstream semantics but keeps the built query string
// reproducible.
type Params struct {
	pairs []pair
}

func (p *Params) set(key, value string) {
	p.pairs = append(p.pairs, pair{key: key, value: value})
}

// Get returns the value for key and whether the key is present.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p.pairs {
		if kv.key == key {
			return kv.value, true
		}
	}
	return "", false
}

func (p Params) Len() int {
	return len(p.pairs)
}

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.pairs))
	for _, kv := range p.pairs {
		keys = append(keys, kv.key)
	}
	return keys
}

// Encode builds the query string in insertion order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}

// Sanitize normalizes the recognized keys of in. Keys absent from the input
// are absent from the output; present keys with malformed values get the
// documented default. Never fails.
func Sanitize(in url.Values) Params {
	var p Params

	if in.Has("search") {
		v := truncate(strings.TrimSpace(in.Get("search")), MaxSearchLength)
		if v != "" {
			p.set("search", v)
		}
	}

	if in.Has("slug") {
		if v := strings.TrimSpace(in.Get("slug")); v != "" {
			p.set("slug", v)
		}
	}

	if in.Has("season") {
		p.set("season", strconv.Itoa(clampInt(in.Get("season"), 1, 0, 1)))
	}

	if in.Has("episode") {
		p.set("episode", strconv.Itoa(clampInt(in.Get("episode"), 1, 0, 1)))
	}

	if in.Has("season_id") {
		if v := in.Get("season_id"); v != "" {
			p.set("season_id", v)
		}
	}

	if in.Has("start_ep") {
		p.set("start_ep", strconv.Itoa(clampInt(in.Get("start_ep"), 1, 0, 1)))
	}

	if in.Has("end_ep") {
		p.set("end_ep", strconv.Itoa(clampInt(in.Get("end_ep"), 1, MaxEndEp, DefaultEndEp)))
	}

	if in.Has("limit") {
		p.set("limit", strconv.Itoa(clampInt(in.Get("limit"), 1, MaxLimit, DefaultLimit)))
	}

	if in.Has("page") {
		p.set("page", strconv.Itoa(clampInt(in.Get("page"), 1, 0, 1)))
	}

	return p
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// clampInt parses raw and clamps it to [min, max]. A max of 0 means no upper
// bound. Unparseable input yields def.
func clampInt(raw string, min, max, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
