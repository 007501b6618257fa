// Package sharelink encodes a starred-session set into a URL-safe fragment
// parameter so an agenda can be shared as a plain link, with no server side.
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"
)

// FragmentParam is the query-style parameter carried in the URL fragment:
// https://host/page#agenda=<code>
const FragmentParam = "agenda"

// Encode serializes a set of session IDs as a sorted JSON array in URL-safe
// base64 without padding. An empty set encodes to the empty string, which
// callers treat as "clear the link".
func Encode(ids []string) string {
	unique := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			unique[id] = struct{}{}
		}
	}
	if len(unique) == 0 {
		return ""
	}

	sorted := make([]string, 0, len(unique))
	for id := range unique {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	raw, err := json.Marshal(sorted)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Decode is the best-effort inverse of Encode. Any malformed input (bad
// base64, invalid UTF-8, invalid JSON, JSON that is not a string array)
// yields nil rather than an error: a garbage link must never break startup.
// The standard base64 alphabet and trailing padding are tolerated.
func Decode(encoded string) []string {
	code := strings.TrimRight(strings.TrimSpace(encoded), "=")
	code = strings.NewReplacer("+", "-", "/", "_").Replace(code)
	if code == "" {
		return nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil
	}
	if !utf8.Valid(raw) {
		return nil
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil
	}
	return ids
}

// BuildURL returns the shareable URL for the given set: the bare base URL
// when the set is empty, otherwise base#agenda=<code>.
func BuildURL(base string, ids []string) string {
	code := Encode(ids)
	if code == "" {
		return base
	}
	return base + "#" + FragmentParam + "=" + code
}

// ExtractCode pulls the encoded agenda out of user-supplied link input. The
// input may be a full URL with a fragment, a bare fragment, or a raw code.
// ok reports whether the parameter was present at all; a present-but-empty
// parameter returns ("", true) so callers can distinguish it from absence.
func ExtractCode(input string) (code string, ok bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", false
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		values, err := url.ParseQuery(s[i+1:])
		if err != nil {
			return "", false
		}
		if !values.Has(FragmentParam) {
			return "", false
		}
		return values.Get(FragmentParam), true
	}

	// A URL without a fragment carries no agenda.
	if strings.Contains(s, "://") {
		return "", false
	}

	// Anything else is treated as a raw code.
	return s, true
}
