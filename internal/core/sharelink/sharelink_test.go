package sharelink

import (
	"encoding/base64"
	"reflect"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want []string
	}{
		{name: "single", ids: []string{"s1"}, want: []string{"s1"}},
		{name: "sorted output", ids: []string{"s2", "s1"}, want: []string{"s1", "s2"}},
		{name: "duplicates collapse", ids: []string{"s1", "s1", "s2"}, want: []string{"s1", "s2"}},
		{name: "hex ids", ids: []string{"a1b2c3d4e5f60718", "0011223344556677"}, want: []string{"0011223344556677", "a1b2c3d4e5f60718"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(Encode(tt.ids))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(Encode(%v)) = %v, want %v", tt.ids, got, tt.want)
			}
		})
	}
}

func TestEncode_EmptySet(t *testing.T) {
	if got := Encode(nil); got != "" {
		t.Errorf("Encode(nil) = %q, want empty", got)
	}
	if got := Encode([]string{}); got != "" {
		t.Errorf("Encode([]) = %q, want empty", got)
	}
	if got := Encode([]string{""}); got != "" {
		t.Errorf("Encode of blank IDs = %q, want empty", got)
	}
}

func TestDecode_Defensive(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "whitespace", input: "   "},
		{name: "bad base64 alphabet", input: "!!!not-base64!!!"},
		{name: "valid base64 but not JSON", input: base64.RawURLEncoding.EncodeToString([]byte("not json"))},
		{name: "JSON but not an array", input: base64.RawURLEncoding.EncodeToString([]byte(`{"a":1}`))},
		{name: "array of non-strings", input: base64.RawURLEncoding.EncodeToString([]byte(`[1,2,3]`))},
		{name: "invalid utf-8 payload", input: base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd})},
		{name: "json null", input: base64.RawURLEncoding.EncodeToString([]byte(`null`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input); len(got) != 0 {
				t.Errorf("Decode(%q) = %v, want empty", tt.input, got)
			}
		})
	}
}

func TestDecode_ToleratesStandardAlphabet(t *testing.T) {
	// Standard base64 with padding for ["s1","s2"] must still decode: links
	// pasted through other tools sometimes get re-encoded.
	standard := base64.StdEncoding.EncodeToString([]byte(`["s1","s2"]`))
	got := Decode(standard)
	if !reflect.DeepEqual(got, []string{"s1", "s2"}) {
		t.Errorf("Decode(standard alphabet) = %v, want [s1 s2]", got)
	}
}

func TestBuildURL(t *testing.T) {
	base := "https://www.ndss-symposium.org/ndss-program/symposium-2026/"

	if got := BuildURL(base, nil); got != base {
		t.Errorf("BuildURL(empty) = %q, want bare base URL", got)
	}

	withSet := BuildURL(base, []string{"s2", "s1"})
	wantPrefix := base + "#agenda="
	if len(withSet) <= len(wantPrefix) || withSet[:len(wantPrefix)] != wantPrefix {
		t.Fatalf("BuildURL() = %q, want prefix %q", withSet, wantPrefix)
	}

	code, ok := ExtractCode(withSet)
	if !ok {
		t.Fatal("ExtractCode() did not find the parameter")
	}
	if got := Decode(code); !reflect.DeepEqual(got, []string{"s1", "s2"}) {
		t.Errorf("round-trip through URL = %v, want [s1 s2]", got)
	}
}

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
		wantOK   bool
	}{
		{name: "full URL", input: "https://example.org/p#agenda=abc", wantCode: "abc", wantOK: true},
		{name: "present but empty", input: "https://example.org/p#agenda=", wantCode: "", wantOK: true},
		{name: "fragment only", input: "#agenda=xyz", wantCode: "xyz", wantOK: true},
		{name: "URL without fragment", input: "https://example.org/p", wantOK: false},
		{name: "unrelated fragment", input: "https://example.org/p#top", wantOK: false},
		{name: "raw code", input: "WyJzMSJd", wantCode: "WyJzMSJd", wantOK: true},
		{name: "empty input", input: "", wantOK: false},
		{name: "blank input", input: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ExtractCode(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ExtractCode(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if code != tt.wantCode {
				t.Errorf("ExtractCode(%q) = %q, want %q", tt.input, code, tt.wantCode)
			}
		})
	}
}
