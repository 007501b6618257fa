package agenda

import (
	"errors"
	"reflect"
	"testing"

	"github.com/confsched/confsched/internal/core/sharelink"
)

// fakeStore records writes and can simulate a broken backend.
type fakeStore struct {
	starred      string
	link         string
	starredSaves int
	linkSaves    int
	failWrites   bool
}

func (f *fakeStore) LoadStarred() string { return f.starred }

func (f *fakeStore) SaveStarred(payload string) error {
	f.starredSaves++
	if f.failWrites {
		return errors.New("store unavailable")
	}
	f.starred = payload
	return nil
}

func (f *fakeStore) SaveLink(url string) error {
	f.linkSaves++
	if f.failWrites {
		return errors.New("store unavailable")
	}
	f.link = url
	return nil
}

const base = "https://example.org/program/"

func TestReconcile_LinkWins(t *testing.T) {
	stored := `["s3"]`
	link := sharelink.Encode([]string{"s1", "s2"})

	ids, fromLink := Reconcile(link, true, stored)
	if !fromLink {
		t.Fatal("Reconcile() fromLink = false, want true")
	}
	if !reflect.DeepEqual(ids, []string{"s1", "s2"}) {
		t.Errorf("Reconcile() ids = %v, want [s1 s2]", ids)
	}
}

func TestReconcile_StorageWinsWhenLinkAbsent(t *testing.T) {
	ids, fromLink := Reconcile("", false, `["s4"]`)
	if fromLink {
		t.Fatal("Reconcile() fromLink = true, want false")
	}
	if !reflect.DeepEqual(ids, []string{"s4"}) {
		t.Errorf("Reconcile() ids = %v, want [s4]", ids)
	}
}

func TestReconcile_EmptyLinkNeverWipesStorage(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{name: "present but empty", link: ""},
		{name: "encodes empty array", link: sharelink.Encode(nil)},
		{name: "garbage", link: "%%%garbage%%%"},
		{name: "valid base64, bad json", link: "bm90IGpzb24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, fromLink := Reconcile(tt.link, true, `["s4"]`)
			if fromLink {
				t.Fatal("fromLink = true, want false")
			}
			if !reflect.DeepEqual(ids, []string{"s4"}) {
				t.Errorf("ids = %v, want [s4]", ids)
			}
		})
	}
}

func TestReconcile_MalformedStorage(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{name: "empty", stored: ""},
		{name: "invalid json", stored: "{broken"},
		{name: "not an array", stored: `{"a":1}`},
		{name: "array of numbers", stored: `[1,2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, fromLink := Reconcile("", false, tt.stored)
			if fromLink || len(ids) != 0 {
				t.Errorf("Reconcile(%q) = (%v, %v), want empty set", tt.stored, ids, fromLink)
			}
		})
	}
}

func TestOpen_LinkPropagatesToStorage(t *testing.T) {
	store := &fakeStore{starred: `["s3"]`}
	link := sharelink.Encode([]string{"s1", "s2"})

	set := Open(store, base, link, true)

	if got := set.IDs(); !reflect.DeepEqual(got, []string{"s1", "s2"}) {
		t.Errorf("IDs() = %v, want [s1 s2]", got)
	}
	if store.starred != `["s1","s2"]` {
		t.Errorf("storage = %q, want overwritten to [\"s1\",\"s2\"]", store.starred)
	}
	if store.link != sharelink.BuildURL(base, []string{"s1", "s2"}) {
		t.Errorf("link slot = %q, want rebuilt share URL", store.link)
	}
}

func TestOpen_NoLinkLeavesStorageUntouched(t *testing.T) {
	store := &fakeStore{starred: `["s4"]`}

	set := Open(store, base, "", false)

	if got := set.IDs(); !reflect.DeepEqual(got, []string{"s4"}) {
		t.Errorf("IDs() = %v, want [s4]", got)
	}
	if store.starredSaves != 0 || store.linkSaves != 0 {
		t.Errorf("startup wrote %d/%d times, want no writes until a mutation",
			store.starredSaves, store.linkSaves)
	}
}

func TestToggle(t *testing.T) {
	store := &fakeStore{}
	set := Open(store, base, "", false)

	if !set.Toggle("s1") {
		t.Fatal("Toggle(s1) = false, want membership true")
	}
	if !set.Contains("s1") {
		t.Fatal("Contains(s1) = false after toggle on")
	}
	if store.starred != `["s1"]` {
		t.Errorf("storage = %q, want [\"s1\"]", store.starred)
	}
	if store.link != sharelink.BuildURL(base, []string{"s1"}) {
		t.Errorf("link = %q, want share URL with s1", store.link)
	}

	if set.Toggle("s1") {
		t.Fatal("Toggle(s1) second call = true, want membership false")
	}
	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after double toggle", set.Len())
	}
	if store.starred != `[]` {
		t.Errorf("storage = %q, want empty array", store.starred)
	}
	if store.link != base {
		t.Errorf("link = %q, want bare base URL after emptying", store.link)
	}
}

func TestAdopt(t *testing.T) {
	store := &fakeStore{starred: `["s3"]`}
	set := Open(store, base, "", false)

	if !set.Adopt(sharelink.Encode([]string{"s1", "s2"})) {
		t.Fatal("Adopt() = false for a valid non-empty link")
	}
	if got := set.IDs(); !reflect.DeepEqual(got, []string{"s1", "s2"}) {
		t.Errorf("IDs() = %v, want [s1 s2]", got)
	}
	if store.starred != `["s1","s2"]` {
		t.Errorf("storage = %q, want propagated link set", store.starred)
	}
}

func TestAdopt_RejectsEmptyAndGarbage(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{name: "empty", link: ""},
		{name: "encodes empty array", link: sharelink.Encode(nil)},
		{name: "garbage", link: "%%%garbage%%%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{starred: `["s3"]`}
			set := Open(store, base, "", false)

			if set.Adopt(tt.link) {
				t.Fatal("Adopt() = true, want rejection")
			}
			if got := set.IDs(); !reflect.DeepEqual(got, []string{"s3"}) {
				t.Errorf("IDs() = %v, want untouched [s3]", got)
			}
			if store.starredSaves != 0 {
				t.Errorf("rejected adopt wrote storage %d times", store.starredSaves)
			}
		})
	}
}

func TestClear(t *testing.T) {
	store := &fakeStore{starred: `["s1","s2","s3"]`}
	set := Open(store, base, "", false)

	set.Clear()

	if set.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", set.Len())
	}
	if store.starred != `[]` {
		t.Errorf("storage = %q, want []", store.starred)
	}
	if store.link != base {
		t.Errorf("link = %q, want bare base URL", store.link)
	}
}

func TestWriteFailuresAreSwallowed(t *testing.T) {
	store := &fakeStore{failWrites: true}
	set := Open(store, base, "", false)

	if !set.Toggle("s1") {
		t.Fatal("Toggle(s1) = false, want true even when writes fail")
	}
	if !set.Contains("s1") {
		t.Error("in-memory mutation lost when store failed")
	}
	set.Clear()
	if set.Len() != 0 {
		t.Error("Clear() did not empty set when store failed")
	}
	if store.starredSaves == 0 {
		t.Error("store writes never attempted")
	}
}

func TestShareURL(t *testing.T) {
	store := &fakeStore{}
	set := Open(store, base, "", false)

	if got := set.ShareURL(); got != base {
		t.Errorf("ShareURL() = %q for empty set, want bare base", got)
	}

	set.Toggle("s1")
	want := sharelink.BuildURL(base, []string{"s1"})
	if got := set.ShareURL(); got != want {
		t.Errorf("ShareURL() = %q, want %q", got, want)
	}
}
