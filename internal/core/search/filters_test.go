package search

import (
	"testing"
)

func TestParseQuery(t *testing.T) {
	t.Run("PlainText", func(t *testing.T) {
		f := ParseQuery("network defenses")
		if f.Text != "network defenses" {
			t.Errorf("expected text preserved, got %q", f.Text)
		}
		if f.HasConstraints() {
			t.Error("plain text should not set constraints")
		}
	})

	t.Run("FiltersStrippedFromText", func(t *testing.T) {
		f := ParseQuery("day:monday track:keynote room:rousseau fuzzing coverage")
		if f.Day != "monday" {
			t.Errorf("expected day filter, got %q", f.Day)
		}
		if f.Track != "keynote" {
			t.Errorf("expected track filter, got %q", f.Track)
		}
		if f.Room != "rousseau" {
			t.Errorf("expected room filter, got %q", f.Room)
		}
		if f.Text != "fuzzing coverage" {
			t.Errorf("expected filters stripped from text, got %q", f.Text)
		}
	})

	t.Run("Starred", func(t *testing.T) {
		for _, val := range []string{"yes", "true", "only", "1"} {
			if !ParseQuery("starred:" + val).Starred {
				t.Errorf("starred:%s should set the filter", val)
			}
		}
		if ParseQuery("starred:no").Starred {
			t.Error("starred:no should not set the filter")
		}
	})

	t.Run("ExplicitDates", func(t *testing.T) {
		f := ParseQuery("on:2026-02-23")
		if !f.HasOn {
			t.Fatal("expected on: to parse")
		}
		if got := f.On.Format("2006-01-02"); got != "2026-02-23" {
			t.Errorf("expected 2026-02-23, got %s", got)
		}

		f = ParseQuery("after:2026-02-23 before:2026-02-25")
		if !f.HasAfter || !f.HasBefore {
			t.Fatal("expected both range bounds to parse")
		}
		if got := f.After.Format("2006-01-02"); got != "2026-02-23" {
			t.Errorf("unexpected after date %s", got)
		}
		if got := f.Before.Format("2006-01-02"); got != "2026-02-25" {
			t.Errorf("unexpected before date %s", got)
		}
	})

	t.Run("NaturalLanguageDate", func(t *testing.T) {
		f := ParseQuery("on:today")
		if !f.HasOn {
			t.Fatal("expected natural-language date to parse")
		}
		if f.Text != "" {
			t.Errorf("expected empty text, got %q", f.Text)
		}
	})

	t.Run("UnparsableDateDropped", func(t *testing.T) {
		f := ParseQuery("on:whenever fuzzing")
		if f.HasOn {
			t.Error("unparsable date should not set the filter")
		}
		if f.Text != "fuzzing" {
			t.Errorf("expected remaining text, got %q", f.Text)
		}
	})
}
