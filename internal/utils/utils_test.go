package utils

import (
	"testing"
	"time"
)

func TestCleanTextCollapsesWhitespace(t *testing.T) {
	input := "  Which\tport\n\n does   SSH use?  "

	got := CleanText(input)
	want := "Which port does SSH use?"
	if got != want {
		t.Fatalf("unexpected cleaned text\nwant: %q\ngot:  %q", want, got)
	}
}

func TestStripTagsDecodesEntities(t *testing.T) {
	got := StripTags(`<span style="color:red"><b>A &amp; B</b></span>  &lt;tag&gt;`)
	want := "A & B <tag>"
	if got != want {
		t.Fatalf("unexpected stripped text\nwant: %q\ngot:  %q", want, got)
	}
}

func TestTrimLabel(t *testing.T) {
	labels := []string{"Explanation:", "Explain:"}
	tests := map[string]string{
		"Explanation: because":    "because",
		"  explain:   lower case": "lower case",
		"No label here":           "No label here",
		"Explained: not a label":  "Explained: not a label",
	}
	for in, want := range tests {
		if got := TrimLabel(in, labels); got != want {
			t.Fatalf("TrimLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHasLabel(t *testing.T) {
	labels := []string{"Explanation:"}
	if !HasLabel("\n  EXPLANATION: x", labels) {
		t.Fatalf("expected label to be detected")
	}
	if HasLabel("See the explanation: below", labels) {
		t.Fatalf("expected label to be required at the start")
	}
}

func TestGrepAny(t *testing.T) {
	if !GrepAny("Which TWO statements are true?", []string{"choose two", "which two"}) {
		t.Fatalf("expected case-insensitive match")
	}
	if GrepAny("Which statement is true?", []string{"", "which two"}) {
		t.Fatalf("expected no match")
	}
}

func TestSortedIDsAndFormat(t *testing.T) {
	ids := SortedIDs(map[int]struct{}{9: {}, 3: {}, 5: {}})
	if FormatIDs(ids) != "3, 5, 9" {
		t.Fatalf("unexpected formatted ids %q", FormatIDs(ids))
	}
	if FormatIDs(nil) != "none" {
		t.Fatalf("expected none for empty ids")
	}
}

func TestTimeSinceFormatsMinutes(t *testing.T) {
	got := TimeSince(time.Now().Add(-(2*time.Minute + 5*time.Second)))
	if got != "2m5s" {
		t.Fatalf("unexpected duration %q", got)
	}
}
