package extract

import (
	"testing"

	"quiz-extractor/internal/constants"
	"quiz-extractor/internal/utils"
)

func collect(segs Segments) []Segment {
	var out []Segment
	for seg := range segs.All() {
		out = append(out, seg)
	}
	return out
}

func TestSegmentFindsAnchorsInDocumentOrder(t *testing.T) {
	s := NewSegmenter(constants.AnchorBlockSelector, 1, 60, utils.DiscardLogger())
	segs := s.Segment(mustDoc(t, examPage))

	got := collect(segs)
	want := []int{1, 2, 3, 57, 57}
	if len(got) != len(want) || segs.Len() != len(want) {
		t.Fatalf("expected %d segments, got %d (Len %d)", len(want), len(got), segs.Len())
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("unexpected id at index %d: want %d, got %d", i, want[i], got[i].ID)
		}
	}
}

func TestSegmentSpanStopsAtNextAnchor(t *testing.T) {
	s := NewSegmenter(constants.AnchorBlockSelector, 1, 60, utils.DiscardLogger())
	got := collect(s.Segment(mustDoc(t, examPage)))

	first := got[0].Span
	if len(first) != 2 {
		t.Fatalf("expected question 1 span of 2 nodes, got %d", len(first))
	}
	if !first[0].Is("ul") {
		t.Fatalf("expected first span node to be the choice list")
	}
	if !first[1].HasClass("message_box") {
		t.Fatalf("expected second span node to be the explanation box")
	}

	// The out-of-range anchor does not end the last span.
	last := got[len(got)-1].Span
	if len(last) != 2 {
		t.Fatalf("expected last span to include the out-of-range paragraph, got %d nodes", len(last))
	}
}

func TestSegmentIgnoresNumbersNotAtBlockStart(t *testing.T) {
	html := `<body>
<p>See <strong>12. the earlier question</strong> for details.</p>
<p><b>4. Real question?</b></p>
<ul><li>a</li></ul>
</body>`

	s := NewSegmenter(constants.AnchorBlockSelector, 1, 174, utils.DiscardLogger())
	got := collect(s.Segment(mustDoc(t, html)))
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("expected only anchor 4, got %+v", got)
	}
}

func TestSegmentSpansStayInsideWrappers(t *testing.T) {
	html := `<body>
<div class="q"><p><strong>1. First?</strong></p><ul><li>a</li></ul></div>
<div class="q"><p><strong>2. Second?</strong></p><ul><li>b</li><li>c</li></ul></div>
</body>`

	s := NewSegmenter(constants.AnchorBlockSelector, 1, 174, utils.DiscardLogger())
	got := collect(s.Segment(mustDoc(t, html)))
	if len(got) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(got))
	}
	if len(got[0].Span) != 1 || len(got[1].Span) != 1 {
		t.Fatalf("expected one list per span, got %d and %d", len(got[0].Span), len(got[1].Span))
	}
}

func TestSegmentEmptyDocument(t *testing.T) {
	s := NewSegmenter(constants.AnchorBlockSelector, 1, 174, utils.DiscardLogger())
	segs := s.Segment(mustDoc(t, `<body><p>No questions here.</p></body>`))
	if segs.Len() != 0 || len(collect(segs)) != 0 {
		t.Fatalf("expected no segments")
	}
}

func TestSegmentIterationStopsEarly(t *testing.T) {
	s := NewSegmenter(constants.AnchorBlockSelector, 1, 60, utils.DiscardLogger())
	segs := s.Segment(mustDoc(t, examPage))

	seen := 0
	for range segs.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("expected to stop after 2 segments, got %d", seen)
	}
}
