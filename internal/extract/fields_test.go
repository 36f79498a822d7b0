package extract

import (
	"testing"

	"quiz-extractor/internal/constants"
	"quiz-extractor/internal/utils"

	"github.com/PuerkitoBio/goquery"
)

func segmentsOf(t *testing.T, html string) []Segment {
	t.Helper()
	s := NewSegmenter(constants.AnchorBlockSelector, 1, 174, utils.DiscardLogger())
	return collect(s.Segment(mustDoc(t, html)))
}

func defaultParser() *FieldParser {
	return NewFieldParser(constants.AssetFolderMarker, constants.ExplanationLabelPrefixes, constants.ImageLookahead, constants.ExplanationLookahead)
}

func TestScanForwardRespectsHopLimit(t *testing.T) {
	doc := mustDoc(t, `<body><i>0</i><i>1</i><i>2</i><i>3</i></body>`)
	var span []*goquery.Selection
	doc.Find("i").Each(func(_ int, s *goquery.Selection) {
		span = append(span, s)
	})

	isThree := func(s *goquery.Selection) bool { return s.Text() == "3" }

	if _, ok := scanForward(span, 0, 2, isThree); ok {
		t.Fatalf("expected no match within 2 hops")
	}
	if idx, ok := scanForward(span, 1, 3, isThree); !ok || idx != 3 {
		t.Fatalf("expected match at 3, got %d (%v)", idx, ok)
	}
	if idx, ok := scanForward(span, 0, unbounded, isThree); !ok || idx != 3 {
		t.Fatalf("expected unbounded match at 3, got %d (%v)", idx, ok)
	}
	if _, ok := scanForward(span, 5, unbounded, isThree); ok {
		t.Fatalf("expected no match past the end")
	}
}

func TestRebaseImagePath(t *testing.T) {
	tests := []struct {
		src    string
		marker string
		want   string
		ok     bool
	}{
		{"file:///home/u/Downloads/CyberSec_files/img1.png", "CyberSec_files/", "CyberSec_files/img1.png", true},
		{"./CyberSec_files/a/CyberSec_files/b.jpg", "CyberSec_files/", "CyberSec_files/b.jpg", true},
		{"https://cdn.example.com/logo.png", "CyberSec_files/", "", false},
		{"https://cdn.example.com/logo.png", "", "https://cdn.example.com/logo.png", true},
		{"data:image/png;base64,AAAA", "", "", false},
		{"  ", "CyberSec_files/", "", false},
	}

	for _, tt := range tests {
		got, ok := rebaseImagePath(tt.src, tt.marker)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("rebaseImagePath(%q, %q) = %q, %v; want %q, %v", tt.src, tt.marker, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePromptStripsNumberAndWhitespace(t *testing.T) {
	segs := segmentsOf(t, `<body><p><strong>12.   Which   port
	does SSH use?</strong></p></body>`)

	f := defaultParser().Parse(segs[0])
	if f.prompt != "Which port does SSH use?" {
		t.Fatalf("unexpected prompt %q", f.prompt)
	}
}

func TestParsePromptFallsBackToBlockText(t *testing.T) {
	segs := segmentsOf(t, `<body><p><strong>7.</strong> What does a SIEM collect?</p></body>`)

	f := defaultParser().Parse(segs[0])
	if f.prompt != "What does a SIEM collect?" {
		t.Fatalf("unexpected prompt %q", f.prompt)
	}
}

func TestParseFindsImageBeforeList(t *testing.T) {
	segs := segmentsOf(t, `<body>
<p><strong>1. Refer to the exhibit.</strong></p>
<p>Some context.</p>
<figure><img src="/tmp/CyberSec_files/exhibit.png"></figure>
<ul><li>a</li></ul>
<p><img src="/tmp/CyberSec_files/after.png"></p>
</body>`)

	f := defaultParser().Parse(segs[0])
	if f.image == nil || *f.image != "CyberSec_files/exhibit.png" {
		t.Fatalf("unexpected image %v", f.image)
	}
	if f.list == nil || f.list.Find("li").Length() != 1 {
		t.Fatalf("expected choice list to be found")
	}
}

func TestParseIgnoresImageAfterList(t *testing.T) {
	segs := segmentsOf(t, `<body>
<p><strong>1. No exhibit here.</strong></p>
<ul><li>a</li></ul>
<p><img src="/tmp/CyberSec_files/after.png"></p>
</body>`)

	f := defaultParser().Parse(segs[0])
	if f.image != nil {
		t.Fatalf("expected no image, got %q", *f.image)
	}
}

func TestParseImageInsideAnchor(t *testing.T) {
	segs := segmentsOf(t, `<body>
<p><strong>1. Look:</strong><br><img src="CyberSec_files/inline.gif"></p>
<ul><li>a</li></ul>
</body>`)

	f := defaultParser().Parse(segs[0])
	if f.image == nil || *f.image != "CyberSec_files/inline.gif" {
		t.Fatalf("unexpected image %v", f.image)
	}
}

func TestParseListInsideContainer(t *testing.T) {
	segs := segmentsOf(t, `<body>
<p><strong>1. Pick one.</strong></p>
<div class="choices"><ol><li>x</li><li>y</li></ol></div>
</body>`)

	f := defaultParser().Parse(segs[0])
	if f.list == nil || !f.list.Is("ol") {
		t.Fatalf("expected nested ordered list")
	}
}

func TestParseExplanationFromMessageBox(t *testing.T) {
	segs := segmentsOf(t, `<body>
<p><strong>1. Pick one.</strong></p>
<ul><li>x</li></ul>
<p>Unrelated note.</p>
<div class="wrapper"><div class="message_box success">Explanation:   Because
  of   reasons.</div></div>
</body>`)

	f := defaultParser().Parse(segs[0])
	if f.explanation != "Because of reasons." {
		t.Fatalf("unexpected explanation %q", f.explanation)
	}
}

func TestParseExplanationBeyondLookahead(t *testing.T) {
	parser := NewFieldParser(constants.AssetFolderMarker, constants.ExplanationLabelPrefixes, constants.ImageLookahead, 1)
	segs := segmentsOf(t, `<body>
<p><strong>1. Pick one.</strong></p>
<ul><li>x</li></ul>
<p>filler</p>
<p>Explanation: too far away.</p>
</body>`)

	f := parser.Parse(segs[0])
	if f.explanation != "" {
		t.Fatalf("expected no explanation, got %q", f.explanation)
	}
}

func TestParsePreFallback(t *testing.T) {
	segs := segmentsOf(t, `<body>
<p><strong>1. Which line is right?</strong></p>
<pre>alpha
beta</pre>
</body>`)

	f := defaultParser().Parse(segs[0])
	if f.list != nil || f.pre == nil {
		t.Fatalf("expected pre block fallback")
	}
}
