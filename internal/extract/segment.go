package extract

import (
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

var (
	leadMatcher = cascadia.MustCompile("strong, b")
	leadPattern = regexp.MustCompile(`(?s)^(\d+)\.\s*(.*)$`)
)

// Segment is one question anchor together with the sibling nodes that
// belong to it.
type Segment struct {
	ID     int
	Anchor *goquery.Selection
	Lead   *goquery.Selection
	Span   []*goquery.Selection
}

type anchor struct {
	id    int
	block *goquery.Selection
	lead  *goquery.Selection
}

// Segments holds the anchors found in one document. Spans are resolved
// lazily while iterating.
type Segments struct {
	anchors  []anchor
	boundary map[*html.Node]struct{}
}

func (s Segments) Len() int {
	return len(s.anchors)
}

// All yields one Segment per anchor in document order. Duplicate ids are
// all yielded.
func (s Segments) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for _, a := range s.anchors {
			seg := Segment{
				ID:     a.id,
				Anchor: a.block,
				Lead:   a.lead,
				Span:   s.span(a.block),
			}
			if !yield(seg) {
				return
			}
		}
	}
}

// span collects element siblings after block until one is, or contains,
// another anchor.
func (s Segments) span(block *goquery.Selection) []*goquery.Selection {
	var span []*goquery.Selection
	for sib := block.Next(); sib.Length() > 0; sib = sib.Next() {
		if _, stop := s.boundary[sib.Get(0)]; stop {
			break
		}
		span = append(span, sib)
	}
	return span
}

type Segmenter struct {
	blocks cascadia.Selector
	minID  int
	maxID  int
	log    logrus.FieldLogger
}

func NewSegmenter(blockSelector string, minID, maxID int, log logrus.FieldLogger) *Segmenter {
	return &Segmenter{
		blocks: cascadia.MustCompile(blockSelector),
		minID:  minID,
		maxID:  maxID,
		log:    log,
	}
}

func (s *Segmenter) Segment(doc *goquery.Document) Segments {
	segs := Segments{boundary: map[*html.Node]struct{}{}}

	doc.FindMatcher(s.blocks).Each(func(_ int, block *goquery.Selection) {
		id, lead, ok := leadAnchor(block)
		if !ok {
			return
		}
		if id < s.minID || id > s.maxID {
			s.log.WithField("id", id).Debug("Ignoring numbered emphasis outside the question range")
			return
		}

		segs.anchors = append(segs.anchors, anchor{id: id, block: block, lead: lead})
		for n := block.Get(0); n != nil; n = n.Parent {
			segs.boundary[n] = struct{}{}
		}
	})

	return segs
}

// leadAnchor reports whether block opens with an emphasized "<n>. " label.
func leadAnchor(block *goquery.Selection) (int, *goquery.Selection, bool) {
	lead := block.FindMatcher(leadMatcher).First()
	if lead.Length() == 0 {
		return 0, nil, false
	}

	leadText := strings.TrimSpace(lead.Text())
	m := leadPattern.FindStringSubmatch(leadText)
	if m == nil {
		return 0, nil, false
	}
	if !strings.HasPrefix(strings.TrimSpace(block.Text()), leadText) {
		return 0, nil, false
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, nil, false
	}
	return id, lead, true
}
