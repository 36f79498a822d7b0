package extract

import (
	"strconv"
	"strings"

	"quiz-extractor/internal/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	listMatcher    = cascadia.MustCompile("ul, ol")
	imageMatcher   = cascadia.MustCompile("img[src]")
	preMatcher     = cascadia.MustCompile("pre")
	messageMatcher = cascadia.MustCompile(`[class*="message"]`)
)

// unbounded disables the hop limit of scanForward.
const unbounded = -1

// fields are the raw parts of one question before classification.
type fields struct {
	prompt      string
	image       *string
	list        *goquery.Selection
	pre         *goquery.Selection
	explanation string
}

// scanForward returns the index of the first node in span, starting at
// from and looking at most hops nodes ahead, for which match is true.
func scanForward(span []*goquery.Selection, from, hops int, match func(*goquery.Selection) bool) (int, bool) {
	if from < 0 {
		from = 0
	}
	end := len(span)
	if hops >= 0 && from+hops < end {
		end = from + hops
	}
	for i := from; i < end; i++ {
		if match(span[i]) {
			return i, true
		}
	}
	return -1, false
}

type FieldParser struct {
	assetMarker     string
	labels          []string
	imageHops       int
	explanationHops int
}

func NewFieldParser(assetMarker string, labels []string, imageHops, explanationHops int) *FieldParser {
	return &FieldParser{
		assetMarker:     assetMarker,
		labels:          labels,
		imageHops:       imageHops,
		explanationHops: explanationHops,
	}
}

func (p *FieldParser) Parse(seg Segment) fields {
	f := fields{prompt: promptText(seg)}

	next := 0
	listAt, hasList := scanForward(seg.Span, 0, unbounded, p.isChoiceContainer)
	if hasList {
		f.list = choiceList(seg.Span[listAt])
		next = listAt + 1
	} else if preAt, ok := scanForward(seg.Span, 0, unbounded, isPre); ok {
		f.pre = seg.Span[preAt]
		next = preAt + 1
	}

	f.image = p.image(seg, listAt, hasList)
	f.explanation = p.explanation(seg.Span, next)
	return f
}

// promptText is the lead text without its "<id>." label. When the lead holds
// nothing but the label the rest of the anchor block is used instead.
func promptText(seg Segment) string {
	prefix := strconv.Itoa(seg.ID) + "."

	text := stripIDPrefix(utils.CleanText(seg.Lead.Text()), prefix)
	if text == "" {
		text = stripIDPrefix(utils.CleanText(seg.Anchor.Text()), prefix)
	}
	return text
}

func stripIDPrefix(text, prefix string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, prefix))
}

func (p *FieldParser) isChoiceContainer(node *goquery.Selection) bool {
	if node.IsMatcher(listMatcher) {
		return true
	}
	if p.isExplanation(node) {
		return false
	}
	return node.FindMatcher(listMatcher).Length() > 0
}

func choiceList(node *goquery.Selection) *goquery.Selection {
	if node.IsMatcher(listMatcher) {
		return node
	}
	return node.FindMatcher(listMatcher).First()
}

func isPre(node *goquery.Selection) bool {
	return node.IsMatcher(preMatcher)
}

// image looks in the anchor itself, then forward through the span. When a
// choice list exists every node before it is searched, otherwise the scan
// stops after imageHops nodes.
func (p *FieldParser) image(seg Segment, listAt int, hasList bool) *string {
	if src, ok := p.imageIn(seg.Anchor); ok {
		return &src
	}

	hops := p.imageHops
	if hasList {
		hops = listAt
	}

	var src string
	_, found := scanForward(seg.Span, 0, hops, func(node *goquery.Selection) bool {
		var ok bool
		src, ok = p.imageIn(node)
		return ok
	})
	if !found {
		return nil
	}
	return &src
}

func (p *FieldParser) imageIn(node *goquery.Selection) (string, bool) {
	var rebased string
	var found bool

	candidates := node.FilterMatcher(imageMatcher).AddSelection(node.FindMatcher(imageMatcher))
	candidates.EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		rebased, found = rebaseImagePath(src, p.assetMarker)
		return !found
	})
	return rebased, found
}

// rebaseImagePath keeps the part of src starting at the last occurrence of
// marker. Paths without the marker are rejected unless marker is empty.
func rebaseImagePath(src, marker string) (string, bool) {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return "", false
	}
	if marker == "" {
		return src, true
	}

	idx := strings.LastIndex(src, marker)
	if idx < 0 {
		return "", false
	}
	return src[idx:], true
}

func (p *FieldParser) isExplanation(node *goquery.Selection) bool {
	if node.IsMatcher(messageMatcher) || node.FindMatcher(messageMatcher).Length() > 0 {
		return true
	}
	return utils.HasLabel(node.Text(), p.labels)
}

func (p *FieldParser) explanation(span []*goquery.Selection, from int) string {
	at, ok := scanForward(span, from, p.explanationHops, p.isExplanation)
	if !ok {
		return ""
	}

	node := span[at]
	if !node.IsMatcher(messageMatcher) {
		if box := node.FindMatcher(messageMatcher).First(); box.Length() > 0 {
			node = box
		}
	}
	return utils.TrimLabel(utils.CleanText(node.Text()), p.labels)
}
