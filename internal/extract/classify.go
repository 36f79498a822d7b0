package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"quiz-extractor/internal/models"
	"quiz-extractor/internal/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	itemMatcher        = cascadia.MustCompile("li")
	styledMatcher      = cascadia.MustCompile("[style]")
	fontColorMatcher   = cascadia.MustCompile("font[color]")
	correctClass       = cascadia.MustCompile(".correct_answer, .correct-answer")
	emphasisTagPattern = regexp.MustCompile(`(?i)<(strong|b)[\s>]`)
	rgbPattern         = regexp.MustCompile(`^rgba?\((\d{1,3}),(\d{1,3}),(\d{1,3})(?:,[\d.]+)?\)$`)
)

var namedColors = map[string]string{
	"red":    "#ff0000",
	"green":  "#008000",
	"blue":   "#0000ff",
	"black":  "#000000",
	"white":  "#ffffff",
	"yellow": "#ffff00",
	"orange": "#ffa500",
	"purple": "#800080",
}

// correctMatcher is one strategy for spotting the correct-answer styling.
// item is the choice node and raw its outer markup.
type correctMatcher func(item *goquery.Selection, raw string) bool

// Classifier decides which choices are styled as correct and whether a
// prompt asks for more than one answer.
type Classifier struct {
	colors   map[string]struct{}
	cues     []string
	styleRaw *regexp.Regexp
	colorRaw *regexp.Regexp
	matchers []correctMatcher
}

func NewClassifier(correctColors, multipleCues []string) *Classifier {
	c := &Classifier{
		colors: map[string]struct{}{},
		cues:   multipleCues,
	}

	var spellings []string
	seen := map[string]struct{}{}
	for _, color := range correctColors {
		normalized := normalizeColor(color)
		if normalized == "" {
			continue
		}
		c.colors[normalized] = struct{}{}
		for _, s := range colorSpellings(color, normalized) {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			spellings = append(spellings, regexp.QuoteMeta(s))
		}
	}
	alternation := strings.Join(spellings, "|")

	c.styleRaw = regexp.MustCompile(fmt.Sprintf(`(?i)style\s*=\s*["'](?:[^"']*[\s;])?color\s*:\s*(?:%s)\s*(?:[;"'!]|$)`, alternation))
	c.colorRaw = regexp.MustCompile(fmt.Sprintf(`(?i)(?:^|[^-\w])color\s*:\s*(?:%s)\b`, alternation))
	c.matchers = []correctMatcher{
		c.styleDeclaration,
		c.fontColor,
		markedClass,
		c.styleAttributeMarkup,
		c.emphasizedColorMarkup,
	}
	return c
}

// Classify turns the direct items of a choice list into plain-text choices
// and the indices of the items styled as correct.
func (c *Classifier) Classify(list *goquery.Selection) ([]string, []int) {
	choices := []string{}
	correct := []int{}

	list.ChildrenMatcher(itemMatcher).Each(func(i int, item *goquery.Selection) {
		choices = append(choices, utils.CleanText(item.Text()))
		if c.Correct(item) {
			correct = append(correct, i)
		}
	})
	return choices, correct
}

// ClassifyLines treats every non-empty line of a preformatted block as a
// choice.
func (c *Classifier) ClassifyLines(pre *goquery.Selection) ([]string, []int) {
	choices := []string{}
	correct := []int{}

	markup, err := pre.Html()
	if err != nil {
		return choices, correct
	}
	for _, line := range strings.Split(markup, "\n") {
		text := utils.StripTags(line)
		if text == "" {
			continue
		}
		if c.CorrectMarkup(line) {
			correct = append(correct, len(choices))
		}
		choices = append(choices, text)
	}
	return choices, correct
}

// Correct reports whether any matcher flags item as the correct answer.
func (c *Classifier) Correct(item *goquery.Selection) bool {
	raw, err := goquery.OuterHtml(item)
	if err != nil {
		raw = ""
	}
	return c.matches(item, raw)
}

// CorrectMarkup is Correct for a raw markup fragment.
func (c *Classifier) CorrectMarkup(fragment string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return false
	}
	return c.matches(doc.Find("body"), fragment)
}

func (c *Classifier) matches(item *goquery.Selection, raw string) bool {
	for _, match := range c.matchers {
		if match(item, raw) {
			return true
		}
	}
	return false
}

func (c *Classifier) AnswerType(prompt string) models.AnswerType {
	if utils.GrepAny(prompt, c.cues) {
		return models.AnswerMultiple
	}
	return models.AnswerSingle
}

func (c *Classifier) isCorrectColor(value string) bool {
	_, ok := c.colors[normalizeColor(value)]
	return ok
}

func (c *Classifier) styleDeclaration(item *goquery.Selection, _ string) bool {
	found := false
	styled := item.FilterMatcher(styledMatcher).AddSelection(item.FindMatcher(styledMatcher))
	styled.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		style, _ := s.Attr("style")
		for _, decl := range strings.Split(style, ";") {
			prop, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(prop), "color") && c.isCorrectColor(value) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func (c *Classifier) fontColor(item *goquery.Selection, _ string) bool {
	found := false
	fonts := item.FilterMatcher(fontColorMatcher).AddSelection(item.FindMatcher(fontColorMatcher))
	fonts.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		color, _ := s.Attr("color")
		found = c.isCorrectColor(color)
		return !found
	})
	return found
}

func markedClass(item *goquery.Selection, _ string) bool {
	return item.IsMatcher(correctClass) || item.FindMatcher(correctClass).Length() > 0
}

func (c *Classifier) styleAttributeMarkup(_ *goquery.Selection, raw string) bool {
	return c.styleRaw.MatchString(raw)
}

// emphasizedColorMarkup catches color declarations the tree walk misses,
// as long as the item carries a strong or b wrapper.
func (c *Classifier) emphasizedColorMarkup(_ *goquery.Selection, raw string) bool {
	return emphasisTagPattern.MatchString(raw) && c.colorRaw.MatchString(raw)
}

// normalizeColor maps equivalent CSS color spellings onto lowercase
// six-digit hex.
func normalizeColor(value string) string {
	v := strings.ToLower(strings.Join(strings.Fields(value), ""))
	v = strings.TrimSuffix(v, "!important")
	v = strings.Trim(v, `"'`)
	if v == "" {
		return ""
	}

	if hex, ok := namedColors[v]; ok {
		return hex
	}
	if len(v) == 4 && v[0] == '#' {
		return "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2)
	}
	if m := rgbPattern.FindStringSubmatch(v); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r <= 255 && g <= 255 && b <= 255 {
			return fmt.Sprintf("#%02x%02x%02x", r, g, b)
		}
	}
	return v
}

// colorSpellings lists the literal forms a raw-markup regexp should accept
// for one configured color.
func colorSpellings(configured, normalized string) []string {
	spellings := []string{strings.ToLower(strings.TrimSpace(configured)), normalized}
	for name, hex := range namedColors {
		if hex == normalized {
			spellings = append(spellings, name)
		}
	}
	if len(normalized) == 7 && normalized[1] == normalized[2] && normalized[3] == normalized[4] && normalized[5] == normalized[6] {
		spellings = append(spellings, "#"+normalized[1:2]+normalized[3:4]+normalized[5:6])
	}
	return spellings
}
