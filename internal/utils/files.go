package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	htmlpkg "html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"quiz-extractor/internal/models"
	"quiz-extractor/internal/templates"

	"github.com/mandolyte/mdtopdf"
	"github.com/yuin/goldmark"
)

var (
	titlePattern      = regexp.MustCompile(`(?is)<title>.*?</title>`)
	headerPattern     = regexp.MustCompile(`(?is)(<h1 class="page-title">).*?(</h1>)`)
	questionsListOpen = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*\bquestions-list\b[^"]*"[^>]*>`)
	markdownSpecial   = regexp.MustCompile("([\\\\`*_\\[\\]<>#|])")
	invalidChars      = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// WriteData writes set to outputPath in the given format (json, md, html
// or pdf) and returns the written path.
func WriteData(set models.QuestionSet, outputPath, format, title string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	path := OutputPath(outputPath, format)

	var err error
	switch format {
	case "json", "":
		err = writeJSON(set, path)
	case "md":
		err = os.WriteFile(path, BuildMarkdown(set, title, true), 0o644)
	case "html":
		err = writeHTML(set, path, title)
	case "pdf":
		err = writePDF(set, path, title)
	default:
		return "", fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// DefaultOutputPath derives "<input-base>_questions.<ext>" next to input.
func DefaultOutputPath(inputPath, suffix, format string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	base = sanitizeFilenameSegment(base)
	if base == "" {
		base = "extracted"
	}
	return filepath.Join(filepath.Dir(inputPath), base+suffix+"."+extensionFor(format))
}

// OutputPath forces the extension that matches format.
func OutputPath(outputPath, format string) string {
	cleanPath := strings.TrimSpace(outputPath)
	if cleanPath == "" {
		cleanPath = "extracted_questions"
	}

	ext := "." + extensionFor(format)
	if strings.EqualFold(filepath.Ext(cleanPath), ext) {
		return cleanPath
	}
	base := strings.TrimSuffix(cleanPath, filepath.Ext(cleanPath))
	if base == "" {
		base = cleanPath
	}
	return base + ext
}

func extensionFor(format string) string {
	switch strings.ToLower(format) {
	case "md", "html", "pdf":
		return strings.ToLower(format)
	default:
		return "json"
	}
}

func sanitizeFilenameSegment(input string) string {
	segment := strings.TrimSpace(input)
	if segment == "" {
		return ""
	}

	segment = strings.ReplaceAll(segment, " ", "-")
	segment = invalidChars.ReplaceAllString(segment, "-")
	return strings.Trim(segment, "-._")
}

// EncodeJSON renders set in the output document shape. HTML characters are
// kept literal so prompts read the same as on the page.
func EncodeJSON(set models.QuestionSet) ([]byte, error) {
	if set.Questions == nil {
		set.Questions = []models.QuestionRecord{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(set); err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}
	return buf.Bytes(), nil
}

func DecodeJSON(data []byte) (models.QuestionSet, error) {
	var set models.QuestionSet
	if err := json.Unmarshal(data, &set); err != nil {
		return models.QuestionSet{}, fmt.Errorf("failed to decode questions: %w", err)
	}
	return set, nil
}

func writeJSON(set models.QuestionSet, path string) error {
	payload, err := EncodeJSON(set)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write json file: %w", err)
	}
	return nil
}

// BuildMarkdown renders the question set as a Markdown study sheet. Images
// are linked inline when withImages is set and listed as paths otherwise.
func BuildMarkdown(set models.QuestionSet, title string, withImages bool) []byte {
	var b strings.Builder
	if title == "" {
		title = "Questions"
	}
	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(title))

	for _, q := range set.Questions {
		fmt.Fprintf(&b, "## Question %d\n\n", q.ID)
		if q.Question != "" {
			fmt.Fprintf(&b, "%s\n\n", escapeMarkdown(q.Question))
		}
		if q.HasImage() {
			if withImages {
				fmt.Fprintf(&b, "![Question %d](<%s>)\n\n", q.ID, *q.Image)
			} else {
				fmt.Fprintf(&b, "Image: %s\n\n", escapeMarkdown(*q.Image))
			}
		}

		correct := map[int]struct{}{}
		for _, idx := range q.Correct {
			correct[idx] = struct{}{}
		}
		for i, choice := range q.Choices {
			letter := choiceLetter(i)
			if _, ok := correct[i]; ok {
				fmt.Fprintf(&b, "- **%s. %s** (correct)\n", letter, escapeMarkdown(choice))
				continue
			}
			fmt.Fprintf(&b, "- %s. %s\n", letter, escapeMarkdown(choice))
		}
		if len(q.Choices) > 0 {
			b.WriteString("\n")
		}

		if q.Type == models.AnswerMultiple {
			b.WriteString("*Multiple answers*\n\n")
		}
		if q.Explanation != "" {
			fmt.Fprintf(&b, "> **Explanation:** %s\n\n", escapeMarkdown(q.Explanation))
		}
	}

	return []byte(b.String())
}

func choiceLetter(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("%d", i+1)
}

func escapeMarkdown(text string) string {
	return markdownSpecial.ReplaceAllString(text, `\$1`)
}

func writeHTML(set models.QuestionSet, path, title string) error {
	doc, err := buildHTMLDocument(set, title)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return fmt.Errorf("failed to write html file: %w", err)
	}
	return nil
}

func buildHTMLDocument(set models.QuestionSet, title string) ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert(BuildMarkdown(set, title, true), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	shell := applyTemplateTitle(templates.EmbeddedTemplate, title)
	doc, err := injectIntoQuestionsList(shell, body.String())
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func applyTemplateTitle(templateHTML, title string) string {
	if title == "" {
		title = "Questions"
	}
	escaped := htmlpkg.EscapeString(title)
	updated := titlePattern.ReplaceAllString(templateHTML, fmt.Sprintf("<title>%s</title>", escaped))
	return headerPattern.ReplaceAllString(updated, fmt.Sprintf("${1}%s${2}", escaped))
}

func injectIntoQuestionsList(templateHTML, content string) (string, error) {
	openMatch := questionsListOpen.FindStringIndex(templateHTML)
	if openMatch == nil {
		return "", fmt.Errorf("questions-list block not found in template")
	}

	openStart := openMatch[0]
	openEnd := openMatch[1]
	closeEnd, err := findMatchingDivClose(templateHTML, openStart)
	if err != nil {
		return "", fmt.Errorf("failed to locate questions-list closing tag: %w", err)
	}
	closeStart := closeEnd - len("</div>")

	lineStart := strings.LastIndex(templateHTML[:openStart], "\n") + 1
	containerIndent := templateHTML[lineStart:openStart]

	injected := indentBlock(strings.TrimSpace(content), containerIndent+"  ")
	prefix := strings.TrimRight(templateHTML[:openEnd], "\r\n")
	suffix := templateHTML[closeStart:]

	if injected == "" {
		return prefix + "\n" + containerIndent + suffix, nil
	}
	return prefix + "\n" + injected + "\n" + containerIndent + suffix, nil
}

func findMatchingDivClose(content string, startIdx int) (int, error) {
	depth := 0
	cursor := startIdx

	for cursor < len(content) {
		nextOpen := strings.Index(content[cursor:], "<div")
		nextClose := strings.Index(content[cursor:], "</div>")

		if nextOpen == -1 && nextClose == -1 {
			break
		}

		if nextOpen != -1 && (nextClose == -1 || nextOpen < nextClose) {
			depth++
			cursor += nextOpen + len("<div")
			continue
		}

		depth--
		cursor += nextClose + len("</div>")
		if depth == 0 {
			return cursor, nil
		}
	}

	return 0, fmt.Errorf("unbalanced div starting at offset %d", startIdx)
}

func indentBlock(content, indent string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// writePDF renders the Markdown sheet without inline images; the renderer
// would otherwise need every asset on disk.
func writePDF(set models.QuestionSet, path, title string) error {
	renderer := mdtopdf.NewPdfRenderer("", "", path, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(BuildMarkdown(set, title, false)); err != nil {
		return fmt.Errorf("failed to write pdf file: %w", err)
	}
	return nil
}
