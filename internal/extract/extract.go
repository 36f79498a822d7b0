package extract

import (
	"io"

	"quiz-extractor/internal/config"
	"quiz-extractor/internal/constants"
	"quiz-extractor/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"
)

type Result struct {
	Set     models.QuestionSet
	Summary models.Summary
}

// Extractor runs Segmenter, FieldParser, Classifier and Assembler over one
// document. It holds no state between runs.
type Extractor struct {
	cfg        config.Config
	log        logrus.FieldLogger
	progress   io.Writer
	segmenter  *Segmenter
	parser     *FieldParser
	classifier *Classifier
}

func New(cfg config.Config, log logrus.FieldLogger) *Extractor {
	return &Extractor{
		cfg:        cfg,
		log:        log,
		segmenter:  NewSegmenter(constants.AnchorBlockSelector, cfg.MinQuestionID, cfg.MaxQuestionID, log),
		parser:     NewFieldParser(cfg.AssetFolderMarker, cfg.ExplanationLabelPrefixes, cfg.ImageLookahead, cfg.ExplanationLookahead),
		classifier: NewClassifier(cfg.CorrectColors, cfg.MultipleAnswerCues),
	}
}

// WithProgress draws a progress bar on w while questions are extracted.
func (e *Extractor) WithProgress(w io.Writer) *Extractor {
	e.progress = w
	return e
}

func (e *Extractor) ExtractFile(path string) (Result, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return Result{}, err
	}
	return e.Extract(doc), nil
}

func (e *Extractor) Extract(doc *goquery.Document) Result {
	segments := e.segmenter.Segment(doc)
	assembler := NewAssembler(e.cfg.MinQuestionID, e.cfg.MaxQuestionID)

	var bar *pb.ProgressBar
	if e.progress != nil && segments.Len() > 0 {
		bar = pb.New(segments.Len()).SetWriter(e.progress).Start()
	}

	for seg := range segments.All() {
		rec := e.record(seg)
		if !assembler.Add(rec) {
			e.log.WithField("id", seg.ID).Debug("Duplicate question anchor, keeping the first one")
		}
		if bar != nil {
			bar.Increment()
		}
	}

	if bar != nil {
		bar.Finish()
	}

	return Result{
		Set:     models.QuestionSet{Questions: assembler.Records()},
		Summary: assembler.Summary(),
	}
}

func (e *Extractor) record(seg Segment) models.QuestionRecord {
	log := e.log.WithField("id", seg.ID)
	log.Debug("Processing question")

	f := e.parser.Parse(seg)

	choices, correct := []string{}, []int{}
	switch {
	case f.list != nil:
		choices, correct = e.classifier.Classify(f.list)
	case f.pre != nil:
		choices, correct = e.classifier.ClassifyLines(f.pre)
	default:
		log.Debug("No choice list found")
	}

	rec := models.QuestionRecord{
		ID:          seg.ID,
		Question:    f.prompt,
		Image:       f.image,
		Choices:     choices,
		Type:        e.classifier.AnswerType(f.prompt),
		Correct:     correct,
		Explanation: f.explanation,
	}

	log.WithFields(logrus.Fields{
		"choices": len(rec.Choices),
		"correct": rec.Correct,
		"type":    rec.Type,
	}).Debug("Question assembled")
	return rec
}
