package extract

import (
	"sort"

	"quiz-extractor/internal/models"
	"quiz-extractor/internal/utils"
)

// Assembler collects records keyed by question id. The first record seen
// for an id wins; later ones are only counted as duplicates.
type Assembler struct {
	byID       map[int]models.QuestionRecord
	duplicates map[int]struct{}
	minID      int
	maxID      int
}

func NewAssembler(minID, maxID int) *Assembler {
	return &Assembler{
		byID:       map[int]models.QuestionRecord{},
		duplicates: map[int]struct{}{},
		minID:      minID,
		maxID:      maxID,
	}
}

// Add stores rec unless its id was already seen. It reports whether rec
// was kept.
func (a *Assembler) Add(rec models.QuestionRecord) bool {
	if _, exists := a.byID[rec.ID]; exists {
		a.duplicates[rec.ID] = struct{}{}
		return false
	}
	a.byID[rec.ID] = normalizeRecord(rec)
	return true
}

// Records returns the kept records in ascending id order.
func (a *Assembler) Records() []models.QuestionRecord {
	records := make([]models.QuestionRecord, 0, len(a.byID))
	for _, rec := range a.byID {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID < records[j].ID
	})
	return records
}

func (a *Assembler) Summary() models.Summary {
	s := models.Summary{
		Total:            len(a.byID),
		ExpectedRangeMin: a.minID,
		ExpectedRangeMax: a.maxID,
		DuplicateIDs:     utils.SortedIDs(a.duplicates),
	}

	withoutChoices := map[int]struct{}{}
	withoutCorrect := map[int]struct{}{}
	mismatched := map[int]struct{}{}

	for id, rec := range a.byID {
		if s.MinID == 0 || id < s.MinID {
			s.MinID = id
		}
		if id > s.MaxID {
			s.MaxID = id
		}

		switch rec.Type {
		case models.AnswerMultiple:
			s.Multiple++
			if len(rec.Correct) > 0 && len(rec.Correct) < 2 {
				mismatched[id] = struct{}{}
			}
		default:
			s.Single++
			if len(rec.Correct) > 1 {
				mismatched[id] = struct{}{}
			}
		}

		if rec.HasImage() {
			s.WithImage++
		}
		if rec.Explanation != "" {
			s.WithExplanation++
		}
		if len(rec.Choices) == 0 {
			withoutChoices[id] = struct{}{}
		}
		if len(rec.Correct) == 0 {
			withoutCorrect[id] = struct{}{}
		}
	}

	missing := map[int]struct{}{}
	for id := a.minID; id <= a.maxID; id++ {
		if _, ok := a.byID[id]; !ok {
			missing[id] = struct{}{}
		}
	}

	s.MissingIDs = utils.SortedIDs(missing)
	s.WithoutChoices = utils.SortedIDs(withoutChoices)
	s.WithoutCorrect = utils.SortedIDs(withoutCorrect)
	s.TypeMismatchIDs = utils.SortedIDs(mismatched)
	return s
}

// normalizeRecord drops correct indices outside the choice list, sorts the
// rest and makes sure empty collections serialize as [] rather than null.
func normalizeRecord(rec models.QuestionRecord) models.QuestionRecord {
	if rec.Choices == nil {
		rec.Choices = []string{}
	}
	if rec.Type == "" {
		rec.Type = models.AnswerSingle
	}

	seen := map[int]struct{}{}
	correct := make([]int, 0, len(rec.Correct))
	for _, idx := range rec.Correct {
		if idx < 0 || idx >= len(rec.Choices) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		correct = append(correct, idx)
	}
	sort.Ints(correct)
	rec.Correct = correct
	return rec
}
