package models

type AnswerType string

const (
	AnswerSingle   AnswerType = "single"
	AnswerMultiple AnswerType = "multiple"
)

// QuestionRecord is one extracted exam question. Correct holds zero-based
// indices into Choices.
type QuestionRecord struct {
	ID          int        `json:"id"`
	Question    string     `json:"question"`
	Image       *string    `json:"image"`
	Choices     []string   `json:"choices"`
	Type        AnswerType `json:"type"`
	Correct     []int      `json:"correct"`
	Explanation string     `json:"explanation"`
}

func (q QuestionRecord) HasImage() bool {
	return q.Image != nil && *q.Image != ""
}

type QuestionSet struct {
	Questions []QuestionRecord `json:"questions"`
}

type Summary struct {
	Total            int
	MinID            int
	MaxID            int
	Single           int
	Multiple         int
	WithImage        int
	WithExplanation  int
	MissingIDs       []int
	DuplicateIDs     []int
	WithoutChoices   []int
	WithoutCorrect   []int
	TypeMismatchIDs  []int
	ExpectedRangeMin int
	ExpectedRangeMax int
}
