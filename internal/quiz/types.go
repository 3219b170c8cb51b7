package quiz

import (
	"encoding/json"
	"fmt"
	"time"
)

// Mode selects the feedback/scoring behavior of a test.
type Mode string

const (
	// ModeExam defers scoring to finalization and persists a Result.
	ModeExam Mode = "exam"

	// ModeTutorial reveals correctness after every answer and is never persisted.
	ModeTutorial Mode = "tutorial"
)

// QuestionType distinguishes single-select from multi-select questions.
type QuestionType string

const (
	TypeSingle   QuestionType = "single"
	TypeMultiple QuestionType = "multiple"
)

// Provenance records where a definition came from. It determines whether the
// administrator may edit or delete it (only custom tests are mutable).
type Provenance string

const (
	ProvenanceBuiltIn Provenance = "builtin"
	ProvenanceCustom  Provenance = "custom"
	ProvenanceRemote  Provenance = "remote"
)

// Scoring holds the percentage cutoffs used to pick a verdict message.
type Scoring struct {
	Excellent    int `json:"excellent"`
	Good         int `json:"good"`
	Satisfactory int `json:"satisfactory"`
}

// DefaultScoring returns the cutoffs applied when a definition omits scoring.
func DefaultScoring() Scoring {
	return Scoring{Excellent: 80, Good: 60, Satisfactory: 40}
}

// Question is one item in a test definition.
type Question struct {
	Prompt      string
	Type        QuestionType
	Answers     []string
	Correct     Correct
	Explanation string
}

// questionWire is the JSON shape of a question. The correct field is untyped
// on the wire (a bare index or an array of indices); UnmarshalJSON converts
// it into the tagged Correct variant using the sibling type field.
type questionWire struct {
	Prompt      string          `json:"question"`
	Type        QuestionType    `json:"type,omitempty"`
	Answers     []string        `json:"answers"`
	Correct     json.RawMessage `json:"correct"`
	Explanation string          `json:"explanation,omitempty"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var w questionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	typ := w.Type
	if typ == "" {
		typ = TypeSingle
	}

	correct, err := parseCorrect(typ, w.Correct)
	if err != nil {
		return fmt.Errorf("question %q: %w", w.Prompt, err)
	}

	q.Prompt = w.Prompt
	q.Type = typ
	q.Answers = w.Answers
	q.Correct = correct
	q.Explanation = w.Explanation
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	raw, err := q.Correct.wire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(questionWire{
		Prompt:      q.Prompt,
		Type:        q.Type,
		Answers:     q.Answers,
		Correct:     raw,
		Explanation: q.Explanation,
	})
}

// Definition is the full content of a test: metadata plus ordered questions.
// Once loaded, ID is immutable and the question slice is never resized while
// a session references it.
type Definition struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  string     `json:"difficulty,omitempty"`
	Duration    string     `json:"duration,omitempty"`
	Author      string     `json:"author,omitempty"`
	Mode        Mode       `json:"mode,omitempty"`
	Questions   []Question `json:"questions"`
	Scoring     *Scoring   `json:"scoring,omitempty"`

	Provenance Provenance `json:"-"`
	LoadedAt   time.Time  `json:"loadDate,omitzero"`
}

// EffectiveScoring returns the definition's cutoffs, or the defaults.
func (d *Definition) EffectiveScoring() Scoring {
	if d.Scoring == nil {
		return DefaultScoring()
	}
	return *d.Scoring
}

// Entry is a lightweight catalog descriptor, distinct from a fully loaded
// definition: enough to list a test without fetching its content.
type Entry struct {
	ID             string     `json:"id"`
	Filename       string     `json:"filename"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Difficulty     string     `json:"difficulty,omitempty"`
	Duration       string     `json:"duration,omitempty"`
	Author         string     `json:"author,omitempty"`
	Mode           Mode       `json:"mode,omitempty"`
	TotalQuestions int        `json:"totalQuestions,omitempty"`
	Provenance     Provenance `json:"-"`
}

// EntryFor builds the catalog entry describing a loaded definition.
func EntryFor(d *Definition) Entry {
	return Entry{
		ID:             d.ID,
		Filename:       d.ID + ".json",
		Title:          d.Title,
		Description:    d.Description,
		Difficulty:     d.Difficulty,
		Duration:       d.Duration,
		Author:         d.Author,
		Mode:           d.Mode,
		TotalQuestions: len(d.Questions),
		Provenance:     d.Provenance,
	}
}
