package results

import (
	"strconv"
	"time"

	"github.com/bugaev/quizdeck/internal/session"
)

// Result is a durable record of one finalized exam-mode attempt. It keeps
// the test id as a weak reference only: a result stays valid and displayable
// after its definition is deleted.
type Result struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	TestID     string    `json:"testId"`
	TestTitle  string    `json:"testTitle"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	TimeSpent  int       `json:"timeSpent"` // seconds
	Date       time.Time `json:"date"`
	Answers    [][]int   `json:"answers"`
}

// FromSession snapshots a finalized attempt into a Result. The caller is
// responsible for only recording exam-mode attempts; tutorial runs are
// formative and never persisted.
func FromSession(s *session.State, userID, userName string) Result {
	answers := make([][]int, len(s.Answers))
	copy(answers, s.Answers)
	return Result{
		ID:         newID(s.EndTime),
		UserID:     userID,
		UserName:   userName,
		TestID:     s.Test.ID,
		TestTitle:  s.Test.Title,
		Score:      s.Score,
		Total:      len(s.Test.Questions),
		Percentage: s.Percentage(),
		TimeSpent:  int(s.TimeSpent().Seconds()),
		Date:       s.EndTime,
		Answers:    answers,
	}
}

// newID derives a unique id from the creation timestamp.
func newID(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}
