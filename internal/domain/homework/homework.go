// internal/domain/homework/homework.go
package homework

// Status is the review state code reported by the status API.
type Status string

const (
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
	StatusApproved  Status = "approved"
)

// Known reports whether s is one of the codes the translation table covers.
func (s Status) Known() bool {
	switch s {
	case StatusReviewing, StatusRejected, StatusApproved:
		return true
	default:
		return false
	}
}

// placeholderName is rendered when the record carries no name at all.
const placeholderName = "Homework"

// Record is one submission's review status as returned by the status API.
// Fields absent from the payload stay nil.
type Record struct {
	HomeworkName    *string `json:"homework_name"`
	LessonName      *string `json:"lesson_name"`
	Status          *Status `json:"status"`
	ReviewerComment *string `json:"reviewer_comment"`
}

// Name returns the display name of the homework, falling back to the lesson
// name and then to a fixed placeholder.
func (r Record) Name() string {
	if r.HomeworkName != nil && *r.HomeworkName != "" {
		return *r.HomeworkName
	}
	if r.LessonName != nil && *r.LessonName != "" {
		return *r.LessonName
	}
	return placeholderName
}

// StatusCode returns the raw status code, or "" when the field is missing.
func (r Record) StatusCode() Status {
	if r.Status == nil {
		return ""
	}
	return *r.Status
}

// Snapshot is a single decoded response of the status API.
type Snapshot struct {
	Homeworks   []Record `json:"homeworks"`
	CurrentDate *int64   `json:"current_date"`
}

// Latest returns the first (most recent) record of the snapshot.
func (s *Snapshot) Latest() (Record, bool) {
	if s == nil || len(s.Homeworks) == 0 {
		return Record{}, false
	}
	return s.Homeworks[0], true
}

// NextCursor returns the server supplied timestamp to poll from next time.
// It is false when the response did not carry one.
func (s *Snapshot) NextCursor() (int64, bool) {
	if s == nil || s.CurrentDate == nil {
		return 0, false
	}
	return *s.CurrentDate, true
}
