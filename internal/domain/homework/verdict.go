// internal/domain/homework/verdict.go
package homework

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// VerdictUnknown is used for a missing or unrecognized status code.
const VerdictUnknown = "Work not found or status unknown."

// Telegram rejects texts over 4096 characters, so the free-text parts of a
// record are capped well below that.
const (
	maxNameRunes    = 256
	maxCommentRunes = 3500
	ellipsis        = "…"
)

var verdicts = map[Status]string{
	StatusReviewing: "Work has been taken for review.",
	StatusRejected:  "Unfortunately, errors were found in the work.",
	StatusApproved:  "The reviewer liked everything, work accepted!",
}

// Verdict maps a status code to its human-readable sentence.
func Verdict(s Status) string {
	if v, ok := verdicts[s]; ok {
		return v
	}
	return VerdictUnknown
}

// Translate renders the notification text for a record:
//
//	{name}
//
//	{verdict}
//
//	"{reviewer_comment}"
//
// The comment block is left out when the reviewer wrote nothing. Overlong
// names and comments are cut and end with an ellipsis.
func Translate(r Record) string {
	msg := fmt.Sprintf("%s\n\n%s", truncate(r.Name(), maxNameRunes), Verdict(r.StatusCode()))
	if r.ReviewerComment != nil && strings.TrimSpace(*r.ReviewerComment) != "" {
		msg += fmt.Sprintf("\n\n\"%s\"", truncate(*r.ReviewerComment, maxCommentRunes))
	}
	return msg
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + ellipsis
}
