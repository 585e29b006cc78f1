// Package notify delivers due-review reminders.
package notify

import (
	"fmt"
	"strings"

	"github.com/example/mcqdrill/pkg/models"
)

// FormatReminder renders the reminder text for a due summary
func FormatReminder(summary models.DueSummary) string {
	noun := "questions"
	if summary.Total == 1 {
		noun = "question"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d %s due for review.", summary.Total, noun)
	if len(summary.BySubject) > 0 {
		b.WriteString("\n")
		for _, s := range summary.BySubject {
			fmt.Fprintf(&b, "\n- %s: %d", s.Subject, s.Count)
		}
	}
	b.WriteString("\n\nRun `mcqdrill study` to start a session.")
	return b.String()
}
