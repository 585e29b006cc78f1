package console

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/example/mcqdrill/internal/importer"
	"github.com/example/mcqdrill/internal/session"
	"github.com/example/mcqdrill/pkg/models"
)

const rule = "=================================================="

func pct(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// PrintReport writes the end-of-session report
func PrintReport(w io.Writer, r *session.Report) {
	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "SESSION REPORT")
	fmt.Fprintln(w, rule)
	if r.Total == 0 {
		fmt.Fprintln(w, "No questions answered.")
		return
	}

	fmt.Fprintf(w, "Questions: %d  Correct: %d  Accuracy: %s\n", r.Total, r.Correct, pct(r.Accuracy))
	fmt.Fprintf(w, "Average response time: %.1fs\n", r.AverageResponseTime.Seconds())
	if r.Interrupted {
		fmt.Fprintln(w, "Session ended early; answered questions were saved.")
	}
	if r.Skipped > 0 {
		fmt.Fprintf(w, "Skipped %d malformed question(s).\n", r.Skipped)
	}

	fmt.Fprintln(w, "\nBY SUBJECT:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Subject\tQuestions\tAccuracy\tAvg time")
	for _, s := range r.Subjects {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.1fs\n", s.Subject, s.Total, pct(s.Accuracy), s.AverageResponseTime.Seconds())
	}
	tw.Flush()

	if strong := r.Strong(); len(strong) > 0 {
		fmt.Fprintln(w, "\nStrong subjects:")
		for _, s := range strong {
			fmt.Fprintf(w, "  %s (%s)\n", s.Subject, pct(s.Accuracy))
		}
	}
	if weak := r.NeedsImprovement(); len(weak) > 0 {
		fmt.Fprintln(w, "\nNeeds improvement:")
		for _, s := range weak {
			fmt.Fprintf(w, "  %s (%s)\n", s.Subject, pct(s.Accuracy))
		}
	}

	if len(r.Missed) > 0 {
		fmt.Fprintln(w, "\nReview these questions:")
		for _, o := range r.Missed {
			fmt.Fprintf(w, "  - %s\n    Answer: %s\n", o.QuestionText, o.CorrectOption)
		}
	}
}

// PrintSessionDates lists past study days
func PrintSessionDates(w io.Writer, days []time.Time) {
	if len(days) == 0 {
		fmt.Fprintln(w, "No previous sessions found.")
		return
	}
	fmt.Fprintln(w, "Previous sessions:")
	for i, d := range days {
		fmt.Fprintf(w, "%2d. %s\n", i+1, d.Format("2006-01-02"))
	}
}

// PrintHistory writes the report for one past study day
func PrintHistory(w io.Writer, h session.History) {
	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintf(w, "SESSION REPORT FOR %s\n", h.Day.Format("2006-01-02"))
	fmt.Fprintln(w, rule)
	if h.Total == 0 {
		fmt.Fprintln(w, "No questions reviewed on this day.")
		return
	}

	fmt.Fprintln(w, "\nOVERALL PERFORMANCE:")
	fmt.Fprintf(w, "Total Questions: %d\n", h.Total)
	fmt.Fprintf(w, "Correct Answers: %d\n", h.Correct)
	fmt.Fprintf(w, "Accuracy: %s\n", pct(h.Accuracy))
	fmt.Fprintf(w, "Average Response Time: %.1f seconds\n", h.AverageResponseTime)

	fmt.Fprintln(w, "\nPERFORMANCE BY DIFFICULTY:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Difficulty\tCount\tCorrect\tAccuracy")
	for _, b := range []struct {
		name string
		b    session.Bucket
	}{{"EASY", h.Easy}, {"MEDIUM", h.Medium}, {"HARD", h.Hard}} {
		if b.b.Count > 0 {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", b.name, b.b.Count, b.b.Correct, pct(b.b.Accuracy()))
		}
	}
	tw.Flush()

	fmt.Fprintln(w, "\nPERFORMANCE BY SUBJECT:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Subject\tQuestions\tSession\tHistorical\tAvg rank\tAvg time\tTimes seen")
	for _, s := range h.Subjects {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%.2f\t%.1fs\t%d\n",
			s.Subject, s.Questions, pct(s.SessionAccuracy), pct(s.HistoricalAccuracy),
			s.AverageRank, s.AverageResponseTime, s.Attempts)
	}
	tw.Flush()

	fmt.Fprintln(w, "\nAREAS FOR IMPROVEMENT:")
	struggling := h.Struggling()
	if len(struggling) == 0 {
		fmt.Fprintf(w, "All subjects are performing above the %s accuracy target.\n", pct(session.TargetAccuracy))
		return
	}
	for _, s := range struggling {
		fmt.Fprintf(w, "  %s: session %s, historical %s, average rank %.2f\n",
			s.Subject, pct(s.SessionAccuracy), pct(s.HistoricalAccuracy), s.AverageRank)
	}
}

// PrintDue writes the due review summary
func PrintDue(w io.Writer, summary *models.DueSummary) {
	if summary.Total == 0 {
		fmt.Fprintln(w, "✅ No questions due for review.")
		return
	}
	fmt.Fprintf(w, "🔥 %d questions due for review:\n\n", summary.Total)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Subject\tDue")
	fmt.Fprintln(tw, "-------\t---")
	for _, s := range summary.BySubject {
		fmt.Fprintf(tw, "%s\t%d\n", s.Subject, s.Count)
	}
	tw.Flush()
}

// PrintSubjects writes the question count per subject
func PrintSubjects(w io.Writer, subjects []models.SubjectCount) {
	if len(subjects) == 0 {
		fmt.Fprintln(w, "No questions imported yet.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Subject\tQuestions")
	fmt.Fprintln(tw, "-------\t---------")
	for _, s := range subjects {
		fmt.Fprintf(tw, "%s\t%d\n", s.Subject, s.Count)
	}
	tw.Flush()
}

// PrintImport writes the outcome of an import
func PrintImport(w io.Writer, r *importer.Result) {
	fmt.Fprintf(w, "Processed: %d\n", r.TotalProcessed)
	fmt.Fprintf(w, "Created: %d\n", r.Created)
	fmt.Fprintf(w, "Duplicates skipped: %d\n", r.Duplicates)
	fmt.Fprintf(w, "Incomplete skipped: %d\n", r.Incomplete)
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "Errors (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
}
