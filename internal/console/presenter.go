package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/example/mcqdrill/internal/session"
)

type line struct {
	text string
	err  error
}

// Presenter runs a session on a terminal
type Presenter struct {
	in   io.Reader
	out  io.Writer
	now  func() time.Time
	once sync.Once
	rows chan line

	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{} // closed when the reader goroutine exits
}

// NewPresenter creates a presenter reading answers from in and writing to out
func NewPresenter(in io.Reader, out io.Writer) *Presenter {
	return &Presenter{in: in, out: out, now: time.Now, done: make(chan struct{})}
}

// Close stops the background reader. A reader blocked on input exits once
// the next line arrives or the input ends.
func (p *Presenter) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	return nil
}

// start reads input lines in the background so Ask can honour cancellation
func (p *Presenter) start() {
	p.once.Do(func() {
		p.rows = make(chan line)
		p.stopped = make(chan struct{})
		go func() {
			defer close(p.stopped)
			defer close(p.rows)
			scanner := bufio.NewScanner(p.in)
			for scanner.Scan() {
				if !p.send(line{text: scanner.Text()}) {
					return
				}
			}
			if err := scanner.Err(); err != nil {
				p.send(line{err: err})
			}
		}()
	})
}

func (p *Presenter) send(l line) bool {
	select {
	case p.rows <- l:
		return true
	case <-p.done:
		return false
	}
}

// Ask prints the question and waits for a label. "q" or end of input quits.
func (p *Presenter) Ask(ctx context.Context, prompt session.Prompt) (session.Answer, error) {
	select {
	case <-p.done:
		return session.Answer{}, session.ErrQuit
	default:
	}
	p.start()

	q := prompt.Layout.Question
	fmt.Fprintln(p.out, "\n========================================")
	fmt.Fprintf(p.out, "Question %d/%d [%s", prompt.Index, prompt.Total, q.Subject)
	if q.SubSubject != "" {
		fmt.Fprintf(p.out, " / %s", q.SubSubject)
	}
	fmt.Fprintln(p.out, "]")
	fmt.Fprintln(p.out, q.Text)
	fmt.Fprintln(p.out)
	for _, opt := range prompt.Layout.Options {
		fmt.Fprintf(p.out, "  %s. %s\n", opt.Label, opt.Text)
	}
	fmt.Fprint(p.out, "\nYour answer (q to quit): ")

	started := p.now()
	select {
	case <-ctx.Done():
		return session.Answer{}, ctx.Err()
	case <-p.done:
		return session.Answer{}, session.ErrQuit
	case l, ok := <-p.rows:
		if !ok {
			return session.Answer{}, session.ErrQuit
		}
		if l.err != nil {
			return session.Answer{}, fmt.Errorf("failed to read answer: %w", l.err)
		}
		in := strings.TrimSpace(l.text)
		if strings.EqualFold(in, "q") || strings.EqualFold(in, "quit") {
			return session.Answer{}, session.ErrQuit
		}
		return session.Answer{Input: in, Elapsed: p.now().Sub(started)}, nil
	}
}

// Reject asks the learner to pick one of the shown labels
func (p *Presenter) Reject(prompt session.Prompt, input string) {
	labels := make([]string, len(prompt.Layout.Options))
	for i, opt := range prompt.Layout.Options {
		labels[i] = opt.Label
	}
	fmt.Fprintf(p.out, "%q is not an option, choose one of %s.\n", input, strings.Join(labels, ", "))
}

// Feedback shows whether the answer was right and when the question returns
func (p *Presenter) Feedback(_ session.Prompt, fb session.Feedback) {
	o := fb.Outcome
	if o.Correct {
		fmt.Fprintln(p.out, "✅ Correct!")
	} else {
		fmt.Fprintf(p.out, "❌ Incorrect. The correct answer is: %s\n", o.CorrectOption)
	}
	if fb.Reasoning != "" {
		fmt.Fprintf(p.out, "Reasoning: %s\n", fb.Reasoning)
	}
	fmt.Fprintf(p.out, "Answered in %.1fs. Next review in %d %s.\n",
		o.ResponseTime.Seconds(), o.IntervalDays, plural(o.IntervalDays, "day", "days"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
