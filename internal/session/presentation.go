package session

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/example/mcqdrill/pkg/models"
)

const labels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// LabeledOption is an option as shown to the learner
type LabeledOption struct {
	Label string
	Text  string
}

// Layout is the display order of a question's options
type Layout struct {
	Question models.Question
	Options  []LabeledOption
}

// NewLayout shuffles the options for display and labels them A, B, C...
// With a nil rng the stored order is kept.
func NewLayout(q models.Question, rng *rand.Rand) Layout {
	texts := q.DisplayOptions()
	if rng != nil {
		rng.Shuffle(len(texts), func(i, j int) {
			texts[i], texts[j] = texts[j], texts[i]
		})
	}

	l := Layout{Question: q, Options: make([]LabeledOption, len(texts))}
	for i, text := range texts {
		label := strconv.Itoa(i + 1)
		if i < len(labels) {
			label = string(labels[i])
		}
		l.Options[i] = LabeledOption{Label: label, Text: text}
	}
	return l
}

// Resolve maps learner input to option text. The input may be a label
// ("b", "B.", "B)") or the option text itself.
func (l Layout) Resolve(input string) (string, error) {
	in := strings.TrimSpace(input)
	label := strings.TrimRight(in, ".)")
	for _, opt := range l.Options {
		if strings.EqualFold(label, opt.Label) {
			return opt.Text, nil
		}
	}
	want := l.Question.Canonical(in)
	if want != "" {
		for _, opt := range l.Options {
			if strings.EqualFold(models.NormalizeOption(opt.Text), want) {
				return opt.Text, nil
			}
		}
	}
	return "", ErrInvalidAnswer
}

// ResolveLabel is a shorthand for layout.Resolve
func ResolveLabel(layout Layout, input string) (string, error) {
	return layout.Resolve(input)
}
