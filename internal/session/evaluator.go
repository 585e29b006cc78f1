package session

import (
	"fmt"

	"github.com/example/mcqdrill/pkg/models"
)

// Evaluate reports whether selected is the question's correct option.
// Both sides are normalized the same way before comparison; a display label
// is only ignored when the question's options are labeled in order.
func Evaluate(q models.Question, selected string) (bool, error) {
	if err := q.Playable(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedQuestion, err)
	}
	if !q.HasOption(selected) {
		return false, ErrInvalidAnswer
	}
	return q.SameOption(selected, q.CorrectOption), nil
}
