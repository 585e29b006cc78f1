package spaced_repetition

import "math"

// NextIntervalDays returns the number of days until the next review.
//
// New questions get a fixed bootstrap interval. For known questions a correct
// answer yields 2^rank days and an incorrect one 1/rank days. The result is
// floored and never below one day.
func NextIntervalDays(rank float64, correct, isNew bool) int {
	if isNew {
		if correct {
			return NewCorrectInterval
		}
		return NewIncorrectInterval
	}

	rank = ClampRank(rank)
	var days float64
	if correct {
		days = math.Pow(2, rank)
	} else {
		days = 1 / rank
	}
	return max(1, int(math.Floor(days)))
}

// IntervalDays applies the policy's interval convention
func (p Policy) IntervalDays(rank float64, correct, isNew bool) int {
	if p.InvertIntervalRank && !isNew {
		rank = MinRank + MaxRank - ClampRank(rank)
	}
	return NextIntervalDays(rank, correct, isNew)
}
