package tokens

// CounterFunc counts tokens exactly for a given text. Implementations wrap a
// real sub-word tokenizer.
type CounterFunc func(text string) int

// Estimator approximates the token cost of a block of text against a model's
// context budget. When no exact counter is configured it falls back to the
// 4-characters-per-token heuristic, which is monotonic non-decreasing in
// input length.
type Estimator struct {
	exact CounterFunc
}

// NewEstimator returns an estimator using the given exact counter. A nil
// counter is valid and selects the character heuristic; absence of a real
// tokenizer is a configuration fact, not an error.
func NewEstimator(exact CounterFunc) *Estimator {
	return &Estimator{exact: exact}
}

// Estimate returns the approximate token count for text. Never fails.
func (e *Estimator) Estimate(text string) int {
	if e != nil && e.exact != nil {
		if n := e.exact(text); n >= 0 {
			return n
		}
		return 0
	}
	return len(text) / 4
}
