package service

import (
	"errors"
	"strings"
	"sync"
)

// ErrQuotaExhausted is returned by the primary strategy when the monthly
// token budget is spent. The tiered generator treats it like any other
// primary failure and falls back.
var ErrQuotaExhausted = errors.New("monthly token quota exhausted")

// QuotaTracker approximates GigaChat token usage against a monthly budget.
// Tokens are approximated as whitespace-delimited word counts of prompt and
// completion; this matches the observable accounting the service has always
// used, it is not a real tokenizer. The counter only grows, a reset is a
// process restart.
type QuotaTracker struct {
	mu    sync.Mutex
	used  int
	limit int
}

func NewQuotaTracker(monthlyLimit int) *QuotaTracker {
	return &QuotaTracker{limit: monthlyLimit}
}

// Allow reports whether the primary model may be called.
func (t *QuotaTracker) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.used < t.limit
}

// Charge records a successful primary call. It returns the number of tokens
// charged.
func (t *QuotaTracker) Charge(prompt, completion string) int {
	tokens := wordCount(prompt) + wordCount(completion)
	t.mu.Lock()
	t.used += tokens
	t.mu.Unlock()
	return tokens
}

func (t *QuotaTracker) Used() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.used
}

func (t *QuotaTracker) Limit() int {
	return t.limit
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
