package service

import "time"

// Watermark tracks the highest remote modification time seen during a run.
type Watermark struct {
	previous time.Time
	max      time.Time
	observed bool
}

func NewWatermark(previous time.Time) *Watermark {
	return &Watermark{previous: previous}
}

func (w *Watermark) Observe(t time.Time) {
	if t.IsZero() {
		return
	}

	if !w.observed || t.After(w.max) {
		w.max = t
	}

	w.observed = true
}

func (w *Watermark) Observed() bool {
	return w.observed
}

// Value is the watermark to persist: the highest observed time, or runStart when
// nothing was observable, never below the previous watermark.
func (w *Watermark) Value(runStart time.Time) time.Time {
	next := runStart
	if w.observed {
		next = w.max
	}

	if next.Before(w.previous) {
		return w.previous
	}

	return next.UTC()
}
