package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrAggregationFailed covers both session acquisition and query faults;
	// callers get this one kind or a fully formed summary, nothing partial.
	ErrAggregationFailed = errors.New("aggregation failed")
)
