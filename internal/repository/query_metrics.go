package repository

import "time"

// QueryObserver receives the elapsed time of each database query, keyed
// by a short "table.operation" label.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// trackQuery times a query and reports it when the returned func runs.
// A nil observer turns it into a no-op.
//
//	defer trackQuery(r.metrics, "grades.list")()
func trackQuery(observer QueryObserver, label string) func() {
	if observer == nil {
		return func() {}
	}
	started := time.Now()
	return func() {
		observer.ObserveDBQuery(label, time.Since(started))
	}
}
