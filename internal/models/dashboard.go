package models

import "time"

// DashboardSummary aggregates the home-screen counters for a student.
type DashboardSummary struct {
	StudentName   string    `json:"student_name"`
	Greeting      string    `json:"greeting"`
	SubjectCount  int       `json:"subject_count"`
	OpenTaskCount int       `json:"open_task_count"`
	SavedTipCount int       `json:"saved_tip_count"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// SystemMetrics is a lightweight snapshot of runtime instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
