package models

import "time"

// SystemMetrics is a point-in-time snapshot of process instrumentation.
type SystemMetrics struct {
	CacheHitRatio            float64           `json:"cacheHitRatio"`
	CacheHits                uint64            `json:"cacheHits"`
	CacheMisses              uint64            `json:"cacheMisses"`
	RequestsTotal            uint64            `json:"requestsTotal"`
	AverageRequestDurationMs float64           `json:"averageRequestDurationMs"`
	DBQueryCount             uint64            `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64           `json:"averageDbQueryDurationMs"`
	Jobs                     map[string]uint64 `json:"jobs"`
	Goroutines               int               `json:"goroutines"`
	GeneratedAt              time.Time         `json:"generatedAt"`
}
