package constants

import (
	"time"
)

// Redis key layout for the seating service
// Pattern: stepperslife:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour   // event records
	TTL_DYNAMIC_SHORT      = 5 * time.Minute // seating charts, invalidated on every write
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "stepperslife"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

const (
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_MEDIUM
)

// ================== SEATING CHARTS MODULE ==================

const (
	CACHE_KEY_CHART_DETAIL   = CACHE_PREFIX + ":charts:detail:uuid:"   // + chart-id
	CACHE_KEY_CHART_BY_EVENT = CACHE_PREFIX + ":charts:by_event:uuid:" // + event-id
)

const (
	TTL_CHART_DETAIL = TTL_DYNAMIC_SHORT
)

// Chart write locks, one per chart
const (
	LOCK_KEY_CHART = CACHE_PREFIX + ":locks:chart:" // + chart-id
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_CHARTS_ALL = CACHE_PREFIX + ":charts:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildChartDetailKey(chartID string) string {
	return CACHE_KEY_CHART_DETAIL + chartID
}

func BuildChartByEventKey(eventID string) string {
	return CACHE_KEY_CHART_BY_EVENT + eventID
}

func BuildChartLockKey(chartID string) string {
	return LOCK_KEY_CHART + chartID
}
