package models

const (
	// DefaultExportRangeMonthsBefore and After bound the occupancy report window
	// around today when no explicit range is requested.
	DefaultExportRangeMonthsBefore = 1
	DefaultExportRangeMonthsAfter  = 2

	// ExportQueueSize is the in-memory export queue capacity.
	ExportQueueSize = 128

	// RoomLockTTLSeconds is how long a per-room lock may be held before it expires.
	RoomLockTTLSeconds = 10

	// RateLimitRequests is the default number of API requests per window.
	RateLimitRequests = 20

	// RateLimitWindow is the default rate limit window in seconds.
	RateLimitWindow = 60
)
