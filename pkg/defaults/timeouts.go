package defaults

import "time"

// Source timeouts.
const (
	// PostgresConnectTimeout bounds connecting to PostgreSQL and running the
	// dataset query when the caller set no deadline.
	PostgresConnectTimeout = 30 * time.Second
)

// Handler timeouts.
const (
	// ValidateHandlerTimeout bounds a single POST /v1/validate request.
	ValidateHandlerTimeout = 2 * time.Minute
)

// Server timeouts.
const (
	ServerReadTimeout     = 10 * time.Second
	ServerWriteTimeout    = ValidateHandlerTimeout + 30*time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Sink timeouts.
const (
	// K8sOperationTimeout bounds ConfigMap reads and writes.
	K8sOperationTimeout = 30 * time.Second

	// RedisWriteTimeout bounds a report write to Redis.
	RedisWriteTimeout = 10 * time.Second
)

// Server limits.
const (
	// ServerMaxBodyBytes caps the size of a rules document.
	ServerMaxBodyBytes = 1 << 20
)
