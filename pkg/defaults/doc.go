// Package defaults provides centralized configuration constants for dqgate.
//
// This package defines timeout values and limits used across the codebase.
//
// # Timeout Categories
//
// Timeouts are organized by component:
//
//   - Source timeouts: For dataset connections (PostgreSQL)
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - Sink timeouts: For report writes to Kubernetes and Redis
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/dqgate/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.PostgresConnectTimeout)
//	defer cancel()
//
// Every timeout applies only when the parent context has no earlier deadline.
package defaults
