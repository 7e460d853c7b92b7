package serializer

// URI scheme constants for output destinations
const (
	// ConfigMapURIScheme is the URI scheme for Kubernetes ConfigMap destinations.
	// Format: cm://namespace/configmap-name
	ConfigMapURIScheme = "cm://"

	// RedisURIScheme is the URI scheme for Redis destinations.
	// Format: redis://[user:password@]host:port/db?key=name[&ttl=24h]
	RedisURIScheme = "redis://"

	// RedisTLSURIScheme is RedisURIScheme over TLS.
	RedisTLSURIScheme = "rediss://"

	// StdoutURI is the special URI indicating output should be written to stdout.
	StdoutURI = "-"
)
