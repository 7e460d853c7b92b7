package server

import (
	"net/http"
	"regexp"
)

// DefaultAPIVersion is served when the client does not ask for one.
const DefaultAPIVersion = "v1"

// HeaderAPIVersion carries the negotiated API version on responses.
const HeaderAPIVersion = "X-API-Version"

var (
	supportedAPIVersions = []string{"v1"}

	vendorMediaType = regexp.MustCompile(`application/vnd\.nvidia\.dqgate\.(v[0-9]+)\+(json|yaml)`)
)

// negotiateAPIVersion reads the version from an Accept header of the form
// application/vnd.nvidia.dqgate.v1+json. Unsupported or malformed versions
// fall back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	m := vendorMediaType.FindStringSubmatch(r.Header.Get("Accept"))
	if m == nil || !isValidAPIVersion(m[1]) {
		return DefaultAPIVersion
	}
	return m[1]
}

func isValidAPIVersion(v string) bool {
	for _, s := range supportedAPIVersions {
		if v == s {
			return true
		}
	}
	return false
}
