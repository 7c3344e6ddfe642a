// Package capability builds backend-relative paths for capability-scoped
// resources. A capability key is an opaque, caller-supplied string; it is
// never interpreted here, only embedded safely into a path segment.
package capability

import "net/url"

// OrchestrationResource is the sub-resource name for a capability's
// orchestration listing.
const OrchestrationResource = "orchestration"

// BackendPath returns the backend-relative path for a capability-scoped
// sub-resource: /r/{key}/{resource}. The key is percent-encoded so that
// path-significant characters (/, ?, # and friends) cannot change the target
// resource or introduce extra path levels. Callers are responsible for
// rejecting empty keys before calling this.
func BackendPath(key, resource string) string {
	return "/r/" + url.PathEscape(key) + "/" + resource
}
