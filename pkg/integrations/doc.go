// Package integrations provides the shared HTTP client used by backend
// data collaborators.
//
// [Client] bundles the concerns every collaborator needs:
//
//   - GET + JSON decoding with default headers
//   - retry of transient failures via [httputil.RetryWithBackoff]
//   - read-through caching on a [cache.Cache]
//   - HTTP and cache events reported to [observability] hooks
//
// Concrete collaborators live in subpackages; see crimestats for the yearly
// crime statistics backend.
//
// [httputil.RetryWithBackoff]: github.com/realassist/crimereport/pkg/httputil.RetryWithBackoff
// [cache.Cache]: github.com/realassist/crimereport/pkg/cache.Cache
// [observability]: github.com/realassist/crimereport/pkg/observability
package integrations
