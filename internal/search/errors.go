package search

import "errors"

// ErrCatalogUnavailable is returned when the retrieval backend fails or the
// request deadline expires mid-pipeline. It is a hard error for the current
// request, never silently turned into an empty result set.
var ErrCatalogUnavailable = errors.New("catalog unavailable")
