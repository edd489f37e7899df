// Package httputil downloads remote meshes.
//
// A [Fetcher] issues GET requests with a bounded body size and retries
// transient failures through [Retry]. Server errors (5xx), 429 responses and
// transport failures are retried with exponential backoff; a 404 becomes a
// FILE_NOT_FOUND error and any other client error an INVALID_INPUT error.
//
//	f := httputil.NewFetcher()
//	data, err := f.Fetch(ctx, "https://example.com/bunny.obj")
package httputil
