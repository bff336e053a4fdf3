package render

import (
	"context"
	"fmt"
)

// Renderer loads a URL in a browsing engine and returns the fully rendered
// document markup once the page has settled.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Error is a navigation/timeout/engine failure during page load. The
// pipeline recovers from it locally by taking the fallback path; it is
// never surfaced to the caller as a hard error.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
