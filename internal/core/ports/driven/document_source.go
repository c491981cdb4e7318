package driven

import "context"

// DocumentSource reads raw program text from the static document host.
// A non-success HTTP status is reported as *domain.UpstreamError so callers
// can tell it apart from transport failures.
type DocumentSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}
