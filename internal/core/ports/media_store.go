package ports

import (
	"context"
	"io"
)

// MediaUpload is the durable reference returned by the media host for one
// stored object.
type MediaUpload struct {
	URL     string
	MediaID string
}

// MediaStore abstracts the remote media host. Implementations must be safe
// for concurrent use; every call is a single remote round trip with no local
// side effects.
type MediaStore interface {
	Upload(ctx context.Context, content io.Reader) (*MediaUpload, error)
	// UploadFromURL delegates the fetch to the media host; no bytes are
	// buffered locally.
	UploadFromURL(ctx context.Context, remoteURL string) (*MediaUpload, error)
	Delete(ctx context.Context, mediaID string) error
}

// OrphanQueue receives media ids whose local record could not be written
// after a successful remote upload, for asynchronous cleanup.
type OrphanQueue interface {
	Enqueue(mediaID string)
}
