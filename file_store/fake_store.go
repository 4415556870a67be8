package file_store

import (
	"context"
	"fmt"
	"io"
)

// FakeBlobStore records uploads and deletions for tests.
type FakeBlobStore struct {
	URLPrefix string
	Uploaded  []string
	Deleted   []string

	// FailUpload / FailDelete make the next calls return this error.
	FailUpload error
	FailDelete error

	seq int
}

var _ BlobStore = (*FakeBlobStore)(nil)

func (f *FakeBlobStore) Upload(ctx context.Context, body io.Reader, fileName string) (string, error) {
	if f.FailUpload != nil {
		return "", f.FailUpload
	}
	f.seq++
	url := fmt.Sprintf("%s/%d-%s", f.URLPrefix, f.seq, fileName)
	f.Uploaded = append(f.Uploaded, url)
	return url, nil
}

func (f *FakeBlobStore) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	if f.FailDelete != nil {
		return f.FailDelete
	}
	f.Deleted = append(f.Deleted, url)
	return nil
}
