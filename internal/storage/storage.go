package storage

import "context"

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}

// ObjectStorage captures the minimal S3-compatible operations the report job
// needs.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key, srcPath string) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
