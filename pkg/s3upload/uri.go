// Package s3upload publishes finished report files to S3.
package s3upload

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrInvalidURI is returned for malformed s3:// destinations.
var ErrInvalidURI = errors.New("invalid S3 URI")

// ParseS3URI parses an S3 URI (s3://bucket/key) into bucket and key components.
func ParseS3URI(uri string) (bucket, key string, err error) {
	if !strings.HasPrefix(uri, "s3://") {
		return "", "", fmt.Errorf("%w: %q must start with s3://", ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("%w: %q is missing a bucket name", ErrInvalidURI, uri)
	}

	bucket = parts[0]
	if len(parts) == 2 {
		key = parts[1]
	}
	return bucket, key, nil
}

// Destination is a bucket plus key prefix that report files are placed under.
type Destination struct {
	Bucket string
	Prefix string
}

// ParseDestination parses s3://bucket[/prefix]. Leading and trailing slashes
// of the prefix are dropped.
func ParseDestination(uri string) (Destination, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return Destination{}, err
	}
	return Destination{Bucket: bucket, Prefix: strings.Trim(key, "/")}, nil
}

// Key returns the object key for a file name under the destination prefix.
func (d Destination) Key(name string) string {
	if d.Prefix == "" {
		return name
	}
	return path.Join(d.Prefix, name)
}

func (d Destination) String() string {
	if d.Prefix == "" {
		return "s3://" + d.Bucket
	}
	return "s3://" + d.Bucket + "/" + d.Prefix
}

// Object pairs a local file with its destination key.
type Object struct {
	LocalPath string
	Key       string
}

// Plan maps local files to keys under dest by base name. Two files with the
// same base name would overwrite each other, so that is an error.
func Plan(dest Destination, files []string) ([]Object, error) {
	seen := make(map[string]string, len(files))
	objs := make([]Object, 0, len(files))
	for _, f := range files {
		name := filepath.Base(f)
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("files %s and %s map to the same key %s", prev, f, dest.Key(name))
		}
		seen[name] = f
		objs = append(objs, Object{LocalPath: f, Key: dest.Key(name)})
	}
	return objs, nil
}

// contentType picks a Content-Type from the file suffix.
func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".zst":
		return "application/zstd"
	case ".gz":
		return "application/gzip"
	case ".parquet":
		return "application/vnd.apache.parquet"
	default:
		return "application/octet-stream"
	}
}
