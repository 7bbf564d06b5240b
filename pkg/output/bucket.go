package output

import (
	"context"

	"github.com/pkg/errors"
	"gocloud.dev/blob"

	// Bucket schemes available to WriteToBucket
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

// WriteToBucket opens the bucket at bucketURL (file://, mem:// or gs://) and
// stores fb under key
func WriteToBucket(ctx context.Context, bucketURL, key string, fb *renderer.Framebuffer, format string) error {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return errors.Wrapf(err, "opening bucket %s", bucketURL)
	}
	defer bucket.Close()

	if err := WriteBucket(ctx, bucket, key, fb, format); err != nil {
		return errors.Wrapf(err, "bucket %s", bucketURL)
	}
	return nil
}

// WriteBucket stores fb under key in an already open bucket
func WriteBucket(ctx context.Context, bucket *blob.Bucket, key string, fb *renderer.Framebuffer, format string) error {
	if key == "" || key == "-" {
		return errors.New("a bucket output needs an object key")
	}

	// Cancelling the writer context before Close discards a partial object
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fd, err := bucket.NewWriter(wctx, key, &blob.WriterOptions{ContentType: ContentType(format)})
	if err != nil {
		return errors.Wrapf(err, "creating %s", key)
	}
	if err := Write(fd, fb, format); err != nil {
		cancel()
		fd.Close()
		return errors.Wrapf(err, "writing %s", key)
	}
	return errors.Wrapf(fd.Close(), "closing %s", key)
}
