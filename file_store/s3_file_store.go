package file_store

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
	"github.com/swqa7697/MeetFood/utils"
)

// S3BlobStore stores blobs in one S3 bucket and serves them from a public
// URL prefix (usually a CloudFront distribution in front of the bucket).
type S3BlobStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

var _ BlobStore = (*S3BlobStore)(nil)

// NewS3BlobStore builds a store for one content class. Credentials and
// region come from the default AWS config chain.
func NewS3BlobStore(bucket, urlPrefix string) (*S3BlobStore, error) {
	sess, err := session.NewSession(&aws.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "create aws session")
	}

	return &S3BlobStore{
		bucket:    bucket,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		uploader:  s3manager.NewUploader(sess),
		svc:       s3.New(sess),
	}, nil
}

func (s *S3BlobStore) Upload(ctx context.Context, body io.Reader, fileName string) (string, error) {
	key := utils.TimestampedObjectKey(fileName)

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s to bucket %s", key, s.bucket)
	}

	return s.urlPrefix + "/" + key, nil
}

func (s *S3BlobStore) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}

	// The object key is the base name of the public URL.
	key := utils.GetFileBaseName(url)
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrapf(err, "delete %s from bucket %s", key, s.bucket)
}
