package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"noteshare/imaging"
	"noteshare/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectClient is the slice of the minio client the image store needs.
// Tests substitute a fake.
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// ImageStore keeps note images in an S3-compatible bucket so note
// documents carry a URL instead of a multi-hundred-KB data URI.
type ImageStore struct {
	bucket string
	client ObjectClient
}

const (
	presignExpiry = 7 * 24 * time.Hour
	thumbMaxEdge  = 320
)

// NewImageStoreFromEnv builds an ImageStore from S3_* variables, or
// returns nil when S3_ENDPOINT is unset (images then stay inline).
func NewImageStoreFromEnv() (*ImageStore, error) {
	endpoint := utils.GetEnvAsString("S3_ENDPOINT", "")
	if endpoint == "" {
		return nil, nil
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4(
			utils.GetEnvAsString("S3_ACCESS_KEY", ""),
			utils.GetEnvAsString("S3_SECRET_KEY", ""),
			""),
		Secure: utils.GetEnvAsBool("S3_USE_SSL", false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %v", err)
	}

	return &ImageStore{
		bucket: utils.GetEnvAsString("S3_BUCKET", "noteshare"),
		client: client,
	}, nil
}

func NewImageStore(bucket string, client ObjectClient) *ImageStore {
	return &ImageStore{bucket: bucket, client: client}
}

// StoreDataURI uploads the payload of a data URI and returns a
// presigned URL for it. Objects are keyed by note ID alone, carrying
// the media type as object metadata, so replacing or deleting a note's
// image never needs to know what format was uploaded.
func (s *ImageStore) StoreDataURI(ctx context.Context, noteID, dataURI string) (string, error) {
	contentType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("notes/%s", noteID)

	_, err = s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %v", err)
	}

	// Feed views load the thumbnail; a failed downscale only loses
	// the small copy, never the upload itself.
	if thumb, err := imaging.Thumbnail(data, thumbMaxEdge); err == nil {
		_, _ = s.client.PutObject(ctx, s.bucket, thumbObjectName(noteID),
			bytes.NewReader(thumb), int64(len(thumb)),
			minio.PutObjectOptions{ContentType: "image/jpeg"})
	}

	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign image URL: %v", err)
	}
	return presigned.String(), nil
}

// Delete removes a note's image and thumbnail. Removing an object that
// was never uploaded is a no-op, so callers need not track whether the
// note ever had an image.
func (s *ImageStore) Delete(ctx context.Context, noteID string) error {
	_ = s.client.RemoveObject(ctx, s.bucket, thumbObjectName(noteID), minio.RemoveObjectOptions{})
	return s.client.RemoveObject(ctx, s.bucket,
		fmt.Sprintf("notes/%s", noteID), minio.RemoveObjectOptions{})
}

func thumbObjectName(noteID string) string {
	return fmt.Sprintf("notes/%s_thumb", noteID)
}

// decodeDataURI splits "data:image/jpeg;base64,...." into its media
// type and raw bytes.
func decodeDataURI(uri string) (contentType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}

	rest := strings.TrimPrefix(uri, "data:")
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return "", nil, fmt.Errorf("malformed data URI")
	}

	meta := rest[:sep]
	payload := rest[sep+1:]

	if !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("unsupported data URI encoding")
	}
	contentType = strings.TrimSuffix(meta, ";base64")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 payload: %v", err)
	}
	return contentType, data, nil
}
