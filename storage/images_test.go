package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
)

type fakeObjectClient struct {
	objects      map[string][]byte
	contentTypes map[string]string
	putErr       error
	removed      []string
}

func (f *fakeObjectClient) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
		f.contentTypes = map[string]string{}
	}
	data, _ := io.ReadAll(reader)
	f.objects[objectName] = data
	f.contentTypes[objectName] = opts.ContentType
	return minio.UploadInfo{Key: objectName}, nil
}

func (f *fakeObjectClient) PresignedGetObject(_ context.Context, bucket, objectName string, _ time.Duration, _ url.Values) (*url.URL, error) {
	return url.Parse(fmt.Sprintf("https://s3.example.com/%s/%s?signed=1", bucket, objectName))
}

func (f *fakeObjectClient) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	f.removed = append(f.removed, objectName)
	return nil
}

func TestStoreDataURIUploadsAndPresigns(t *testing.T) {
	fake := &fakeObjectClient{}
	store := NewImageStore("notes-bucket", fake)

	payload := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

	got, err := store.StoreDataURI(context.Background(), "n1", dataURI)
	if err != nil {
		t.Fatalf("StoreDataURI failed: %v", err)
	}
	if got != "https://s3.example.com/notes-bucket/notes/n1?signed=1" {
		t.Errorf("Unexpected presigned URL: %q", got)
	}

	stored, ok := fake.objects["notes/n1"]
	if !ok {
		t.Fatal("Object was never uploaded")
	}
	if string(stored) != string(payload) {
		t.Errorf("Uploaded bytes do not match the data URI payload")
	}
}

// Objects are keyed by note ID alone regardless of format; the media
// type rides along as object metadata.
func TestStoreDataURICarriesContentType(t *testing.T) {
	tests := []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	for _, contentType := range tests {
		t.Run(contentType, func(t *testing.T) {
			fake := &fakeObjectClient{}
			store := NewImageStore("notes-bucket", fake)

			dataURI := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
			if _, err := store.StoreDataURI(context.Background(), "n1", dataURI); err != nil {
				t.Fatalf("StoreDataURI failed: %v", err)
			}
			if _, ok := fake.objects["notes/n1"]; !ok {
				t.Fatalf("Expected object %q, stored keys: %v", "notes/n1", keysOf(fake.objects))
			}
			if got := fake.contentTypes["notes/n1"]; got != contentType {
				t.Errorf("Expected content type %q, got %q", contentType, got)
			}
		})
	}
}

func TestStoreDataURIRejectsBadInput(t *testing.T) {
	store := NewImageStore("notes-bucket", &fakeObjectClient{})

	tests := []struct {
		name string
		uri  string
	}{
		{"NotADataURI", "https://example.com/image.jpg"},
		{"MissingComma", "data:image/jpeg;base64"},
		{"NotBase64", "data:image/jpeg;base64,@@@@"},
		{"URLEncoded", "data:image/jpeg,rawpayload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.StoreDataURI(context.Background(), "n1", tt.uri); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestStoreDataURIPropagatesUploadFailure(t *testing.T) {
	fake := &fakeObjectClient{putErr: errors.New("bucket unavailable")}
	store := NewImageStore("notes-bucket", fake)

	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte{1})
	if _, err := store.StoreDataURI(context.Background(), "n1", dataURI); err == nil {
		t.Error("Expected the upload failure to propagate")
	}
}

func TestDeleteRemovesImageAndThumbnail(t *testing.T) {
	fake := &fakeObjectClient{}
	store := NewImageStore("notes-bucket", fake)

	if err := store.Delete(context.Background(), "n1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	want := map[string]bool{"notes/n1": true, "notes/n1_thumb": true}
	for _, name := range fake.removed {
		delete(want, name)
	}
	if len(want) != 0 {
		t.Errorf("Delete missed objects: %v (removed %v)", keysOf(want), fake.removed)
	}
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
