package uploads

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault/cinevault/pkg/apperrors"
	"github.com/cinevault/cinevault/pkg/observability"
)

type fakeObjectStore struct {
	putKey      string
	putType     string
	putContent  []byte
	putErr      error
	deletedKeys []string
	deleteErr   error
}

func (f *fakeObjectStore) Put(_ context.Context, key string, content io.Reader, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putKey = key
	f.putType = contentType
	f.putContent, _ = io.ReadAll(content)
	return nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

func (f *fakeObjectStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func newTestService(store *fakeObjectStore) *Service {
	return NewService(store, observability.NewLogger(observability.ErrorLevel, os.Stderr), nil)
}

func TestUpload(t *testing.T) {
	store := &fakeObjectStore{}
	svc := newTestService(store)

	url, err := svc.Upload(context.Background(), strings.NewReader("png-bytes"), "image/png", 9)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(store.putKey, "movies/"))
	assert.True(t, strings.HasSuffix(store.putKey, ".png"))
	assert.Equal(t, "image/png", store.putType)
	assert.Equal(t, []byte("png-bytes"), store.putContent)
	assert.Equal(t, "https://cdn.example.com/"+store.putKey, url)
}

func TestUploadJpegAliases(t *testing.T) {
	for _, contentType := range []string{"image/jpeg", "image/jpg", "IMAGE/JPEG"} {
		store := &fakeObjectStore{}
		svc := newTestService(store)

		_, err := svc.Upload(context.Background(), strings.NewReader("jpg"), contentType, 3)
		require.NoError(t, err, contentType)
		assert.True(t, strings.HasSuffix(store.putKey, ".jpg"), contentType)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc := newTestService(&fakeObjectStore{})

	_, err := svc.Upload(context.Background(), strings.NewReader("<svg/>"), "image/svg+xml", 6)
	require.Error(t, err)
	assert.Equal(t, 415, apperrors.StatusOf(err))
}

func TestUploadRejectsOversizedImage(t *testing.T) {
	svc := newTestService(&fakeObjectStore{})

	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "image/png", MaxImageSize+1)
	require.Error(t, err)
	assert.Equal(t, 413, apperrors.StatusOf(err))
}

func TestUploadStoreFailure(t *testing.T) {
	store := &fakeObjectStore{putErr: errors.New("s3 is down")}
	svc := newTestService(store)

	_, err := svc.Upload(context.Background(), strings.NewReader("x"), "image/png", 1)
	require.Error(t, err)
	assert.Equal(t, 500, apperrors.StatusOf(err))
}

func TestDeleteByURL(t *testing.T) {
	store := &fakeObjectStore{}
	svc := newTestService(store)

	svc.DeleteByURL(context.Background(), "https://cdn.example.com/movies/abc123.png")
	require.Len(t, store.deletedKeys, 1)
	assert.Equal(t, "movies/abc123.png", store.deletedKeys[0])
}

func TestDeleteByURLIgnoresForeignURLs(t *testing.T) {
	store := &fakeObjectStore{}
	svc := newTestService(store)

	svc.DeleteByURL(context.Background(), "https://example.com/posters/abc.png")
	svc.DeleteByURL(context.Background(), "://not-a-url")
	assert.Empty(t, store.deletedKeys)
}

func TestDeleteByURLSwallowsStoreErrors(t *testing.T) {
	store := &fakeObjectStore{deleteErr: errors.New("s3 is down")}
	svc := newTestService(store)

	// Must not panic or surface the error.
	svc.DeleteByURL(context.Background(), "https://cdn.example.com/movies/abc.png")
}
