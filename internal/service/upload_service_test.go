package service_test

import (
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emirpasha/vidshare/internal/service"
	"github.com/emirpasha/vidshare/internal/storage"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real *multipart.FileHeader the way gin receives one.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf strings.Builder
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", strings.NewReader(buf.String()))
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	return req.MultipartForm.File["file"][0]
}

func newUploadService(t *testing.T) (*service.UploadService, string) {
	t.Helper()
	logger.Init(false)

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/media")
	require.NoError(t, err)

	return service.NewUploadService(store), dir
}

func TestAcceptSubmission_AllowedExtensionStoresFile(t *testing.T) {
	uploadService, dir := newUploadService(t)

	header := fileHeader(t, "my clip.mp4", []byte("fake mp4 bytes"))

	mediaURL, err := uploadService.AcceptSubmission(context.Background(), header, "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(mediaURL, "/media/"), "got %q", mediaURL)
	assert.True(t, strings.HasSuffix(mediaURL, "_my_clip.mp4"), "Spaces should be sanitized, got %q", mediaURL)

	// The blob must actually be on disk with the submitted content
	key := strings.TrimPrefix(mediaURL, "/media/")
	data, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake mp4 bytes"), data)
}

func TestAcceptSubmission_UniqueKeysForSameFilename(t *testing.T) {
	uploadService, _ := newUploadService(t)

	first, err := uploadService.AcceptSubmission(context.Background(), fileHeader(t, "clip.webm", []byte("a")), "")
	require.NoError(t, err)
	second, err := uploadService.AcceptSubmission(context.Background(), fileHeader(t, "clip.webm", []byte("b")), "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAcceptSubmission_ExtensionCaseInsensitive(t *testing.T) {
	uploadService, _ := newUploadService(t)

	mediaURL, err := uploadService.AcceptSubmission(context.Background(), fileHeader(t, "CLIP.MP4", []byte("x")), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mediaURL, "/media/"))
}

func TestAcceptSubmission_DisallowedExtensionUsesURL(t *testing.T) {
	uploadService, dir := newUploadService(t)

	header := fileHeader(t, "malware.exe", []byte("nope"))

	mediaURL, err := uploadService.AcceptSubmission(context.Background(), header, "http://example.com/v.ogg")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/v.ogg", mediaURL)

	// Nothing should have been written to the store
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAcceptSubmission_DisallowedExtensionWithoutURL(t *testing.T) {
	uploadService, _ := newUploadService(t)

	header := fileHeader(t, "notes.txt", []byte("text"))

	_, err := uploadService.AcceptSubmission(context.Background(), header, "")
	assert.ErrorIs(t, err, service.ErrNoMediaProvided)
}

func TestAcceptSubmission_URLOnly(t *testing.T) {
	uploadService, _ := newUploadService(t)

	mediaURL, err := uploadService.AcceptSubmission(context.Background(), nil, "http://example.com/v.mp4")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/v.mp4", mediaURL)
}

func TestAcceptSubmission_NoFileNoURL(t *testing.T) {
	uploadService, _ := newUploadService(t)

	_, err := uploadService.AcceptSubmission(context.Background(), nil, "")
	assert.ErrorIs(t, err, service.ErrNoMediaProvided)
}
