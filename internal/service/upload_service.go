package service

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/emirpasha/vidshare/internal/storage"
	"github.com/emirpasha/vidshare/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// allowedExtensions is the only gate on uploaded media; there is no
// content-type sniffing.
var allowedExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".ogg":  true,
}

type UploadService struct {
	store storage.BlobStore
}

func NewUploadService(store storage.BlobStore) *UploadService {
	return &UploadService{store: store}
}

// AcceptSubmission resolves a video's media source. A file with an allowed
// extension wins and is stored under a random-prefixed name; otherwise a
// non-empty url is used verbatim; otherwise the submission carries no media.
// A file with a disallowed extension falls through to the url, matching the
// submission form's two media slots.
func (s *UploadService) AcceptSubmission(ctx context.Context, file *multipart.FileHeader, url string) (string, error) {
	if file != nil {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if allowedExtensions[ext] {
			return s.storeFile(ctx, file, ext)
		}
		logger.Log.Warn("Upload with disallowed extension ignored",
			zap.String("filename", file.Filename),
			zap.String("extension", ext),
		)
	}

	if url != "" {
		return url, nil
	}

	return "", ErrNoMediaProvided
}

func (s *UploadService) storeFile(ctx context.Context, file *multipart.FileHeader, ext string) (string, error) {
	src, err := file.Open()
	if err != nil {
		logger.Log.Error("Failed to open uploaded file",
			zap.String("filename", file.Filename),
			zap.Error(err),
		)
		return "", err
	}
	defer src.Close()

	// Random prefix avoids collisions between identically named uploads.
	key := uuid.New().String() + "_" + sanitizeFilename(file.Filename)

	storedURL, err := s.store.Save(ctx, key, src, storage.ContentTypeForExt(ext))
	if err != nil {
		logger.Log.Error("Failed to store uploaded media",
			zap.String("key", key),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("Media stored",
		zap.String("key", key),
		zap.Int64("size_bytes", file.Size),
	)

	return storedURL, nil
}

// sanitizeFilename strips path separators and whitespace so the original name
// can be kept as a readable suffix of the storage key.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(name)
}
