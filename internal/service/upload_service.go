package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"postboard/internal/config"
	"postboard/internal/models"
	"postboard/internal/repository"
	"postboard/internal/storage"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNotImage         = errors.New("only image files are allowed")
	ErrUnrecognizedType = errors.New("unrecognized file type")
	ErrInvalidFilename  = errors.New("invalid file name")
)

// ImageUpload is the result of a sniffed image upload. File is the public
// address of the stored object.
type ImageUpload struct {
	File     string       `json:"file"`
	FileType string       `json:"fileType"`
	Record   *models.File `json:"record"`
}

type UploadService interface {
	SaveFile(ctx context.Context, name, contentType string, data io.Reader, size int64) (string, error)
	SaveImage(ctx context.Context, name string, data io.Reader) (*ImageUpload, error)
	ListFiles(ctx context.Context) ([]models.File, error)
}

type uploadService struct {
	fileRepo repository.FileRepository
	store    storage.Storage
	cfg      *config.Config
}

func NewUploadService(fileRepo repository.FileRepository, store storage.Storage, cfg *config.Config) UploadService {
	return &uploadService{
		fileRepo: fileRepo,
		store:    store,
		cfg:      cfg,
	}
}

// SaveFile stores data under its base name when the declared content type is
// an image type and returns the public path.
func (s *uploadService) SaveFile(ctx context.Context, name, contentType string, data io.Reader, size int64) (string, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return "", fmt.Errorf("content type %q: %w", contentType, ErrNotImage)
	}

	fileName, err := sanitizeFilename(name)
	if err != nil {
		return "", err
	}

	obj, err := s.store.Save(ctx, fileName, data, size, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	slog.Info("file uploaded", "name", fileName, "size", obj.Size)

	return obj.URL, nil
}

// SaveImage sniffs the payload, stores it as <name><ext> and records it in
// the files table. The stored object is removed again if the record cannot be
// written.
func (s *uploadService) SaveImage(ctx context.Context, name string, data io.Reader) (*ImageUpload, error) {
	fileName, err := sanitizeFilename(name)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload data: %w", err)
	}

	mtype := mimetype.Detect(payload)
	if !isRecognized(mtype) {
		return nil, fmt.Errorf("detected %s: %w", mtype.String(), ErrUnrecognizedType)
	}

	storedName := fileName + mtype.Extension()

	obj, err := s.store.Save(ctx, storedName, bytes.NewReader(payload), int64(len(payload)), mtype.String())
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	record := &models.File{
		Filename: fileName,
		Type:     mtype.String(),
		Size:     int64(len(payload)),
		Path:     obj.Path,
		Base64:   base64.StdEncoding.EncodeToString(payload),
	}

	if err := s.fileRepo.Create(ctx, record); err != nil {
		if delErr := s.store.Delete(ctx, storedName); delErr != nil {
			slog.Warn("failed to remove orphaned upload", "name", storedName, "error", delErr)
		}
		return nil, err
	}

	slog.Info("image uploaded",
		"id", record.ID,
		"name", storedName,
		"type", record.Type,
		"size", record.Size,
	)

	return &ImageUpload{
		File:     obj.URL,
		FileType: strings.TrimPrefix(mtype.Extension(), "."),
		Record:   record,
	}, nil
}

func (s *uploadService) ListFiles(ctx context.Context) ([]models.File, error) {
	return s.fileRepo.List(ctx)
}

// isRecognized rejects the generic binary root type and anything in the text
// family, which mimetype reports for payloads without a known signature.
func isRecognized(mtype *mimetype.MIME) bool {
	if mtype.Extension() == "" {
		return false
	}
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return false
		}
	}
	return true
}

func sanitizeFilename(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("file name %q: %w", name, ErrInvalidFilename)
	}
	return base, nil
}
