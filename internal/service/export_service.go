package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"alcyxob/fitlocal/internal/export"
	"alcyxob/fitlocal/internal/repository"
	"alcyxob/fitlocal/internal/storage"

	log "github.com/sirupsen/logrus"
)

// ArchivedExport points at an export stored in object storage.
type ArchivedExport struct {
	Filename    string `json:"filename"`
	ObjectKey   string `json:"objectKey"`
	DownloadURL string `json:"downloadUrl"`
}

type ExportService interface {
	// Write renders every session of the profile as xlsx into w and returns
	// the download filename.
	Write(ctx context.Context, profileID string, w io.Writer) (string, error)
	// Archive uploads the export and returns a presigned link to it.
	// Returns ErrStorageDisabled when no object storage is configured.
	Archive(ctx context.Context, profileID string) (*ArchivedExport, error)
}

type exportService struct {
	sessionRepo repository.SessionRepository
	fileStorage storage.FileStorage
	clock       Clock
}

// NewExportService accepts a nil fileStorage; archiving is then disabled.
func NewExportService(sessionRepo repository.SessionRepository, fileStorage storage.FileStorage, clock Clock) ExportService {
	return &exportService{
		sessionRepo: sessionRepo,
		fileStorage: fileStorage,
		clock:       clock,
	}
}

func (s *exportService) Write(ctx context.Context, profileID string, w io.Writer) (string, error) {
	sessions, err := s.sessionRepo.ListChronological(ctx, profileID)
	if err != nil {
		return "", fmt.Errorf("failed to load sessions: %w", err)
	}
	if err = export.Write(w, sessions); err != nil {
		return "", fmt.Errorf("failed to render workbook: %w", err)
	}
	return export.Filename(s.clock()), nil
}

func (s *exportService) Archive(ctx context.Context, profileID string) (*ArchivedExport, error) {
	if s.fileStorage == nil {
		return nil, ErrStorageDisabled
	}

	var buf bytes.Buffer
	filename, err := s.Write(ctx, profileID, &buf)
	if err != nil {
		return nil, err
	}

	key := storage.ExportObjectKey(profileID, filename)
	if err = s.fileStorage.PutObject(ctx, key, export.ContentType, bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("failed to archive export: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		if delErr := s.fileStorage.DeleteObject(ctx, key); delErr != nil {
			log.Warnf("failed to clean up export %s: %s", key, delErr)
		}
		return nil, fmt.Errorf("failed to sign export link: %w", err)
	}

	return &ArchivedExport{Filename: filename, ObjectKey: key, DownloadURL: url}, nil
}
