package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/design-platform/design-platform-backend/internal/repository"
	"github.com/design-platform/design-platform-backend/internal/storage"
	"github.com/google/uuid"
)

// ============================================
// File Service
// ============================================

// FileUpload carries one file from a multipart request into the service layer
type FileUpload struct {
	Name string
	Body io.Reader
}

type FileService interface {
	UploadFiles(ctx context.Context, projectID, uploaderID string, uploads []FileUpload) ([]*repository.ProjectFile, error)
	ListFiles(ctx context.Context, projectID string) ([]*repository.ProjectFile, error)
	DownloadFile(ctx context.Context, projectID, fileID string) (io.ReadCloser, *repository.ProjectFile, error)
	DeleteFile(ctx context.Context, projectID, fileID string) error
	DeleteProjectFiles(ctx context.Context, projectID string) error
}

type fileService struct {
	fileRepo repository.ProjectFileRepository
	store    storage.ObjectStore
}

func NewFileService(fileRepo repository.ProjectFileRepository, store storage.ObjectStore) FileService {
	return &fileService{fileRepo: fileRepo, store: store}
}

// UploadFiles stores each file sequentially: blob first, then the record.
// On the first failure it returns immediately; files already stored stay
// stored, so a retry only needs to resend the remainder.
func (s *fileService) UploadFiles(ctx context.Context, projectID, uploaderID string, uploads []FileUpload) ([]*repository.ProjectFile, error) {
	var saved []*repository.ProjectFile

	for _, upload := range uploads {
		if upload.Name == "" {
			return saved, fmt.Errorf("%w: file name is required", ErrInvalidInput)
		}

		// Storage path is unique per upload; the original name survives only
		// as display metadata on the record
		path := fmt.Sprintf("%s/%s%s", projectID, uuid.New().String(), filepath.Ext(upload.Name))

		if err := s.store.Upload(ctx, path, upload.Body); err != nil {
			return saved, fmt.Errorf("failed to store file %s: %w", upload.Name, err)
		}

		file := &repository.ProjectFile{
			ProjectID:  projectID,
			FilePath:   path,
			FileName:   upload.Name,
			UploadedBy: &uploaderID,
		}

		if err := s.fileRepo.Create(ctx, file); err != nil {
			return saved, fmt.Errorf("failed to record file %s: %w", upload.Name, err)
		}

		saved = append(saved, file)
	}

	return saved, nil
}

func (s *fileService) ListFiles(ctx context.Context, projectID string) ([]*repository.ProjectFile, error) {
	return s.fileRepo.FindByProjectID(ctx, projectID)
}

// DownloadFile returns the blob stream along with the record so the caller
// can serve it under the original display name
func (s *fileService) DownloadFile(ctx context.Context, projectID, fileID string) (io.ReadCloser, *repository.ProjectFile, error) {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}
	if file == nil || file.ProjectID != projectID {
		return nil, nil, ErrNotFound
	}

	body, err := s.store.Download(ctx, file.FilePath)
	if err != nil {
		if err == storage.ErrObjectNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	return body, file, nil
}

// DeleteFile removes the blob before the record. If the blob removal fails
// the record stays so the file is still listed and the delete can be retried.
func (s *fileService) DeleteFile(ctx context.Context, projectID, fileID string) error {
	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file == nil || file.ProjectID != projectID {
		return ErrNotFound
	}

	if err := s.store.Remove(ctx, []string{file.FilePath}); err != nil {
		return fmt.Errorf("failed to remove stored file: %w", err)
	}

	return s.fileRepo.Delete(ctx, fileID)
}

// DeleteProjectFiles removes every blob and record for a project. Blob
// removal is best-effort: a storage failure does not keep the records alive
// because the project itself is going away.
func (s *fileService) DeleteProjectFiles(ctx context.Context, projectID string) error {
	files, err := s.fileRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return err
	}

	if len(files) > 0 {
		paths := make([]string, 0, len(files))
		for _, f := range files {
			paths = append(paths, f.FilePath)
		}
		if err := s.store.Remove(ctx, paths); err != nil {
			// Orphaned blobs are preferable to a project that cannot be deleted
			log.Printf("[File] Failed to remove %d stored files for project %s: %v", len(paths), projectID, err)
		}
	}

	return s.fileRepo.DeleteByProjectID(ctx, projectID)
}
