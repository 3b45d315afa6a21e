package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/convoai/convo-be/repository"
	"github.com/convoai/convo-be/types"
	"github.com/convoai/convo-be/utils"
)

// MaxUploadSize caps accepted uploads at 32MB.
const MaxUploadSize = 32 << 20

// FileService stores uploaded documents on disk, registers them, and runs
// them through ingestion. Ingestion is synchronous: when Upload returns
// without error the document is fully indexed.
type FileService struct {
	uploadDir string
	documents repository.DocumentRepo
	ingest    *IngestService
}

func NewFileService(uploadDir string, documents repository.DocumentRepo, ingest *IngestService) *FileService {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		panic(err)
	}
	return &FileService{
		uploadDir: uploadDir,
		documents: documents,
		ingest:    ingest,
	}
}

// Upload validates and saves the file, then ingests it. The returned
// document reflects the final processing state.
func (s *FileService) Upload(ctx context.Context, req types.UploadRequest, file *multipart.FileHeader) (*types.Document, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if file.Size > MaxUploadSize {
		return nil, fmt.Errorf("file too large: %d bytes", file.Size)
	}

	title := req.Title
	if title == "" {
		title = strings.TrimSuffix(file.Filename, ext)
	}

	destPath, err := s.saveUpload(file, title, ext)
	if err != nil {
		return nil, err
	}

	doc := &types.Document{
		Title:    title,
		FilePath: destPath,
	}
	if err := s.documents.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}

	if err := s.ingest.ProcessDocument(ctx, doc); err != nil {
		return doc, fmt.Errorf("ingest document %d: %w", doc.ID, err)
	}
	return doc, nil
}

// IngestLocal registers and ingests a file already on disk, copying it into
// the upload directory first. Used by the command line ingestion path.
func (s *FileService) IngestLocal(ctx context.Context, sourcePath, title string) (*types.Document, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if ext != ".pdf" {
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(sourcePath), ext)
	}

	destPath, err := utils.CopyFileWithTimestamp(sourcePath, s.uploadDir)
	if err != nil {
		return nil, err
	}

	doc := &types.Document{
		Title:    title,
		FilePath: destPath,
	}
	if err := s.documents.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("register document: %w", err)
	}

	if err := s.ingest.ProcessDocument(ctx, doc); err != nil {
		return doc, fmt.Errorf("ingest document %d: %w", doc.ID, err)
	}
	return doc, nil
}

func (s *FileService) saveUpload(file *multipart.FileHeader, title, ext string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := utils.SanitizeFilename(fmt.Sprintf("%s_%d%s", title, time.Now().Unix(), ext))
	destPath := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return destPath, nil
}

