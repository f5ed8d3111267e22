package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/yukikurage/legal-case-api/internal/metrics"
	"github.com/yukikurage/legal-case-api/internal/repository"
	"github.com/yukikurage/legal-case-api/internal/storage"
	"github.com/yukikurage/legal-case-api/internal/utils"
)

// sniffLen matches mimetype's default read limit.
const sniffLen = 3072

var (
	ErrFileRequired    = errors.New("file is required")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUploadFailed    = errors.New("document upload failed")
)

// DocumentService stores case documents in object storage and records
// their keys on the owning case.
type DocumentService struct {
	store    storage.ObjectStore
	caseRepo repository.CaseRepository
	maxBytes int64
	log      zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(store storage.ObjectStore, caseRepo repository.CaseRepository, maxBytes int64, log zerolog.Logger) *DocumentService {
	return &DocumentService{
		store:    store,
		caseRepo: caseRepo,
		maxBytes: maxBytes,
		log:      log.With().Str("component", "documents").Logger(),
	}
}

// UploadInput describes one uploaded file.
type UploadInput struct {
	OwnerID  string
	CaseID   string
	Filename string
	Size     int64
	Body     io.Reader
}

// UploadResult is what a successful upload produced.
type UploadResult struct {
	Key         string
	Filename    string
	ContentType string
}

// Upload writes the file under {owner}/{case}/{uuid}_{filename} and then
// appends the key to the case. A storage failure leaves the case untouched.
func (s *DocumentService) Upload(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if input.Body == nil || input.Size <= 0 {
		return nil, ErrFileRequired
	}
	if s.maxBytes > 0 && input.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	filename := utils.SafeFilename(input.Filename)
	if filename == "" {
		return nil, ErrInvalidFilename
	}
	if _, err := requireOwnedCase(ctx, s.caseRepo, input.OwnerID, input.CaseID); err != nil {
		return nil, err
	}

	body, contentType, err := sniff(input.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", ErrUploadFailed, err)
	}

	key := documentKey(input.OwnerID, input.CaseID, filename)
	if err := s.store.Put(ctx, key, body, input.Size, contentType); err != nil {
		metrics.RecordUpload(contentType, "error", input.Size)
		s.log.Error().Err(err).Str("key", key).Msg("object storage put failed")
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	if err := s.caseRepo.AppendDocument(ctx, input.CaseID, input.OwnerID, key); err != nil {
		metrics.RecordUpload(contentType, "error", input.Size)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to record document on case: %w", err)
	}

	metrics.RecordUpload(contentType, "success", input.Size)
	s.log.Info().
		Str("user_id", input.OwnerID).
		Str("case_id", input.CaseID).
		Str("key", key).
		Str("content_type", contentType).
		Int64("bytes", input.Size).
		Msg("document uploaded")

	return &UploadResult{Key: key, Filename: filename, ContentType: contentType}, nil
}

// List returns document names under the owner's namespace. With a caseID
// the names are relative to that case, otherwise relative to the owner.
// Storage failures yield an empty list.
func (s *DocumentService) List(ctx context.Context, ownerID, caseID string) ([]string, error) {
	prefix := ownerID + "/"
	if caseID != "" {
		if _, err := requireOwnedCase(ctx, s.caseRepo, ownerID, caseID); err != nil {
			return nil, err
		}
		prefix = ownerID + "/" + caseID + "/"
	}

	keys, err := s.store.List(ctx, prefix)
	if err != nil {
		s.log.Warn().Err(err).Str("prefix", prefix).Msg("listing documents failed, returning empty list")
		return []string{}, nil
	}

	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, prefix)
		if name == "" || name == key {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func documentKey(ownerID, caseID, filename string) string {
	return ownerID + "/" + caseID + "/" + utils.NewObjectID() + "_" + filename
}

// sniff detects the content type from the head of r and returns a reader
// positioned at the start of the content. Seekable readers are rewound so
// the object store can still seek them.
func sniff(r io.Reader) (io.Reader, string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]
	contentType := mimetype.Detect(head).String()

	if seeker, ok := r.(io.Seeker); ok {
		if _, err := seeker.Seek(0, io.SeekStart); err == nil {
			return r, contentType, nil
		}
	}
	return io.MultiReader(bytes.NewReader(head), r), contentType, nil
}
