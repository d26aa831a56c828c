package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/repository"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/storage"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// AttachmentService stores file attachments for tickets. Metadata lives in
// the database, bytes in the configured FileStorage.
type AttachmentService struct {
	attachments  repository.AttachmentRepository
	tickets      repository.TicketRepository
	files        storage.FileStorage
	maxSizeBytes int64
}

// NewAttachmentService constructs the service. maxSizeBytes caps a single
// upload; zero disables the cap.
func NewAttachmentService(attachments repository.AttachmentRepository, tickets repository.TicketRepository, files storage.FileStorage, maxSizeBytes int64) *AttachmentService {
	return &AttachmentService{
		attachments:  attachments,
		tickets:      tickets,
		files:        files,
		maxSizeBytes: maxSizeBytes,
	}
}

// Upload stores the file content and records its metadata against the ticket.
func (s *AttachmentService) Upload(ctx context.Context, ticketID, uploadedBy, fileName, mimeType string, sizeBytes int64, content io.Reader) (*domain.Attachment, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, apperrors.NewValidationError("file name required", nil)
	}
	if s.maxSizeBytes > 0 && sizeBytes > s.maxSizeBytes {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("file exceeds the maximum size of %d bytes", s.maxSizeBytes), nil)
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, notFound(err, "ticket")
	}

	key := uuid.New().String()
	if err := s.files.Save(ctx, key, content); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("storing attachment content: %w", err))
	}

	attachment := &domain.Attachment{
		TicketID:   ticketID,
		UploadedBy: uploadedBy,
		StorageKey: key,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  sizeBytes,
		CreatedAt:  time.Now(),
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		// Metadata insert failed; do not leave orphaned bytes behind.
		_ = s.files.Delete(ctx, key)
		return nil, err
	}
	return attachment, nil
}

// ListByTicket returns the attachment metadata for a ticket.
func (s *AttachmentService) ListByTicket(ctx context.Context, ticketID string) ([]*domain.Attachment, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, notFound(err, "ticket")
	}
	return s.attachments.ListByTicket(ctx, ticketID)
}

// Download opens the stored bytes for an attachment. The caller closes the
// returned reader.
func (s *AttachmentService) Download(ctx context.Context, id string) (*domain.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, "attachment")
	}
	reader, err := s.files.Open(ctx, attachment.StorageKey)
	if err != nil {
		return nil, nil, apperrors.NewInternalError(fmt.Errorf("opening attachment content: %w", err))
	}
	return attachment, reader, nil
}

// Delete removes an attachment's metadata and its stored bytes.
func (s *AttachmentService) Delete(ctx context.Context, id string) error {
	attachment, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "attachment")
	}
	if err := s.attachments.Delete(ctx, id); err != nil {
		return notFound(err, "attachment")
	}
	return s.files.Delete(ctx, attachment.StorageKey)
}
