package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Juanito040/BACK-HOSPI-DESK/internal/api/dto"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/domain"
	"github.com/Juanito040/BACK-HOSPI-DESK/internal/service"
	apperrors "github.com/Juanito040/BACK-HOSPI-DESK/pkg/util"
)

// AttachmentsHandler manages file attachment endpoints.
type AttachmentsHandler struct {
	service *service.AttachmentService
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(attachmentService *service.AttachmentService) *AttachmentsHandler {
	return &AttachmentsHandler{service: attachmentService}
}

// Upload POST /tickets/:id/attachments. Expects multipart form field "file".
func (h *AttachmentsHandler) Upload(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("multipart field 'file' required", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable upload", nil)
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	attachment, err := h.service.Upload(c.UserContext(), c.Params("id"), principal.User.ID,
		fileHeader.Filename, mimeType, fileHeader.Size, file)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": attachmentResponse(attachment)})
}

// List GET /tickets/:id/attachments.
func (h *AttachmentsHandler) List(c *fiber.Ctx) error {
	attachments, err := h.service.ListByTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		items = append(items, attachmentResponse(attachment))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Download GET /attachments/:id.
func (h *AttachmentsHandler) Download(c *fiber.Ctx) error {
	attachment, reader, err := h.service.Download(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, attachment.MimeType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+attachment.FileName+`"`)
	return c.SendStream(reader, int(attachment.SizeBytes))
}

// Delete DELETE /attachments/:id.
func (h *AttachmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func attachmentResponse(attachment *domain.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:         attachment.ID,
		TicketID:   attachment.TicketID,
		UploadedBy: attachment.UploadedBy,
		FileName:   attachment.FileName,
		MimeType:   attachment.MimeType,
		SizeBytes:  attachment.SizeBytes,
		CreatedAt:  attachment.CreatedAt,
	}
}
