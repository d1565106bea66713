package handlers

import (
	"medextract/internal/apperror"
	"medextract/internal/dto"
	"medextract/internal/models"
	"medextract/internal/service"
	"medextract/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const welcomeMessage = "Welcome to the Lab Results extraction API. " +
	"Visit /swagger/index.html for an interface to use the extract endpoint."

type ExtractHandler struct {
	docService *service.DocumentService
	logger     *zap.Logger
}

func NewExtractHandler(docService *service.DocumentService, logger *zap.Logger) *ExtractHandler {
	return &ExtractHandler{
		docService: docService,
		logger:     logger,
	}
}

// Root godoc
// @Summary Welcome message
// @Tags meta
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func (h *ExtractHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: welcomeMessage})
}

// Health godoc
// @Summary Liveness probe
// @Tags meta
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *ExtractHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

// Extract godoc
// @Summary Extract patient fields from a lab result
// @Description Extracts Patient Name, Patient Date of Birth, Patient Address, Patient Gender
// @Description and Ordering Physician Name. Fields missing from the document are "not present".
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Lab result (PDF, at most 10 MB)"
// @Success 200 {object} models.FieldRecord
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /extract [post]
func (h *ExtractHandler) Extract(c *fiber.Ctx) error {
	requestID, _ := c.Locals("requestid").(string)
	reqLogger := logger.ForRequest(h.logger, requestID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperror.Wrap(apperror.KindInvalidFile, err, "File is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, err, "Failed to open file")
	}
	defer src.Close()

	upload := &models.UploadedFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Content:     src,
	}

	record, err := h.docService.ProcessDocument(c.UserContext(), upload, reqLogger)
	if err != nil {
		return err
	}

	return c.JSON(record)
}
