package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"examgpt_backend/internals/features/questions/catalog"
	helper "examgpt_backend/internals/helpers"
	ossHelper "examgpt_backend/internals/helpers/oss"
)

type PDFController struct {
	Storage *ossHelper.PDFStorageService
}

func NewPDFController(storage *ossHelper.PDFStorageService) *PDFController {
	return &PDFController{Storage: storage}
}

func (pc *PDFController) unavailable() bool {
	return pc.Storage == nil
}

// POST /api/upload/pdf (multipart: file + subject/classLevel/chapter)
func (pc *PDFController) Upload(c *fiber.Ctx) error {
	if pc.unavailable() {
		return helper.Error(c, fiber.StatusServiceUnavailable, "PDF storage is not configured")
	}

	subject := c.FormValue("subject")
	classLevel := c.FormValue("classLevel")
	chapter := c.FormValue("chapter")
	if _, ok := catalog.Find(subject, classLevel, chapter); !ok {
		return helper.Error(c, fiber.StatusNotFound, "Unknown chapter")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Missing file")
	}
	if fileHeader.Size > ossHelper.MaxPDFSize {
		return helper.Error(c, fiber.StatusRequestEntityTooLarge, "PDF exceeds 50MB limit")
	}
	if ct := fileHeader.Header.Get("Content-Type"); !strings.Contains(ct, "application/pdf") {
		return helper.Error(c, fiber.StatusUnsupportedMediaType, "Only PDF files are accepted")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to read upload")
	}
	defer f.Close()

	url, err := pc.Storage.UploadPDF(c.UserContext(), subject, classLevel, chapter, f)
	if err != nil {
		log.Printf("[ERROR] Upload PDF %s/%s/%s: %v", subject, classLevel, chapter, err)
		return helper.Error(c, fiber.StatusBadGateway, "Failed to store PDF")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, fiber.Map{
		"key": ossHelper.PDFKey(subject, classLevel, chapter),
		"url": url,
	})
}

// GET /api/admin/list-pdfs
func (pc *PDFController) List(c *fiber.Ctx) error {
	if pc.unavailable() {
		return helper.Error(c, fiber.StatusServiceUnavailable, "PDF storage is not configured")
	}

	objects, err := pc.Storage.ListPDFs(c.UserContext())
	if err != nil {
		log.Printf("[ERROR] ListPDFs: %v", err)
		return helper.Error(c, fiber.StatusBadGateway, "Failed to list PDFs")
	}
	return helper.Success(c, fiber.Map{
		"pdfs":  objects,
		"count": len(objects),
	})
}

// POST /api/upload/presigned-url
// Signed URL 1 jam untuk upload langsung dari admin panel.
func (pc *PDFController) Presign(c *fiber.Ctx) error {
	if pc.unavailable() {
		return helper.Error(c, fiber.StatusServiceUnavailable, "PDF storage is not configured")
	}

	var req struct {
		Subject    string `json:"subject"`
		ClassLevel string `json:"classLevel"`
		Chapter    string `json:"chapter"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if _, ok := catalog.Find(req.Subject, req.ClassLevel, req.Chapter); !ok {
		return helper.Error(c, fiber.StatusNotFound, "Unknown chapter")
	}

	url, err := pc.Storage.PresignUploadURL(req.Subject, req.ClassLevel, req.Chapter, time.Hour)
	if err != nil {
		return helper.Error(c, fiber.StatusBadGateway, "Failed to presign upload")
	}
	return helper.Success(c, fiber.Map{
		"uploadUrl": url,
		"key":       ossHelper.PDFKey(req.Subject, req.ClassLevel, req.Chapter),
		"expiresIn": int(time.Hour.Seconds()),
	})
}

// DELETE /api/admin/pdfs
func (pc *PDFController) Delete(c *fiber.Ctx) error {
	if pc.unavailable() {
		return helper.Error(c, fiber.StatusServiceUnavailable, "PDF storage is not configured")
	}

	subject := c.Query("subject")
	classLevel := c.Query("classLevel")
	chapter := c.Query("chapter")
	if _, ok := catalog.Find(subject, classLevel, chapter); !ok {
		return helper.Error(c, fiber.StatusNotFound, "Unknown chapter")
	}

	if err := pc.Storage.DeletePDF(c.UserContext(), subject, classLevel, chapter); err != nil {
		return helper.Error(c, fiber.StatusBadGateway, "Failed to delete PDF")
	}
	return helper.Success(c, fiber.Map{"deleted": true})
}
