// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"unicode"

	"rolodex/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "contactId" -> "contact ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// mapServiceError converts an application error into an HTTP status code.
func mapServiceError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case "VALIDATION_ERROR":
		return fiber.StatusBadRequest
	case "NOT_FOUND":
		return fiber.StatusNotFound
	case "UNAUTHORIZED":
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// parsePage extracts the ?page= query parameter, defaulting to 1.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// readImageUpload reads an optional multipart file field. It returns nil bytes
// and an empty filename when the field is absent. Oversized uploads are
// rejected before the bytes are read.
func (s *Server) readImageUpload(c *fiber.Ctx, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// Absent field or no multipart body at all: nothing was uploaded.
		return nil, "", nil
	}
	return s.readFileHeader(fh)
}

func (s *Server) readFileHeader(fh *multipart.FileHeader) ([]byte, string, error) {
	maxBytes := int64(s.config.ImageMaxUploadSizeMB) * 1024 * 1024
	if fh.Size > maxBytes {
		return nil, "", models.NewValidationError("Uploaded image exceeds the maximum allowed size")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	if int64(len(raw)) > maxBytes {
		return nil, "", models.NewValidationError("Uploaded image exceeds the maximum allowed size")
	}
	return raw, fh.Filename, nil
}
