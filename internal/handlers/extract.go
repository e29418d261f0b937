// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"codeberg.org/oliverandrich/imagetext/internal/i18n"
	"codeberg.org/oliverandrich/imagetext/internal/imaging"
	"codeberg.org/oliverandrich/imagetext/internal/services/ocr"
	"codeberg.org/oliverandrich/imagetext/internal/storage"
	"github.com/labstack/echo/v4"
)

// ExtractHandlers contains the image-to-text handler.
type ExtractHandlers struct {
	engine   ocr.Engine
	archiver *storage.Archiver // nil disables upload archiving
}

// NewExtract creates a new ExtractHandlers instance.
func NewExtract(engine ocr.Engine, archiver *storage.Archiver) *ExtractHandlers {
	return &ExtractHandlers{
		engine:   engine,
		archiver: archiver,
	}
}

// ExtractResponse is the image-to-text response payload.
type ExtractResponse struct { //nolint:govet // fieldalignment not critical
	Text           string  `json:"text"`
	NumWords       int     `json:"num_words"`
	NumChars       int     `json:"num_chars"`
	ImageSize      string  `json:"image_size"`
	Language       string  `json:"language"`
	AvgConfidence  float64 `json:"avg_confidence"`
	ImageFormat    string  `json:"image_format"`
	DPI            []int   `json:"dpi"`
	ExtractionTime float64 `json:"extraction_time"`
	HOCR           *string `json:"hocr"`
}

// ImageToText runs OCR on the uploaded multipart "image" field. The
// route is mounted behind middleware.RequireToken.
func (h *ExtractHandlers) ImageToText(c echo.Context) error {
	ctx := c.Request().Context()

	file, err := c.FormFile("image")
	if err != nil {
		return message(c, http.StatusBadRequest, i18n.T(ctx, "ImageRequired"))
	}

	src, err := file.Open()
	if err != nil {
		return message(c, http.StatusBadRequest, i18n.T(ctx, "InvalidImage"))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return message(c, http.StatusBadRequest, i18n.T(ctx, "InvalidImage"))
	}

	// Archiving is best effort; a full disk must not break extraction.
	if h.archiver != nil {
		if _, saveErr := h.archiver.Save(file.Filename, data); saveErr != nil {
			slog.Warn("upload_archive_failed", "error", saveErr, "filename", file.Filename)
		}
	}

	info, err := imaging.Decode(data)
	if err != nil {
		return message(c, http.StatusBadRequest, i18n.T(ctx, "InvalidImage"))
	}

	start := time.Now()
	result, err := h.engine.Extract(ctx, data)
	if err != nil {
		slog.Error("extraction_failed", "error", err)
		return message(c, http.StatusInternalServerError, i18n.T(ctx, "ExtractionFailed"))
	}
	elapsed := time.Since(start).Seconds()

	var hocr *string
	if result.HOCR != "" {
		hocr = &result.HOCR
	}

	return c.JSON(http.StatusOK, ExtractResponse{
		Text:           result.Text,
		NumWords:       len(strings.Fields(result.Text)),
		NumChars:       utf8.RuneCountInString(result.Text),
		ImageSize:      info.Size(),
		Language:       result.Language,
		AvgConfidence:  result.AvgConfidence,
		ImageFormat:    info.Format,
		DPI:            info.DPI,
		ExtractionTime: elapsed,
		HOCR:           hocr,
	})
}
