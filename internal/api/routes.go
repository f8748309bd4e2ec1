package api

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/internal/metrics"
	"github.com/satriahrh/suara/usecase"
)

const (
	msgNoFileUploaded  = "No file uploaded"
	msgNoFileSelected  = "No file selected"
	msgUnsupportedType = "File type not supported"
	msgNoTextProvided  = "No text provided"
)

//go:embed web/index.html
var indexHTML []byte

type handler struct {
	service *usecase.ConversionService
	logger  *zap.Logger
}

// InitRoutes initializes all HTTP routes. m may be nil, in which case /metrics is not served.
func InitRoutes(e *echo.Echo, service *usecase.ConversionService, m *metrics.Metrics, logger *zap.Logger) {
	h := &handler{service: service, logger: logger}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "suara",
		})
	})

	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	e.GET("/", index)
	e.GET("/voice-options", voiceOptions)
	e.POST("/convert", h.convert)
	e.POST("/convert-text", h.convertText)
}

func index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}

func voiceOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, entities.VoiceCatalog())
}

func (h *handler) convert(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			return tooLarge
		}
		// A part named "file" without a filename is parsed as a plain value.
		if form := c.Request().MultipartForm; form != nil && len(form.Value["file"]) > 0 {
			return h.badRequest(c, msgNoFileSelected)
		}
		h.logger.Debug("No file in request", zap.Error(err))
		return h.badRequest(c, msgNoFileUploaded)
	}
	if fileHeader.Filename == "" {
		return h.badRequest(c, msgNoFileSelected)
	}

	format, ok := entities.FormatFromFilename(fileHeader.Filename)
	if !ok {
		h.logger.Info("Rejected unsupported upload", zap.String("filename", fileHeader.Filename))
		return h.badRequest(c, msgUnsupportedType)
	}

	voice := c.FormValue("voice")
	if voice == "" {
		voice = string(entities.DefaultVoice)
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file", zap.Error(err))
		return h.writeError(c, err)
	}
	defer src.Close()

	conversion, err := h.service.ConvertDocument(c.Request().Context(), src, format, voice)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, ConvertResponse{
		Success:   true,
		Text:      conversion.Text,
		AudioData: conversion.AudioBase64(),
		Filename:  entities.SanitizeFilename(fileHeader.Filename),
	})
}

func (h *handler) convertText(c echo.Context) error {
	var req ConvertTextRequest
	if err := c.Bind(&req); err != nil {
		if tooLarge := bodyTooLarge(err); tooLarge != nil {
			return tooLarge
		}
		h.logger.Debug("Failed to bind convert-text request", zap.Error(err))
		return h.badRequest(c, msgNoTextProvided)
	}

	conversion, err := h.service.ConvertText(c.Request().Context(), req.Text, req.Voice)
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, ConvertTextResponse{
		Success:   true,
		AudioData: conversion.AudioBase64(),
	})
}

// bodyTooLarge finds the 413 raised by the body limit middleware when it
// interrupts a read, possibly wrapped in a bind error.
func bodyTooLarge(err error) *echo.HTTPError {
	var httpErr *echo.HTTPError
	for errors.As(err, &httpErr) {
		if httpErr.Code == http.StatusRequestEntityTooLarge {
			return httpErr
		}
		err = httpErr.Internal
	}
	return nil
}

func (h *handler) badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// writeError maps the error taxonomy onto HTTP status codes
func (h *handler) writeError(c echo.Context, err error) error {
	switch {
	case entities.IsValidation(err), entities.IsExtraction(err):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case entities.IsSynthesis(err):
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	h.logger.Error("Unexpected conversion failure", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "An error occurred: " + err.Error()})
}
