package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/adilg123/huff-processor/internal/compression"
	"github.com/adilg123/huff-processor/internal/config"
	"github.com/adilg123/huff-processor/pkg/logger"
	"github.com/gin-gonic/gin"
)

// CompressRequest represents the compression and decompression request payload
type CompressRequest struct {
	Algorithm string `form:"algorithm"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Handler serves the compression endpoints
type Handler struct {
	maxFileSize int64
	debugLevel  int
	log         logger.Logger
}

func NewHandler(cfg *config.Config, log logger.Logger) *Handler {
	return &Handler{maxFileSize: cfg.MaxFileSize, debugLevel: cfg.DebugLevel, log: log}
}

// HandleCompress handles file compression requests
func (h *Handler) HandleCompress(c *gin.Context) {
	content, filename, options, ok := h.readUpload(c)
	if !ok {
		return
	}

	compressedData, stats, err := compression.Compress(content, options)
	if err != nil {
		h.log.Errorf("compress %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Compression failed",
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		return
	}
	h.log.Infof("compressed %s: %d -> %d bytes (%.1f%%)", filename, stats.OriginalSize, stats.ProcessedSize, stats.CompressionRatio)

	outName := fmt.Sprintf("%s.%s", filename, getExtensionForAlgorithm(options.Algorithm))
	writeAttachment(c, outName, compressedData, stats)
}

// HandleDecompress handles file decompression requests
func (h *Handler) HandleDecompress(c *gin.Context) {
	content, filename, options, ok := h.readUpload(c)
	if !ok {
		return
	}

	decompressedData, stats, err := compression.Decompress(content, options)
	if err != nil {
		if compression.IsFormatError(err) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error:   "Invalid compressed file",
				Code:    http.StatusUnprocessableEntity,
				Message: err.Error(),
			})
			return
		}
		h.log.Errorf("decompress %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Decompression failed",
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		return
	}
	h.log.Infof("decompressed %s: %d -> %d bytes", filename, stats.OriginalSize, stats.ProcessedSize)

	writeAttachment(c, getBaseFilename(filename), decompressedData, stats)
}

// readUpload validates the request and returns the uploaded file content.
// It writes the error response itself and reports ok=false on failure.
func (h *Handler) readUpload(c *gin.Context) ([]byte, string, compression.Options, bool) {
	var req CompressRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request",
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return nil, "", compression.Options{}, false
	}
	if req.Algorithm == "" {
		req.Algorithm = "huffman"
	}

	// Validate algorithm
	if !compression.IsValidAlgorithm(req.Algorithm) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid algorithm",
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("Supported algorithms: %v", compression.GetSupportedAlgorithms()),
		})
		return nil, "", compression.Options{}, false
	}

	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "File upload error",
			Code:    http.StatusBadRequest,
			Message: "No file provided or file upload failed",
		})
		return nil, "", compression.Options{}, false
	}
	defer file.Close()

	// Check file size
	if header.Size > h.maxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "File too large",
			Code:    http.StatusRequestEntityTooLarge,
			Message: fmt.Sprintf("Maximum file size is %d bytes", h.maxFileSize),
		})
		return nil, "", compression.Options{}, false
	}

	fileContent, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err == nil && int64(len(fileContent)) > h.maxFileSize {
		err = errors.New("upload larger than declared size")
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "File read error",
			Code:    http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
		return nil, "", compression.Options{}, false
	}

	options := compression.Options{
		Algorithm:  req.Algorithm,
		DebugLevel: h.debugLevel,
		Logger:     h.log,
	}
	return fileContent, header.Filename, options, true
}

func writeAttachment(c *gin.Context, filename string, data []byte, stats *compression.Stats) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("X-Original-Size", strconv.Itoa(stats.OriginalSize))
	c.Header("X-Processed-Size", strconv.Itoa(stats.ProcessedSize))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// HandleInfo provides information about supported algorithms
func (h *Handler) HandleInfo(c *gin.Context) {
	info := map[string]interface{}{
		"service": "Huffman Compression Service",
		"version": "1.0.0",
		"algorithms": map[string]interface{}{
			"supported": compression.GetSupportedAlgorithms(),
			"descriptions": map[string]string{
				"huffman": "Huffman coding with an in-band code tree header and end-of-stream code",
			},
		},
		"limits": map[string]interface{}{
			"max_file_size": fmt.Sprintf("%d bytes (%.1f MB)", h.maxFileSize, float64(h.maxFileSize)/(1024*1024)),
		},
		"endpoints": map[string]interface{}{
			"compress":   "POST /compress - Upload file for compression",
			"decompress": "POST /decompress - Upload file for decompression",
			"info":       "GET /info - Get service information",
			"health":     "GET /health - Health check",
		},
	}

	c.JSON(http.StatusOK, info)
}

// HandleHealth provides a simple health check endpoint
func HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "compression-service",
	})
}

func getBaseFilename(filename string) string {
	if filename == "" {
		return "file"
	}

	// Remove extension
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			if i == 0 {
				return "file"
			}
			return filename[:i]
		}
	}
	return filename
}

func getExtensionForAlgorithm(algorithm string) string {
	extensions := map[string]string{
		"huffman": "hf",
	}

	if ext, exists := extensions[algorithm]; exists {
		return ext
	}
	return "compressed"
}
