package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adilg123/huff-processor/internal/config"
	"github.com/adilg123/huff-processor/pkg/logger"
	"github.com/gin-gonic/gin"
)

func newTestRouter(maxFileSize int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, NewHandler(&config.Config{MaxFileSize: maxFileSize}, logger.Nop()))
	return router
}

func uploadRequest(t *testing.T, path, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("algorithm", "huffman"); err != nil {
		t.Fatal(err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestCompressThenDecompress(t *testing.T) {
	router := newTestRouter(1 << 20)
	original := bytes.Repeat([]byte("over the wire "), 64)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/v1/compress", "notes.txt", original))
	if rec.Code != http.StatusOK {
		t.Fatalf("compress status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=notes.txt.hf" {
		t.Errorf("Content-Disposition = %q", got)
	}
	compressed, _ := io.ReadAll(rec.Body)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/decompress", "notes.txt.hf", compressed))
	if rec.Code != http.StatusOK {
		t.Fatalf("decompress status = %d: %s", rec.Code, rec.Body.String())
	}
	if !bytes.Equal(rec.Body.Bytes(), original) {
		t.Fatal("round trip through API changed the data")
	}
}

func TestDecompressRejectsForeignFile(t *testing.T) {
	router := newTestRouter(1 << 20)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/v1/decompress", "photo.jpg", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00}))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != "Invalid compressed file" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestCompressRejectsLargeFile(t *testing.T) {
	router := newTestRouter(8)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, uploadRequest(t, "/api/v1/compress", "big.bin", make([]byte, 64)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHealthAndInfo(t *testing.T) {
	router := newTestRouter(1 << 20)
	for _, path := range []string{"/health", "/api/v1/health", "/info", "/"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, rec.Code)
		}
	}
}

func TestGetBaseFilename(t *testing.T) {
	tests := map[string]string{
		"":             "file",
		"notes.txt.hf": "notes.txt",
		"archive":      "archive",
		".hidden":      "file",
	}
	for in, want := range tests {
		if got := getBaseFilename(in); got != want {
			t.Errorf("getBaseFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
