package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folio/folio/internal/handler/dto"
	"github.com/folio/folio/internal/metrics"
	"github.com/folio/folio/internal/middleware"
	"github.com/folio/folio/internal/service"
	"github.com/folio/folio/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, recorder metrics.Recorder) *store.Store {
	t.Helper()

	backend, err := store.NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBackend: %v", err)
	}
	st := store.New(backend, discardLogger(), recorder)
	if err := st.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return st
}

func TestHandler_Info(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.Info(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response["name"] != "folio" {
		t.Errorf("unexpected name: %v", response["name"])
	}

	if response["version"] != Version {
		t.Errorf("unexpected version: %v", response["version"])
	}
}

func TestHandler_NotFound(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	rec := httptest.NewRecorder()

	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Error != "resource not found" || response.Success {
		t.Errorf("unexpected error response: %+v", response)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := New()

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()

	h.MethodNotAllowed(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}

	var response dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Error != "method not allowed" {
		t.Errorf("unexpected error message: %s", response.Error)
	}
}

func TestWriteServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantLog    string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("submit contact: %w", &service.ValidationError{Fields: []string{"name"}}),
			wantStatus: http.StatusBadRequest,
			wantCode:   "MISSING_FIELDS",
		},
		{
			name:       "store write",
			err:        fmt.Errorf("record visit: %w", store.ErrStoreWrite),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "STORE_WRITE_FAILED",
			wantLog:    `"msg":"store_write_failed"`,
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
			wantLog:    `"msg":"internal_error"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			req := httptest.NewRequest(http.MethodPost, "/api/visit", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-7"))
			rec := httptest.NewRecorder()

			writeServiceError(rec, req, logger, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Success || resp.Code != tt.wantCode {
				t.Errorf("unexpected error response: %+v", resp)
			}

			logOutput := buf.String()
			if tt.wantLog == "" {
				if logOutput != "" {
					t.Errorf("expected no log for %s, got %s", tt.name, logOutput)
				}
				return
			}
			if !strings.Contains(logOutput, tt.wantLog) || !strings.Contains(logOutput, `"request_id":"req-7"`) {
				t.Errorf("log output = %s, want %s with request id", logOutput, tt.wantLog)
			}
		})
	}
}
