package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folio/folio/internal/handler/dto"
	"github.com/folio/folio/internal/model"
	"github.com/folio/folio/internal/service"
	"github.com/folio/folio/internal/store"
)

// readOnlyBackend reads nothing and rejects every write.
type readOnlyBackend struct{}

func (readOnlyBackend) Read(ctx context.Context, kind store.Kind) ([]byte, error) {
	return nil, store.ErrBlobNotFound
}

func (readOnlyBackend) Write(ctx context.Context, kind store.Kind, data []byte) error {
	return errors.New("read-only")
}

func (readOnlyBackend) Exists(ctx context.Context, kind store.Kind) (bool, error) {
	return true, nil
}

func (readOnlyBackend) Ping(ctx context.Context) error { return nil }
func (readOnlyBackend) Close() error                   { return nil }

func newContactHandler(t *testing.T) *ContactHandler {
	t.Helper()
	svc := service.NewContactService(newTestStore(t, nil), discardLogger(), nil)
	return NewContactHandler(svc, discardLogger())
}

func postContact(t *testing.T, h *ContactHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func listContacts(t *testing.T, h *ContactHandler) []model.ContactRecord {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var contacts []model.ContactRecord
	if err := json.NewDecoder(rec.Body).Decode(&contacts); err != nil {
		t.Fatalf("failed to decode contacts: %v", err)
	}
	return contacts
}

func TestContactHandler_Submit(t *testing.T) {
	t.Parallel()

	h := newContactHandler(t)

	rec := postContact(t, h, `{"name":"Alice","email":"a@b.com","message":"hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.ContactResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success || resp.Message != "Message sent successfully!" {
		t.Errorf("unexpected response: %+v", resp)
	}

	contacts := listContacts(t, h)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
	if c := contacts[0]; c.Name != "Alice" || c.Email != "a@b.com" || c.Message != "hello" || c.ID == 0 {
		t.Errorf("unexpected contact: %+v", c)
	}
}

func TestContactHandler_SubmitMissingFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"","email":"a@b.com","message":"hi"}`},
		{"absent email", `{"name":"Alice","message":"hi"}`},
		{"null message", `{"name":"Alice","email":"a@b.com","message":null}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newContactHandler(t)
			rec := postContact(t, h, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}

			var resp dto.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Success || resp.Error != "All fields are required" {
				t.Errorf("unexpected error response: %+v", resp)
			}

			if contacts := listContacts(t, h); len(contacts) != 0 {
				t.Errorf("expected no contacts after rejection, got %d", len(contacts))
			}
		})
	}
}

func TestContactHandler_SubmitInvalidJSON(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "nope", `["a"]`} {
		rec := postContact(t, newContactHandler(t), body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected status 400, got %d", body, rec.Code)
		}
	}
}

func TestContactHandler_SubmitBodyTooLarge(t *testing.T) {
	t.Parallel()

	h := newContactHandler(t)
	body := `{"name":"Alice","email":"a@b.com","message":"` + strings.Repeat("x", 2048) + `"}`

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 256)
	h.Submit(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", rec.Code)
	}
}

func TestContactHandler_SubmitStoreFailure(t *testing.T) {
	t.Parallel()

	st := store.New(readOnlyBackend{}, discardLogger(), nil)
	h := NewContactHandler(service.NewContactService(st, discardLogger(), nil), discardLogger())

	rec := postContact(t, h, `{"name":"Alice","email":"a@b.com","message":"hello"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
}

func TestContactHandler_ListEmpty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	rec := httptest.NewRecorder()
	newContactHandler(t).List(rec, req)

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}
