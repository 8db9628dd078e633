package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/folio/folio/internal/metrics"
	"github.com/folio/folio/internal/model"
	"github.com/folio/folio/internal/store"
)

// ContactService accepts contact-form submissions.
type ContactService struct {
	store   *store.Store
	logger  *slog.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

// NewContactService creates a new ContactService.
func NewContactService(st *store.Store, logger *slog.Logger, recorder metrics.Recorder, opts ...Option) *ContactService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	o := buildOptions(opts)
	return &ContactService{
		store:   st,
		logger:  logger.With("component", "service.contact"),
		metrics: recorder,
		now:     o.now,
	}
}

// ContactInput defines input for a contact submission.
type ContactInput struct {
	Name    string
	Email   string
	Message string
}

// Validate checks that every field is present. Formats are not checked.
func (in ContactInput) Validate() error {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// SubmitContact validates input and appends it to the contact list.
func (s *ContactService) SubmitContact(ctx context.Context, input ContactInput) (*model.ContactRecord, error) {
	if err := input.Validate(); err != nil {
		s.metrics.IncContactRejected()
		return nil, err
	}

	var record model.ContactRecord
	err := s.store.UpdateContacts(ctx, func(contacts []model.ContactRecord) ([]model.ContactRecord, error) {
		now := s.now().UTC()
		record = model.ContactRecord{
			ID:        now.UnixMilli(),
			Name:      input.Name,
			Email:     input.Email,
			Message:   input.Message,
			Timestamp: now,
		}
		return append(contacts, record), nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit contact: %w", err)
	}

	s.metrics.IncContactSubmitted()
	s.logger.Info("contact_submitted", "contact_id", record.ID)

	return &record, nil
}

// ListContacts returns every stored submission in submission order.
func (s *ContactService) ListContacts(ctx context.Context) []model.ContactRecord {
	return s.store.LoadContacts(ctx)
}
