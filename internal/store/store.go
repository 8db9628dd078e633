// Package store persists the visit and contact documents.
//
// Each dataset kind is stored as one serialized JSON document in a Backend.
// The Store holds a mutex per kind so that every load-mutate-save cycle runs
// as a single writer; concurrent updates never overwrite each other.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/folio/folio/internal/metrics"
	"github.com/folio/folio/internal/model"
)

// Kind identifies a stored document.
type Kind string

const (
	// KindVisits is the visit-tracking document.
	KindVisits Kind = "visits"
	// KindContacts is the contact submission list.
	KindContacts Kind = "contacts"
)

// Kinds lists every document kind the store manages.
var Kinds = []Kind{KindVisits, KindContacts}

// Store errors.
var (
	// ErrBlobNotFound is returned by backends when a document does not exist yet.
	ErrBlobNotFound = errors.New("blob not found")
	// ErrStoreWrite wraps every failure to persist a document.
	ErrStoreWrite = errors.New("store write failed")
)

// Backend reads and writes raw document bytes by kind.
type Backend interface {
	Read(ctx context.Context, kind Kind) ([]byte, error)
	Write(ctx context.Context, kind Kind, data []byte) error
	Exists(ctx context.Context, kind Kind) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Store provides fail-soft loads and serialized updates over a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
	metrics metrics.Recorder

	visitsMu   sync.Mutex
	contactsMu sync.Mutex
}

// New creates a Store on top of backend.
func New(backend Backend, logger *slog.Logger, recorder metrics.Recorder) *Store {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger.With("component", "store"),
		metrics: recorder,
	}
}

// Init writes the empty default document for every kind that does not exist.
// It is called once at startup, before the store serves requests.
func (s *Store) Init(ctx context.Context) error {
	for _, kind := range Kinds {
		exists, err := s.backend.Exists(ctx, kind)
		if err != nil {
			return fmt.Errorf("check %s document: %w", kind, err)
		}
		if exists {
			continue
		}

		var doc any = model.NewVisitDocument()
		if kind == KindContacts {
			doc = model.NewContactList()
		}
		if err := s.save(ctx, kind, doc); err != nil {
			return err
		}
		s.logger.Info("initialized document", "kind", kind)
	}
	return nil
}

// LoadVisits returns the visit document, or the empty default if it cannot be read.
func (s *Store) LoadVisits(ctx context.Context) *model.VisitDocument {
	s.visitsMu.Lock()
	defer s.visitsMu.Unlock()

	doc, err := s.loadVisits(ctx)
	if err != nil {
		s.fallback(ctx, KindVisits, "read", err)
		return model.NewVisitDocument()
	}
	return doc
}

// SaveVisits replaces the visit document.
func (s *Store) SaveVisits(ctx context.Context, doc *model.VisitDocument) error {
	s.visitsMu.Lock()
	defer s.visitsMu.Unlock()
	return s.save(ctx, KindVisits, doc)
}

// UpdateVisits loads the visit document, applies fn and saves the result while
// holding the visits lock. If fn returns an error nothing is saved. A backend
// read error other than a missing document aborts the update with
// ErrStoreWrite before fn runs.
func (s *Store) UpdateVisits(ctx context.Context, fn func(doc *model.VisitDocument) error) error {
	s.visitsMu.Lock()
	defer s.visitsMu.Unlock()

	doc, err := s.loadVisits(ctx)
	if err != nil {
		return s.readFailure(ctx, KindVisits, err)
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(ctx, KindVisits, doc)
}

// LoadContacts returns the contact list, or an empty list if it cannot be read.
func (s *Store) LoadContacts(ctx context.Context) []model.ContactRecord {
	s.contactsMu.Lock()
	defer s.contactsMu.Unlock()

	contacts, err := s.loadContacts(ctx)
	if err != nil {
		s.fallback(ctx, KindContacts, "read", err)
		return model.NewContactList()
	}
	return contacts
}

// SaveContacts replaces the contact list.
func (s *Store) SaveContacts(ctx context.Context, contacts []model.ContactRecord) error {
	s.contactsMu.Lock()
	defer s.contactsMu.Unlock()
	if contacts == nil {
		contacts = model.NewContactList()
	}
	return s.save(ctx, KindContacts, contacts)
}

// UpdateContacts is the contacts counterpart of UpdateVisits.
func (s *Store) UpdateContacts(ctx context.Context, fn func(contacts []model.ContactRecord) ([]model.ContactRecord, error)) error {
	s.contactsMu.Lock()
	defer s.contactsMu.Unlock()

	contacts, err := s.loadContacts(ctx)
	if err != nil {
		return s.readFailure(ctx, KindContacts, err)
	}
	updated, err := fn(contacts)
	if err != nil {
		return err
	}
	if updated == nil {
		updated = model.NewContactList()
	}
	return s.save(ctx, KindContacts, updated)
}

// Ping checks backend connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// loadVisits returns the stored visit document. A missing or undecodable
// document yields the default; any other read error is returned so that
// callers never save a default over data they could not see.
func (s *Store) loadVisits(ctx context.Context) (*model.VisitDocument, error) {
	doc := model.NewVisitDocument()
	ok, err := s.load(ctx, KindVisits, doc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.NewVisitDocument(), nil
	}
	doc.Normalize()
	return doc, nil
}

func (s *Store) loadContacts(ctx context.Context) ([]model.ContactRecord, error) {
	var contacts []model.ContactRecord
	ok, err := s.load(ctx, KindContacts, &contacts)
	if err != nil {
		return nil, err
	}
	if !ok || contacts == nil {
		return model.NewContactList(), nil
	}
	return contacts, nil
}

// load decodes the stored document into dst. It reports false when the
// document is missing or cannot be decoded and the default applies.
func (s *Store) load(ctx context.Context, kind Kind, dst any) (bool, error) {
	data, err := s.backend.Read(ctx, kind)
	if errors.Is(err, ErrBlobNotFound) {
		s.fallback(ctx, kind, "read", err)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.fallback(ctx, kind, "decode", err)
		return false, nil
	}
	return true, nil
}

func (s *Store) fallback(ctx context.Context, kind Kind, stage string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, ErrBlobNotFound) {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, "using default document",
		"kind", kind,
		"stage", stage,
		"error", err,
	)
	s.metrics.IncStoreLoadFallback(string(kind))
}

// readFailure aborts an update whose document could not be read.
func (s *Store) readFailure(ctx context.Context, kind Kind, err error) error {
	s.metrics.IncStoreWriteFailure(string(kind))
	s.logger.ErrorContext(ctx, "update aborted, document unreadable", "kind", kind, "error", err)
	return fmt.Errorf("%w: read %s: %w", ErrStoreWrite, kind, err)
}

func (s *Store) save(ctx context.Context, kind Kind, doc any) error {
	start := time.Now()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.metrics.IncStoreWriteFailure(string(kind))
		return fmt.Errorf("%w: encode %s: %v", ErrStoreWrite, kind, err)
	}

	if err := s.backend.Write(ctx, kind, data); err != nil {
		s.metrics.IncStoreWriteFailure(string(kind))
		s.logger.Error("failed to write document", "kind", kind, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrStoreWrite, kind, err)
	}

	s.metrics.ObserveStoreWriteDuration(time.Since(start))
	return nil
}
