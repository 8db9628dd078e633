package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/folio/folio/internal/metrics"
	"github.com/folio/folio/internal/model"
	"github.com/folio/folio/internal/store"
)

// visitorIDPrefix marks ids handed out by the server.
const visitorIDPrefix = "visitor_"

// VisitService records visits and reports visit statistics.
type VisitService struct {
	store   *store.Store
	logger  *slog.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

// NewVisitService creates a new VisitService.
func NewVisitService(st *store.Store, logger *slog.Logger, recorder metrics.Recorder, opts ...Option) *VisitService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	o := buildOptions(opts)
	return &VisitService{
		store:   st,
		logger:  logger.With("component", "service.visit"),
		metrics: recorder,
		now:     o.now,
	}
}

// VisitInput defines input for recording a visit.
type VisitInput struct {
	VisitorID string
	Page      string
}

// VisitSummary is returned after a visit is recorded.
type VisitSummary struct {
	VisitorID      string
	TotalVisits    int64
	UniqueVisitors int
}

// Stats is the read-only visit summary.
type Stats struct {
	TotalVisits    int64
	UniqueVisitors int
	TodayVisits    int64
	DailyStats     map[string]*model.DailyBucket
}

// RecordVisit counts one visit event. A known VisitorID bumps that visitor's
// counters; an unknown one registers a new visitor. Without a VisitorID only
// the totals change, and the summary carries a freshly generated id for the
// client to send next time.
func (s *VisitService) RecordVisit(ctx context.Context, input VisitInput) (*VisitSummary, error) {
	var (
		summary    VisitSummary
		newVisitor bool
	)

	err := s.store.UpdateVisits(ctx, func(doc *model.VisitDocument) error {
		now := s.now().UTC()

		doc.TotalVisits++

		if input.VisitorID != "" {
			if visitor := doc.FindVisitor(input.VisitorID); visitor != nil {
				visitor.Visits++
				visitor.LastVisit = &now
			} else {
				doc.UniqueVisitors = append(doc.UniqueVisitors, &model.VisitorRecord{
					ID:         input.VisitorID,
					FirstVisit: now,
					Visits:     1,
				})
				newVisitor = true
			}
		}

		doc.Bucket(model.DayKey(now)).Visits++

		summary.TotalVisits = doc.TotalVisits
		summary.UniqueVisitors = len(doc.UniqueVisitors)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}

	summary.VisitorID = input.VisitorID
	if summary.VisitorID == "" {
		summary.VisitorID = GenerateVisitorID()
	}

	s.metrics.IncVisitRecorded()
	if newVisitor {
		s.metrics.IncVisitorCreated()
	}

	s.logger.Debug("visit recorded",
		"visitor_id", summary.VisitorID,
		"new_visitor", newVisitor,
		"page", input.Page,
		"total_visits", summary.TotalVisits,
	)

	return &summary, nil
}

// GetStats returns the current totals. It never mutates the store.
func (s *VisitService) GetStats(ctx context.Context) *Stats {
	doc := s.store.LoadVisits(ctx)

	stats := &Stats{
		TotalVisits:    doc.TotalVisits,
		UniqueVisitors: len(doc.UniqueVisitors),
		DailyStats:     doc.DailyStats,
	}
	if today, ok := doc.DailyStats[model.DayKey(s.now())]; ok {
		stats.TodayVisits = today.Visits
	}
	return stats
}

// GenerateVisitorID returns a new opaque visitor id: a fixed prefix followed
// by a lower-case ULID (millisecond timestamp plus 80 random bits).
func GenerateVisitorID() string {
	return visitorIDPrefix + strings.ToLower(ulid.Make().String())
}
