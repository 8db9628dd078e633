// Package dto provides Data Transfer Objects for API requests and responses.
//
// JSON keys are camelCase to match the portfolio front end.
package dto

import (
	"github.com/folio/folio/internal/model"
	"github.com/folio/folio/internal/service"
)

// VisitRequest represents the request body for recording a visit.
type VisitRequest struct {
	VisitorID string `json:"visitorId,omitempty"`
	Page      string `json:"page,omitempty"`
}

// VisitResponse is returned after a visit is recorded.
type VisitResponse struct {
	Success        bool   `json:"success"`
	VisitorID      string `json:"visitorId"`
	TotalVisits    int64  `json:"totalVisits"`
	UniqueVisitors int    `json:"uniqueVisitors"`
}

// StatsResponse represents visit statistics.
type StatsResponse struct {
	TotalVisits    int64                         `json:"totalVisits"`
	UniqueVisitors int                           `json:"uniqueVisitors"`
	TodayVisits    int64                         `json:"todayVisits"`
	DailyStats     map[string]*model.DailyBucket `json:"dailyStats"`
}

// ToVisitResponse converts a service summary to its API form.
func ToVisitResponse(s *service.VisitSummary) VisitResponse {
	return VisitResponse{
		Success:        true,
		VisitorID:      s.VisitorID,
		TotalVisits:    s.TotalVisits,
		UniqueVisitors: s.UniqueVisitors,
	}
}

// ToStatsResponse converts service stats to their API form.
func ToStatsResponse(s *service.Stats) StatsResponse {
	daily := s.DailyStats
	if daily == nil {
		daily = map[string]*model.DailyBucket{}
	}
	return StatsResponse{
		TotalVisits:    s.TotalVisits,
		UniqueVisitors: s.UniqueVisitors,
		TodayVisits:    s.TodayVisits,
		DailyStats:     daily,
	}
}
