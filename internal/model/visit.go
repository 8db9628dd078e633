// Package model defines domain entities for the application.
package model

import "time"

// DateLayout is the layout of daily bucket keys (UTC calendar date).
const DateLayout = "2006-01-02"

// VisitDocument is the whole visit-tracking dataset, stored as one document.
type VisitDocument struct {
	TotalVisits    int64                   `json:"totalVisits"`
	UniqueVisitors []*VisitorRecord        `json:"uniqueVisitors"`
	DailyStats     map[string]*DailyBucket `json:"dailyStats"`
}

// VisitorRecord tracks a single visitor id across visits.
type VisitorRecord struct {
	ID         string     `json:"id"`
	FirstVisit time.Time  `json:"firstVisit"`
	LastVisit  *time.Time `json:"lastVisit,omitempty"` // unset until the second sighting
	Visits     int64      `json:"visits"`
}

// DailyBucket aggregates visits for one UTC calendar day.
type DailyBucket struct {
	Visits int64 `json:"visits"`
	// UniqueVisitors is reserved. Visit recording does not increment it.
	UniqueVisitors int64 `json:"uniqueVisitors"`
}

// NewVisitDocument returns the empty visit document.
func NewVisitDocument() *VisitDocument {
	return &VisitDocument{
		UniqueVisitors: []*VisitorRecord{},
		DailyStats:     map[string]*DailyBucket{},
	}
}

// Normalize repairs nulls left by sparse JSON: nil collections become empty,
// null visitor entries are dropped and null buckets become zero buckets.
func (d *VisitDocument) Normalize() {
	visitors := make([]*VisitorRecord, 0, len(d.UniqueVisitors))
	for _, v := range d.UniqueVisitors {
		if v != nil {
			visitors = append(visitors, v)
		}
	}
	d.UniqueVisitors = visitors

	if d.DailyStats == nil {
		d.DailyStats = map[string]*DailyBucket{}
	}
	for day, b := range d.DailyStats {
		if b == nil {
			d.DailyStats[day] = &DailyBucket{}
		}
	}
}

// FindVisitor returns the record for id, or nil if it has not been seen.
func (d *VisitDocument) FindVisitor(id string) *VisitorRecord {
	for _, v := range d.UniqueVisitors {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Bucket returns the bucket for day, creating it if missing.
func (d *VisitDocument) Bucket(day string) *DailyBucket {
	b, ok := d.DailyStats[day]
	if !ok {
		b = &DailyBucket{}
		d.DailyStats[day] = b
	}
	return b
}

// DayKey formats t as a daily bucket key in UTC.
func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
