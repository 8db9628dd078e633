package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDayKey_UsesUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"utc midday", time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC), "2024-03-09"},
		{"utc midnight", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), "2024-03-09"},
		{"ahead of utc", time.Date(2024, 3, 10, 1, 30, 0, 0, time.FixedZone("UTC+7", 7*3600)), "2024-03-09"},
		{"behind utc", time.Date(2024, 3, 9, 22, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)), "2024-03-10"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DayKey(tt.in); got != tt.want {
				t.Errorf("DayKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVisitDocument_FindVisitor(t *testing.T) {
	t.Parallel()

	doc := NewVisitDocument()
	doc.UniqueVisitors = append(doc.UniqueVisitors,
		&VisitorRecord{ID: "visitor_a", Visits: 1},
		&VisitorRecord{ID: "visitor_b", Visits: 3},
	)

	if v := doc.FindVisitor("visitor_b"); v == nil || v.Visits != 3 {
		t.Fatalf("expected visitor_b with 3 visits, got %+v", v)
	}
	if v := doc.FindVisitor("visitor_c"); v != nil {
		t.Fatalf("expected nil for unknown visitor, got %+v", v)
	}
}

func TestVisitDocument_Bucket(t *testing.T) {
	t.Parallel()

	doc := NewVisitDocument()

	b := doc.Bucket("2024-01-01")
	b.Visits++

	if len(doc.DailyStats) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(doc.DailyStats))
	}
	if again := doc.Bucket("2024-01-01"); again != b {
		t.Error("expected Bucket to return the existing bucket")
	}
	if doc.DailyStats["2024-01-01"].Visits != 1 {
		t.Errorf("expected 1 visit, got %d", doc.DailyStats["2024-01-01"].Visits)
	}
}

func TestVisitDocument_NormalizeSparseJSON(t *testing.T) {
	t.Parallel()

	var doc VisitDocument
	if err := json.Unmarshal([]byte(`{"totalVisits":4}`), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	doc.Normalize()

	if doc.TotalVisits != 4 {
		t.Errorf("TotalVisits = %d, want 4", doc.TotalVisits)
	}
	if doc.UniqueVisitors == nil || doc.DailyStats == nil {
		t.Error("expected Normalize to allocate empty collections")
	}
}

func TestVisitDocument_NormalizeNullElements(t *testing.T) {
	t.Parallel()

	body := `{"totalVisits":3,"uniqueVisitors":[null,{"id":"visitor_a","visits":3},null],"dailyStats":{"2024-05-01":null,"2024-05-02":{"visits":3}}}`

	var doc VisitDocument
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	doc.Normalize()

	if len(doc.UniqueVisitors) != 1 || doc.UniqueVisitors[0].ID != "visitor_a" {
		t.Errorf("UniqueVisitors = %+v, want only visitor_a", doc.UniqueVisitors)
	}
	if doc.FindVisitor("missing") != nil {
		t.Error("FindVisitor(missing) should be nil")
	}
	if b := doc.DailyStats["2024-05-01"]; b == nil || b.Visits != 0 {
		t.Errorf("null bucket = %+v, want zero bucket", b)
	}
	if b := doc.DailyStats["2024-05-02"]; b == nil || b.Visits != 3 {
		t.Errorf("bucket 2024-05-02 = %+v, want 3 visits", b)
	}
}

func TestNewVisitDocument_EncodesEmptyCollections(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewVisitDocument())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"totalVisits":0,"uniqueVisitors":[],"dailyStats":{}}`
	if string(data) != want {
		t.Errorf("encoded = %s, want %s", data, want)
	}
}

func TestVisitorRecord_LastVisitOmittedUntilSet(t *testing.T) {
	t.Parallel()

	rec := VisitorRecord{
		ID:         "visitor_a",
		FirstVisit: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Visits:     1,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "lastVisit") {
		t.Errorf("expected lastVisit to be omitted, got %s", data)
	}

	last := rec.FirstVisit.Add(time.Hour)
	rec.LastVisit = &last
	data, err = json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"lastVisit":"2024-01-01T01:00:00Z"`) {
		t.Errorf("expected lastVisit in output, got %s", data)
	}
}
