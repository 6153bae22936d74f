package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNotificacionJSONFieldNames(t *testing.T) {
	n := Notificacion{
		ID:        3,
		EmitterID: 1,
		Title:     "Incendio",
		Body:      "Fuego en zona A",
		CreatedAt: LocalDateTime{Time: time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local)},
		Active:    true,
		Receivers: []int{10, 11},
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got := string(data)
	want := `{"id":3,"emitterId":1,"title":"Incendio","body":"Fuego en zona A",` +
		`"createdAt":"2025-06-01T14:30:00","active":true,"receivers":[10,11]}`
	if got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestLocalDateTimeDropsSubSecondAndOffset(t *testing.T) {
	ts := LocalDateTime{Time: time.Date(2025, 6, 1, 14, 30, 5, 123456789, time.Local)}

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(data); got != `"2025-06-01T14:30:05"` {
		t.Errorf("json = %s, want \"2025-06-01T14:30:05\"", got)
	}
	if strings.ContainsAny(string(data), "Z+") {
		t.Errorf("json = %s carries a timezone offset", data)
	}
}

func TestLocalDateTimeUnmarshal(t *testing.T) {
	var ts LocalDateTime
	if err := json.Unmarshal([]byte(`"2025-06-01T14:30:05"`), &ts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(2025, 6, 1, 14, 30, 5, 0, time.Local)
	if !ts.Equal(want) {
		t.Errorf("parsed = %v, want %v", ts.Time, want)
	}

	if err := json.Unmarshal([]byte(`"01/06/2025"`), &ts); err == nil {
		t.Error("unmarshal of non ISO-8601 value succeeded")
	}
}

func TestLocalDateTimeScan(t *testing.T) {
	now := time.Now()

	var ts LocalDateTime
	if err := ts.Scan(now); err != nil {
		t.Fatalf("scan time.Time: %v", err)
	}
	if !ts.Equal(now) {
		t.Errorf("scanned = %v, want %v", ts.Time, now)
	}

	if err := ts.Scan("2025-06-01"); err == nil {
		t.Error("scan of string succeeded, want error")
	}
}
