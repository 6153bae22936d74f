package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Notificacion represents an emergency notification addressed to one or
// more receivers. It maps to the "notificacion_emergencia" table; the
// receiver list lives in the companion "notificacion_receptores" table.
type Notificacion struct {
	ID        int           `json:"id" db:"id_notificacion"`
	EmitterID int           `json:"emitterId" db:"id_emisor"`
	Title     string        `json:"title" db:"titulo_notificacion"`
	Body      string        `json:"body" db:"contenido_notificacion"`
	CreatedAt LocalDateTime `json:"createdAt" db:"fecha_notificacion"`
	Active    bool          `json:"active" db:"estado_notificacion"`
	Receivers []int         `json:"receivers" db:"-"`
}

// NotificacionPatch is a partial update. Nil fields are left untouched;
// a non-nil empty receiver list is rejected by the service.
type NotificacionPatch struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Active    *bool   `json:"active"`
	Receivers []int   `json:"receivers"`
}

const localDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a wall-clock timestamp without timezone offset. Clients
// parse the field as an ISO-8601 local date-time, so it must not serialize
// with an offset the way time.Time does.
type LocalDateTime struct {
	time.Time
}

// NowLocal returns the current wall-clock time as a LocalDateTime.
func NowLocal() LocalDateTime {
	return LocalDateTime{Time: time.Now()}
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(localDateTimeLayout) + `"`), nil
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid local date-time %s", s)
	}
	parsed, err := time.ParseInLocation(localDateTimeLayout, s[1:len(s)-1], time.Local)
	if err != nil {
		return fmt.Errorf("parse local date-time: %w", err)
	}
	t.Time = parsed
	return nil
}

// Value implements driver.Valuer so the wrapped time reaches the driver
// as a plain timestamp.
func (t LocalDateTime) Value() (driver.Value, error) {
	return t.Time, nil
}

// Scan implements sql.Scanner for TIMESTAMP columns.
func (t *LocalDateTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalDateTime", src)
	}
}
