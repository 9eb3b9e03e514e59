package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// VisitType classifies the purpose of a visit to a workshop.
type VisitType string

const (
	VisitFirst     VisitType = "Primera Visita"
	VisitFollowUp  VisitType = "Seguimiento"
	VisitAfterSale VisitType = "Postventa"
	VisitClosing   VisitType = "Cierre"
)

// VisitResult records the commercial outcome of a visit.
type VisitResult string

const (
	ResultInterested    VisitResult = "Interesado"
	ResultNotInterested VisitResult = "No Interesado"
	ResultPending       VisitResult = "Pendiente"
	ResultSold          VisitResult = "Vendido"
)

// Client is a workshop managed by a sales representative.
// The owning user is a storage-level column and never part of the entity.
type Client struct {
	ID            string
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	City          string
	Notes         string
	CreatedAt     time.Time
}

// Visit is a logged visit to a client. Once created it is a history
// record; only the extended update/delete operations may touch it.
type Visit struct {
	ID           string
	ClientID     string
	Date         time.Time
	Type         VisitType
	Result       VisitResult
	Notes        string
	FollowUpDate *time.Time
}

// Reminder is a scheduled follow-up task tied to a client.
type Reminder struct {
	ID        string
	ClientID  string
	Title     string
	Date      time.Time
	Completed bool
}

// User identifies the authenticated actor. It is obtained from the
// session gateway per call and is never persisted as an entity.
type User struct {
	ID    string
	Email string
}

// IsZero reports whether u carries no identity.
func (u User) IsZero() bool { return u.ID == "" }

// ------------------------------
// Field-map decoding
// ------------------------------

// ClientFromFields builds a Client from an application-convention field map
// as produced by the field mapper.
func ClientFromFields(f map[string]any) Client {
	return Client{
		ID:            str(f["id"]),
		Name:          str(f["name"]),
		ContactPerson: str(f["contactPerson"]),
		Phone:         str(f["phone"]),
		Email:         str(f["email"]),
		Address:       str(f["address"]),
		City:          str(f["city"]),
		Notes:         str(f["notes"]),
		CreatedAt:     timestamp(f["createdAt"]),
	}
}

// VisitFromFields builds a Visit from an application-convention field map.
func VisitFromFields(f map[string]any) Visit {
	v := Visit{
		ID:       str(f["id"]),
		ClientID: str(f["clientId"]),
		Date:     timestamp(f["date"]),
		Type:     VisitType(str(f["type"])),
		Result:   VisitResult(str(f["result"])),
		Notes:    str(f["notes"]),
	}
	if fu := timestamp(f["followUpDate"]); !fu.IsZero() {
		v.FollowUpDate = &fu
	}
	return v
}

// ReminderFromFields builds a Reminder from an application-convention field map.
func ReminderFromFields(f map[string]any) Reminder {
	completed, _ := f["completed"].(bool)
	return Reminder{
		ID:        str(f["id"]),
		ClientID:  str(f["clientId"]),
		Title:     str(f["title"]),
		Date:      timestamp(f["date"]),
		Completed: completed,
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// timestamp parses the timestamp formats the table API emits. Rows decoded
// from JSON carry timestamps as strings; a zero time means absent or null.
func timestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts
			}
		}
	}
	return time.Time{}
}

// FormatTime renders a timestamp the way the table API expects it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
