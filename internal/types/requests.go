package types

import "time"

// ------------------------------
// Request Types
// ------------------------------
//
// Create requests carry the full field set for a new row. Update requests
// use pointer fields; nil means "leave untouched" and the field is omitted
// from the partial sent to the backend.

// CreateClientRequest holds parameters for a new client.
type CreateClientRequest struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	City          string
	Notes         string
}

// Validate checks required fields before any network dispatch.
func (r CreateClientRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Entity: "client", Field: "name"}
	}
	return nil
}

// Fields returns the application-convention partial for this request.
func (r CreateClientRequest) Fields() map[string]any {
	return map[string]any{
		"name":          r.Name,
		"contactPerson": r.ContactPerson,
		"phone":         r.Phone,
		"email":         r.Email,
		"address":       r.Address,
		"city":          r.City,
		"notes":         r.Notes,
	}
}

// UpdateClientRequest holds the mutable fields of a client.
type UpdateClientRequest struct {
	Name          *string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
	City          *string
	Notes         *string
}

// Fields returns only the fields that were set.
func (r UpdateClientRequest) Fields() map[string]any {
	f := map[string]any{}
	putStr(f, "name", r.Name)
	putStr(f, "contactPerson", r.ContactPerson)
	putStr(f, "phone", r.Phone)
	putStr(f, "email", r.Email)
	putStr(f, "address", r.Address)
	putStr(f, "city", r.City)
	putStr(f, "notes", r.Notes)
	return f
}

// CreateVisitRequest holds parameters for a new visit.
type CreateVisitRequest struct {
	ClientID     string
	Date         time.Time
	Type         VisitType
	Result       VisitResult
	Notes        string
	FollowUpDate *time.Time
}

// Validate checks required fields before any network dispatch.
func (r CreateVisitRequest) Validate() error {
	if r.ClientID == "" {
		return &ValidationError{Entity: "visit", Field: "clientId"}
	}
	if r.Date.IsZero() {
		return &ValidationError{Entity: "visit", Field: "date"}
	}
	return nil
}

// Fields returns the application-convention partial for this request.
func (r CreateVisitRequest) Fields() map[string]any {
	f := map[string]any{
		"clientId": r.ClientID,
		"date":     FormatTime(r.Date),
		"type":     string(r.Type),
		"result":   string(r.Result),
		"notes":    r.Notes,
	}
	if r.FollowUpDate != nil {
		f["followUpDate"] = FormatTime(*r.FollowUpDate)
	}
	return f
}

// UpdateVisitRequest holds the mutable fields of a visit.
type UpdateVisitRequest struct {
	Date         *time.Time
	Type         *VisitType
	Result       *VisitResult
	Notes        *string
	FollowUpDate *time.Time
}

// Fields returns only the fields that were set.
func (r UpdateVisitRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.Date != nil {
		f["date"] = FormatTime(*r.Date)
	}
	if r.Type != nil {
		f["type"] = string(*r.Type)
	}
	if r.Result != nil {
		f["result"] = string(*r.Result)
	}
	putStr(f, "notes", r.Notes)
	if r.FollowUpDate != nil {
		f["followUpDate"] = FormatTime(*r.FollowUpDate)
	}
	return f
}

// CreateReminderRequest holds parameters for a new reminder.
type CreateReminderRequest struct {
	ClientID string
	Title    string
	Date     time.Time
}

// Validate checks required fields before any network dispatch.
func (r CreateReminderRequest) Validate() error {
	if r.ClientID == "" {
		return &ValidationError{Entity: "reminder", Field: "clientId"}
	}
	if r.Title == "" {
		return &ValidationError{Entity: "reminder", Field: "title"}
	}
	if r.Date.IsZero() {
		return &ValidationError{Entity: "reminder", Field: "date"}
	}
	return nil
}

// Fields returns the application-convention partial for this request.
// Completed always starts out false.
func (r CreateReminderRequest) Fields() map[string]any {
	return map[string]any{
		"clientId":  r.ClientID,
		"title":     r.Title,
		"date":      FormatTime(r.Date),
		"completed": false,
	}
}

// UpdateReminderRequest holds the mutable fields of a reminder.
type UpdateReminderRequest struct {
	Title     *string
	Date      *time.Time
	Completed *bool
}

// Fields returns only the fields that were set.
func (r UpdateReminderRequest) Fields() map[string]any {
	f := map[string]any{}
	putStr(f, "title", r.Title)
	if r.Date != nil {
		f["date"] = FormatTime(*r.Date)
	}
	if r.Completed != nil {
		f["completed"] = *r.Completed
	}
	return f
}

func putStr(f map[string]any, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}
