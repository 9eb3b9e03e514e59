package crm

import "github.com/carlosyadil/giettenerife-crm/internal/types"

// Public type aliases so SDK consumers can import only the crm package.

// Domain entities
type (
	Client   = types.Client
	Visit    = types.Visit
	Reminder = types.Reminder
	User     = types.User
)

// Enumerations
type (
	VisitType   = types.VisitType
	VisitResult = types.VisitResult
)

const (
	VisitFirst     = types.VisitFirst
	VisitFollowUp  = types.VisitFollowUp
	VisitAfterSale = types.VisitAfterSale
	VisitClosing   = types.VisitClosing

	ResultInterested    = types.ResultInterested
	ResultNotInterested = types.ResultNotInterested
	ResultPending       = types.ResultPending
	ResultSold          = types.ResultSold
)

// Requests
type (
	CreateClientRequest   = types.CreateClientRequest
	UpdateClientRequest   = types.UpdateClientRequest
	CreateVisitRequest    = types.CreateVisitRequest
	UpdateVisitRequest    = types.UpdateVisitRequest
	CreateReminderRequest = types.CreateReminderRequest
	UpdateReminderRequest = types.UpdateReminderRequest
)

// Errors re-exported in errors.go
