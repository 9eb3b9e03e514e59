package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/carlosyadil/giettenerife-crm/internal/fieldmap"
	"github.com/carlosyadil/giettenerife-crm/internal/types"
)

const remindersTable = "reminders"

// ListReminders returns every reminder ordered by date ascending, the
// soonest first.
func ListReminders(ctx context.Context, hc *http.Client, baseURL string) ([]types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", fieldmap.Reminder.Column("date")+".asc")
	rows, err := getRows(ctx, hc, baseURL, remindersTable, q)
	if err != nil {
		return nil, err
	}
	out := make([]types.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.ReminderFromFields(fieldmap.Reminder.FromStorage(row)))
	}
	return out, nil
}

// GetReminder fetches a single reminder by id.
func GetReminder(ctx context.Context, hc *http.Client, baseURL, id string) (*types.Reminder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set(fieldmap.Reminder.Column("id"), eq(id))
	rows, err := getRows(ctx, hc, baseURL, remindersTable, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.ErrNotFound
	}
	r := types.ReminderFromFields(fieldmap.Reminder.FromStorage(rows[0]))
	return &r, nil
}

// CreateReminder validates the request, stamps the acting user as owner
// and inserts the reminder with completed false.
func CreateReminder(ctx context.Context, hc *http.Client, baseURL string, actor types.User, req types.CreateReminderRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if actor.IsZero() {
		return types.ErrNoSession
	}
	row := fieldmap.Reminder.ToStorage(req.Fields())
	row[fieldmap.OwnerColumn] = actor.ID
	return insertRow(ctx, hc, baseURL, remindersTable, row)
}

// UpdateReminder patches a reminder's fields by id. Toggling completion
// is an update carrying only the completed field.
func UpdateReminder(ctx context.Context, hc *http.Client, baseURL string, actor types.User, id string, req types.UpdateReminderRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if actor.IsZero() {
		return types.ErrNoSession
	}
	q := url.Values{}
	q.Set(fieldmap.Reminder.Column("id"), eq(id))
	n, err := updateRows(ctx, hc, baseURL, remindersTable, q, fieldmap.Reminder.ToStorage(req.Fields()))
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteReminder removes a reminder by id.
func DeleteReminder(ctx context.Context, hc *http.Client, baseURL, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q := url.Values{}
	q.Set(fieldmap.Reminder.Column("id"), eq(id))
	return deleteRows(ctx, hc, baseURL, remindersTable, q)
}
