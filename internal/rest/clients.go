package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/carlosyadil/giettenerife-crm/internal/fieldmap"
	"github.com/carlosyadil/giettenerife-crm/internal/types"
)

const clientsTable = "clients"

// ListClients returns every client visible to the bearer, ordered by name
// ascending. The ordering is part of the data layer's contract.
func ListClients(ctx context.Context, hc *http.Client, baseURL string) ([]types.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", fieldmap.Client.Column("name")+".asc")
	rows, err := getRows(ctx, hc, baseURL, clientsTable, q)
	if err != nil {
		return nil, err
	}
	out := make([]types.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.ClientFromFields(fieldmap.Client.FromStorage(row)))
	}
	return out, nil
}

// GetClient fetches a single client by id.
func GetClient(ctx context.Context, hc *http.Client, baseURL, id string) (*types.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set(fieldmap.Client.Column("id"), eq(id))
	rows, err := getRows(ctx, hc, baseURL, clientsTable, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.ErrNotFound
	}
	c := types.ClientFromFields(fieldmap.Client.FromStorage(rows[0]))
	return &c, nil
}

// CreateClient validates the request, stamps the acting user as owner and
// inserts the row. The owner is never supplied by the caller's partial.
func CreateClient(ctx context.Context, hc *http.Client, baseURL string, actor types.User, req types.CreateClientRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if actor.IsZero() {
		return types.ErrNoSession
	}
	row := fieldmap.Client.ToStorage(req.Fields())
	row[fieldmap.OwnerColumn] = actor.ID
	return insertRow(ctx, hc, baseURL, clientsTable, row)
}

// UpdateClient patches the client's mutable fields by id.
func UpdateClient(ctx context.Context, hc *http.Client, baseURL string, actor types.User, id string, req types.UpdateClientRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if actor.IsZero() {
		return types.ErrNoSession
	}
	q := url.Values{}
	q.Set(fieldmap.Client.Column("id"), eq(id))
	n, err := updateRows(ctx, hc, baseURL, clientsTable, q, fieldmap.Client.ToStorage(req.Fields()))
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteClient removes the client by id. The backend's referential rules
// cascade to the client's visits and reminders; no explicit cascade is
// issued from here.
func DeleteClient(ctx context.Context, hc *http.Client, baseURL, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q := url.Values{}
	q.Set(fieldmap.Client.Column("id"), eq(id))
	return deleteRows(ctx, hc, baseURL, clientsTable, q)
}
