package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/carlosyadil/giettenerife-crm/internal/fieldmap"
	"github.com/carlosyadil/giettenerife-crm/internal/types"
)

const visitsTable = "visits"

// ListVisits returns every visit ordered by date descending, most recent
// first.
func ListVisits(ctx context.Context, hc *http.Client, baseURL string) ([]types.Visit, error) {
	return listVisits(ctx, hc, baseURL, "")
}

// ListVisitsByClient returns the visits of one client, date descending.
// A client with no visits yields an empty slice, not an error.
func ListVisitsByClient(ctx context.Context, hc *http.Client, baseURL, clientID string) ([]types.Visit, error) {
	return listVisits(ctx, hc, baseURL, clientID)
}

func listVisits(ctx context.Context, hc *http.Client, baseURL, clientID string) ([]types.Visit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", fieldmap.Visit.Column("date")+".desc")
	if clientID != "" {
		q.Set(fieldmap.Visit.Column("clientId"), eq(clientID))
	}
	rows, err := getRows(ctx, hc, baseURL, visitsTable, q)
	if err != nil {
		return nil, err
	}
	out := make([]types.Visit, 0, len(rows))
	for _, row := range rows {
		out = append(out, types.VisitFromFields(fieldmap.Visit.FromStorage(row)))
	}
	return out, nil
}

// GetVisit fetches a single visit by id.
func GetVisit(ctx context.Context, hc *http.Client, baseURL, id string) (*types.Visit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set(fieldmap.Visit.Column("id"), eq(id))
	rows, err := getRows(ctx, hc, baseURL, visitsTable, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, types.ErrNotFound
	}
	v := types.VisitFromFields(fieldmap.Visit.FromStorage(rows[0]))
	return &v, nil
}

// CreateVisit validates the request, stamps the acting user as owner and
// inserts the visit. A follow-up reminder is never created implicitly;
// that is the caller's second, independent call.
func CreateVisit(ctx context.Context, hc *http.Client, baseURL string, actor types.User, req types.CreateVisitRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}
	if actor.IsZero() {
		return types.ErrNoSession
	}
	row := fieldmap.Visit.ToStorage(req.Fields())
	row[fieldmap.OwnerColumn] = actor.ID
	return insertRow(ctx, hc, baseURL, visitsTable, row)
}

// UpdateVisit patches a visit's fields by id. Part of the extended
// variant; the minimal layer treats visits as immutable history.
func UpdateVisit(ctx context.Context, hc *http.Client, baseURL string, actor types.User, id string, req types.UpdateVisitRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if actor.IsZero() {
		return types.ErrNoSession
	}
	q := url.Values{}
	q.Set(fieldmap.Visit.Column("id"), eq(id))
	n, err := updateRows(ctx, hc, baseURL, visitsTable, q, fieldmap.Visit.ToStorage(req.Fields()))
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteVisit removes a visit by id. Part of the extended variant.
func DeleteVisit(ctx context.Context, hc *http.Client, baseURL, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q := url.Values{}
	q.Set(fieldmap.Visit.Column("id"), eq(id))
	return deleteRows(ctx, hc, baseURL, visitsTable, q)
}
