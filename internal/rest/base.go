// Package rest issues table-API requests against the hosted backend.
// Authentication headers are added by the caller's transport layer; the
// functions here only know tables, filters and row shapes.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/carlosyadil/giettenerife-crm/internal/types"
)

const basePath = "/rest/v1"

// eq renders a PostgREST equality filter value.
func eq(v string) string { return "eq." + v }

func tableURL(baseURL, table string, q url.Values) string {
	u := fmt.Sprintf("%s%s/%s", baseURL, basePath, table)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// getRows fetches all rows matching the query. The backend always answers
// a JSON array, possibly empty.
func getRows(ctx context.Context, hc *http.Client, baseURL, table string, q url.Values) ([]map[string]any, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, tableURL(baseURL, table, q), nil)
	if err != nil {
		return nil, err
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr("get "+table, resp)
	}
	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// insertRow inserts a single row. The backend assigns the id and the
// created_at timestamp; we ask for a minimal response.
func insertRow(ctx context.Context, hc *http.Client, baseURL, table string, row map[string]any) error {
	body, err := json.Marshal([]map[string]any{row})
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, tableURL(baseURL, table, nil), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Prefer", "return=minimal")

	resp, err := hc.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return statusErr("insert "+table, resp)
	}
	return nil
}

// updateRows patches all rows matching the query and returns how many
// were touched. Asking for the representation is what lets us distinguish
// "updated" from "no such row".
func updateRows(ctx context.Context, hc *http.Client, baseURL, table string, q url.Values, fields map[string]any) (int, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return 0, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, tableURL(baseURL, table, q), bytes.NewBuffer(body))
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Prefer", "return=representation")

	resp, err := hc.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, statusErr("update "+table, resp)
	}
	var rows []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// deleteRows removes all rows matching the query. Row-level policy on the
// backend decides whether the caller may touch them.
func deleteRows(ctx context.Context, hc *http.Client, baseURL, table string, q url.Values) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, tableURL(baseURL, table, q), nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Prefer", "return=minimal")

	resp, err := hc.Do(httpReq)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return statusErr("delete "+table, resp)
	}
	return nil
}

func statusErr(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return types.ErrorFromStatus(op, resp.StatusCode, string(b))
}
