// Package sheets fetches the external tracking table as a CSV snapshot. The
// table is exported fresh on every call; there is no caching across requests.
package sheets

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://docs.google.com/spreadsheets"

// Table is one snapshot of the tracking table, rows keyed by trimmed header
// name.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// HasColumns reports whether every named column is present in the snapshot.
func (t *Table) HasColumns(names ...string) bool {
	present := map[string]bool{}
	for _, h := range t.Headers {
		present[h] = true
	}
	for _, n := range names {
		if !present[n] {
			return false
		}
	}
	return true
}

// Client fetches CSV exports of one spreadsheet.
type Client struct {
	baseURL string
	sheetID string
	http    *http.Client
}

// NewClient creates a sheet client. baseURL is overridable for tests; pass ""
// for the Google Sheets export endpoint.
func NewClient(baseURL, sheetID string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		sheetID: sheetID,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchSnapshot downloads and parses the full current table export. The t
// query parameter busts any intermediate caching so every request sees a
// fresh snapshot.
func (c *Client) FetchSnapshot() (*Table, error) {
	url := fmt.Sprintf("%s/d/%s/export?format=csv&t=%d", c.baseURL, c.sheetID, time.Now().Unix())

	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet export returned status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	// Exported rows can be ragged; tolerate them instead of failing the fetch.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet CSV: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := map[string]string{}
		for i, v := range record {
			if i < len(headers) {
				row[headers[i]] = v
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}
