package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jask/mapsleads/internal/contacts"
)

// ListRecords fetches every scraped contact. An empty array means no data yet.
func (c *Client) ListRecords(ctx context.Context) ([]contacts.Record, error) {
	const op = "list records"

	resp, err := c.do(ctx, op, http.MethodGet, c.paths.ListRecordsPath, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !success(resp) {
		return nil, rejected(op, resp)
	}
	var records []contacts.Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", op, err)
	}
	if records == nil {
		records = []contacts.Record{}
	}
	return records, nil
}
