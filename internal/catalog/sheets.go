package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource loads the price list from a Google Sheets range. Expected
// columns: platform, type, count, audience, price, note.
type SheetsSource struct {
	spreadsheetID string
	readRange     string
	opts          []option.ClientOption
}

// NewSheetsSource creates a Google Sheets catalog source authenticated
// with an API key.
func NewSheetsSource(spreadsheetID, readRange, apiKey string) (*SheetsSource, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("catalog: spreadsheet id is required")
	}
	if strings.TrimSpace(readRange) == "" {
		readRange = "Prices!A2:F"
	}
	return &SheetsSource{
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		opts:          []option.ClientOption{option.WithAPIKey(apiKey)},
	}, nil
}

// Load fetches the sheet range and converts rows into offers. Rows with a
// non-numeric count or price are skipped, not treated as errors.
func (s *SheetsSource) Load(ctx context.Context) ([]ServiceOffer, error) {
	svc, err := sheets.NewService(ctx, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to create sheets service: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read sheet %s: %w", s.spreadsheetID, err)
	}

	offers := make([]ServiceOffer, 0, len(resp.Values))
	for _, row := range resp.Values {
		offer, ok := offerFromRow(row)
		if !ok {
			continue
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

func offerFromRow(row []interface{}) (ServiceOffer, bool) {
	cell := func(i int) string {
		if i >= len(row) {
			return ""
		}
		s, _ := row[i].(string)
		return strings.TrimSpace(s)
	}

	platform := cell(0)
	svcType := cell(1)
	if platform == "" || svcType == "" {
		return ServiceOffer{}, false
	}

	count, err := strconv.Atoi(cell(2))
	if err != nil || count <= 0 {
		return ServiceOffer{}, false
	}
	price, err := strconv.Atoi(cell(4))
	if err != nil || price <= 0 {
		return ServiceOffer{}, false
	}

	return ServiceOffer{
		Platform: platform,
		Type:     svcType,
		Count:    count,
		Audience: cell(3),
		Price:    price,
		Note:     cell(5),
	}, true
}
