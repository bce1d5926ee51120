package api

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/entity"
	"github.com/haneulsoft/customs-fx-dashboard/internal/domain/service"
	"github.com/haneulsoft/customs-fx-dashboard/internal/infrastructure/logger"
)

const (
	customsBaseURL = "https://apis.data.go.kr/1220000/retrieveTrifFxrtInfo"
	fxRatePath     = "/getRetrieveTrifFxrtInfo"
)

// CustomsAPIClient fetches weekly tariff exchange rates from the customs
// authority's open API. It is one tier of the rate fallback chain: every
// failure mode (missing credential, transport error, bad payload, empty
// result) surfaces as an error so the caller can move to the next tier.
type CustomsAPIClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     logger.Logger
}

// NewCustomsAPIClient creates a new customs API client. An empty serviceKey
// is a supported state: FetchWeek then reports ErrNoData without any
// network call.
func NewCustomsAPIClient(serviceKey string, httpClient *http.Client, log logger.Logger) *CustomsAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CustomsAPIClient{
		baseURL:    customsBaseURL,
		serviceKey: serviceKey,
		httpClient: httpClient,
		logger:     log,
	}
}

// SetBaseURL overrides the upstream endpoint, for tests and local stubs.
func (c *CustomsAPIClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// customsResponse represents the XML response structure from the customs API
type customsResponse struct {
	XMLName xml.Name      `xml:"trifFxrtInfoQryRtnVo"`
	Count   int           `xml:"tCnt"`
	Items   []customsItem `xml:"trifFxrtInfoQryRsltVo"`
}

// customsItem is one currency entry of the weekly feed
type customsItem struct {
	CountryCode   string `xml:"cntySgn"`
	CurrencyName  string `xml:"mtryUtNm"`
	CurrencyCode  string `xml:"currSgn"`
	Rate          string `xml:"fxrt"`
	ApplyBeginDay string `xml:"aplyBgnDt"`
	DirectionCode string `xml:"imexTp"`
}

// Name identifies the client in fallback-chain logs.
func (c *CustomsAPIClient) Name() string {
	return "customs-api"
}

// FetchWeek retrieves the rate records for the week anchored at the given
// Sunday. Exactly one request is attempted; there is no retry.
func (c *CustomsAPIClient) FetchWeek(ctx context.Context, anchor time.Time, direction entity.Direction) ([]entity.RateRecord, error) {
	if c.serviceKey == "" {
		return nil, fmt.Errorf("no service key configured: %w", service.ErrNoData)
	}

	compactDate := anchor.Format("20060102")

	params := url.Values{}
	params.Set("serviceKey", c.serviceKey)
	params.Set("aplyBgnDt", compactDate)
	params.Set("weekFxrtTpcd", direction.Code())

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, fxRatePath, params.Encode())

	c.logger.Debug("Fetching weekly rates", map[string]interface{}{
		"anchor":    compactDate,
		"direction": direction,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned error status: %d", resp.StatusCode)
	}

	var customsResp customsResponse
	if err := xml.Unmarshal(bodyBytes, &customsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	records := c.normalize(customsResp.Items, anchor, direction)
	if len(records) == 0 {
		return nil, fmt.Errorf("no valid rate records for %s (%s)", compactDate, direction)
	}

	c.logger.Info("Weekly rates fetched", map[string]interface{}{
		"anchor":    compactDate,
		"direction": direction,
		"records":   len(records),
		"received":  len(customsResp.Items),
	})

	return records, nil
}

// normalize converts upstream items into validated rate records. Items whose
// rate field does not parse to a finite non-negative number are discarded, as
// are items dated outside the queried week: when the feed lags it answers an
// anchor query with the previous week's rates, and accepting those would put
// records with a foreign date into the anchor's bucket.
func (c *CustomsAPIClient) normalize(items []customsItem, anchor time.Time, direction entity.Direction) []entity.RateRecord {
	anchorDate := anchor.Format("2006-01-02")
	records := make([]entity.RateRecord, 0, len(items))

	for _, item := range items {
		rate, err := strconv.ParseFloat(item.Rate, 64)
		if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
			c.logger.Warn("Discarding item with unparseable rate", map[string]interface{}{
				"currency": item.CurrencyCode,
				"rate":     item.Rate,
			})
			continue
		}

		itemDate := formatItemDate(item.ApplyBeginDay, anchor)
		if itemDate != anchorDate {
			c.logger.Warn("Discarding item dated outside queried week", map[string]interface{}{
				"currency":  item.CurrencyCode,
				"item_date": itemDate,
				"anchor":    anchorDate,
			})
			continue
		}

		record := entity.NewRateRecord(
			item.CountryCode,
			item.CurrencyName,
			item.CurrencyCode,
			rate,
			itemDate,
			direction,
		)

		if err := record.Validate(); err != nil {
			c.logger.Warn("Discarding invalid record", map[string]interface{}{
				"currency": item.CurrencyCode,
				"error":    err.Error(),
			})
			continue
		}

		records = append(records, record)
	}

	return records
}

// formatItemDate converts a compact upstream date ("20240107") to dashed
// form, falling back to the anchor date when the item carries none.
func formatItemDate(compact string, anchor time.Time) string {
	parsed, err := time.Parse("20060102", compact)
	if err != nil {
		return anchor.Format("2006-01-02")
	}
	return parsed.Format("2006-01-02")
}
