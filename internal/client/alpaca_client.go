package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yourorg/trading-dashboard/internal/config"
	"github.com/yourorg/trading-dashboard/internal/model"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const maxBarsPerPage = 10000

// AlpacaClient handles communication with the Alpaca brokerage and market
// data APIs.
type AlpacaClient struct {
	baseURL     string
	dataBaseURL string
	apiKey      string
	apiSecret   string
	maxRetries  uint64
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewAlpacaClient creates a new Alpaca API client
func NewAlpacaClient(cfg config.AlpacaConfig, logger *zap.Logger) *AlpacaClient {
	return &AlpacaClient{
		baseURL:     cfg.BaseURL,
		dataBaseURL: cfg.DataBaseURL,
		apiKey:      cfg.APIKey,
		apiSecret:   cfg.APISecret,
		maxRetries:  cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// alpacaBar is the wire shape of one bar from the Alpaca data API
type alpacaBar struct {
	Timestamp time.Time `json:"t"`
	Open      float64   `json:"o"`
	High      float64   `json:"h"`
	Low       float64   `json:"l"`
	Close     float64   `json:"c"`
	Volume    float64   `json:"v"`
}

type alpacaBarsResponse struct {
	Bars          []alpacaBar `json:"bars"`
	Symbol        string      `json:"symbol"`
	NextPageToken *string     `json:"next_page_token"`
}

// GetBars retrieves historical bars for a symbol, following pagination until
// the full date range is fetched. Bars are returned in ascending time order.
func (c *AlpacaClient) GetBars(ctx context.Context, symbol, timeframe, start, end string) ([]model.Bar, error) {
	if timeframe == "" {
		timeframe = "1Day"
	}

	var bars []model.Bar
	pageToken := ""

	for {
		params := url.Values{}
		params.Add("timeframe", timeframe)
		params.Add("start", start)
		params.Add("end", end)
		params.Add("limit", fmt.Sprintf("%d", maxBarsPerPage))
		params.Add("adjustment", "raw")
		if pageToken != "" {
			params.Add("page_token", pageToken)
		}

		reqURL := fmt.Sprintf("%s/v2/stocks/%s/bars?%s", c.dataBaseURL, symbol, params.Encode())

		var page alpacaBarsResponse
		if err := c.getJSON(ctx, reqURL, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch bars for %s: %w", symbol, err)
		}

		for _, b := range page.Bars {
			bars = append(bars, model.Bar{
				Timestamp: b.Timestamp,
				Open:      b.Open,
				High:      b.High,
				Low:       b.Low,
				Close:     b.Close,
				Volume:    b.Volume,
			})
		}

		if page.NextPageToken == nil || *page.NextPageToken == "" {
			break
		}
		pageToken = *page.NextPageToken
	}

	c.logger.Debug("Fetched bars from Alpaca",
		zap.String("symbol", symbol),
		zap.String("timeframe", timeframe),
		zap.Int("count", len(bars)))

	return bars, nil
}

// GetQuote retrieves the latest quote for a symbol
func (c *AlpacaClient) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	reqURL := fmt.Sprintf("%s/v2/stocks/%s/quotes/latest", c.dataBaseURL, symbol)

	var resp struct {
		Symbol string `json:"symbol"`
		Quote  struct {
			Timestamp time.Time `json:"t"`
			BidPrice  float64   `json:"bp"`
			BidSize   float64   `json:"bs"`
			AskPrice  float64   `json:"ap"`
			AskSize   float64   `json:"as"`
		} `json:"quote"`
	}
	if err := c.getJSON(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	return &model.Quote{
		Symbol:    symbol,
		BidPrice:  resp.Quote.BidPrice,
		BidSize:   resp.Quote.BidSize,
		AskPrice:  resp.Quote.AskPrice,
		AskSize:   resp.Quote.AskSize,
		Timestamp: resp.Quote.Timestamp,
	}, nil
}

// GetAssets retrieves all active tradable assets
func (c *AlpacaClient) GetAssets(ctx context.Context) ([]model.Asset, error) {
	reqURL := fmt.Sprintf("%s/v2/assets?status=active", c.baseURL)

	var assets []model.Asset
	if err := c.getJSON(ctx, reqURL, &assets); err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}
	return assets, nil
}

// GetAccount retrieves the current account snapshot
func (c *AlpacaClient) GetAccount(ctx context.Context) (*model.Account, error) {
	reqURL := fmt.Sprintf("%s/v2/account", c.baseURL)

	var account model.Account
	if err := c.getJSON(ctx, reqURL, &account); err != nil {
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &account, nil
}

// GetPositions retrieves all open positions
func (c *AlpacaClient) GetPositions(ctx context.Context) ([]model.Position, error) {
	reqURL := fmt.Sprintf("%s/v2/positions", c.baseURL)

	var positions []model.Position
	if err := c.getJSON(ctx, reqURL, &positions); err != nil {
		return nil, fmt.Errorf("failed to fetch positions: %w", err)
	}
	return positions, nil
}

// GetOrders retrieves orders filtered by status ("open", "closed" or "all")
func (c *AlpacaClient) GetOrders(ctx context.Context, status string) ([]model.Order, error) {
	if status == "" {
		status = "open"
	}
	reqURL := fmt.Sprintf("%s/v2/orders?status=%s", c.baseURL, url.QueryEscape(status))

	var orders []model.Order
	if err := c.getJSON(ctx, reqURL, &orders); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// CreateOrder submits a new order to the brokerage. Orders are never retried:
// a timeout after submission could otherwise double-fill.
func (c *AlpacaClient) CreateOrder(ctx context.Context, orderReq *model.OrderRequest) (*model.Order, error) {
	reqURL := fmt.Sprintf("%s/v2/orders", c.baseURL)

	body, err := json.Marshal(orderReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var order model.Order
	if err := c.do(req, &order); err != nil {
		c.logger.Error("Failed to submit order",
			zap.Error(err),
			zap.String("symbol", orderReq.Symbol),
			zap.String("side", orderReq.Side))
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	c.logger.Info("Order submitted",
		zap.String("id", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("side", order.Side))

	return &order, nil
}

// CancelOrder requests cancellation of an open order
func (c *AlpacaClient) CancelOrder(ctx context.Context, orderID string) error {
	reqURL := fmt.Sprintf("%s/v2/orders/%s", c.baseURL, url.PathEscape(orderID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}
	return nil
}

// getJSON performs an authenticated GET with exponential backoff on transient
// failures (network errors and 5xx responses).
func (c *AlpacaClient) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		return c.do(req, out)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)

	return backoff.RetryNotify(operation, policy, func(err error, next time.Duration) {
		c.logger.Warn("Alpaca request failed, retrying",
			zap.Error(err),
			zap.String("url", reqURL),
			zap.Duration("backoff", next))
	})
}

// do executes one authenticated request and decodes the response body into
// out (when non-nil). Client errors are wrapped as permanent so the backoff
// policy does not retry them.
func (c *AlpacaClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("APCA-API-KEY-ID", c.apiKey)
	req.Header.Set("APCA-API-SECRET-KEY", c.apiSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Alpaca API returned status code %d: %s", resp.StatusCode, string(bodyBytes))
	}
	if resp.StatusCode >= 400 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return backoff.Permanent(fmt.Errorf("Alpaca API returned status code %d: %s", resp.StatusCode, string(bodyBytes)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}
