package tikhub

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/glisdarx/beee-media/internal/constants"
	"github.com/glisdarx/beee-media/internal/util"
	"github.com/glisdarx/beee-media/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Client talks to the TikHub data API. Each call is a single attempt; there is
// no retry or backoff.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: constants.APIConfig.RequestTimeout,
		},
		timeout: constants.APIConfig.RequestTimeout,
		logger:  logger,
	}
}

// WithTimeout overrides the per-call timeout (client and context).
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	c.httpClient.Timeout = d
	return c
}

// SearchGeneral runs the TikTok general search and returns the raw result items.
func (c *Client) SearchGeneral(ctx context.Context, keyword string) ([]gjson.Result, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	params.Set("offset", strconv.Itoa(constants.SearchParams.Offset))
	params.Set("count", strconv.Itoa(constants.SearchParams.Count))
	params.Set("sort_type", strconv.Itoa(constants.SearchParams.SortType))
	params.Set("publish_time", strconv.Itoa(constants.SearchParams.PublishTime))

	return c.Get(ctx, constants.APIConfig.SearchPath, params)
}

// FetchTrending returns the raw Twitter/X trending entries for a country.
func (c *Client) FetchTrending(ctx context.Context, country string) ([]gjson.Result, error) {
	params := url.Values{}
	params.Set("country", country)

	return c.Get(ctx, constants.APIConfig.TrendsPath, params)
}

// Get performs an authenticated GET and unwraps the TikHub envelope
// {code, data: {status_code, status_msg, data: [...]}}, returning the inner list.
//
// Cancellation of ctx is not propagated: the call keeps running on its own
// timeout even if the inbound caller goes away. Values carried by ctx are kept.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]gjson.Result, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.NewAPIError("failed to create request", 0, map[string]any{
			"path": path,
		})
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", constants.APIConfig.UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		transportErr := c.transportError(err)
		c.logger.Error("TikHub request failed",
			zap.String("path", path),
			zap.Bool("timeout", transportErr.Timeout),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return nil, transportErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("TikHub response read failed", zap.String("path", path), zap.Error(err))
		return nil, c.transportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("TikHub returned non-200 status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, errors.NewAPIError(fmt.Sprintf("API请求失败: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"path": path,
			"body": util.TruncateString(string(body), 200),
		})
	}

	items, err := unwrapEnvelope(body)
	if err != nil {
		c.logger.Warn("TikHub payload rejected", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("TikHub request completed",
		zap.String("path", path),
		zap.Int("items", len(items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return items, nil
}

// unwrapEnvelope validates the inner status code and returns the item list.
// A missing or non-numeric status_code counts as a failure.
func unwrapEnvelope(body []byte) ([]gjson.Result, error) {
	var root gjson.Result
	if gjson.ValidBytes(body) {
		root = gjson.ParseBytes(body)
	}

	statusCode := root.Get("data.status_code")
	if statusCode.Type != gjson.Number || statusCode.Float() != 0 {
		msg := root.Get("data.status_msg").String()
		if msg == "" {
			msg = "Unknown error"
		}
		return nil, errors.NewAPIError("TikHub API错误: "+msg, http.StatusOK, map[string]any{
			"status_code": statusCode.Raw,
		})
	}

	list := root.Get("data.data")
	switch {
	case !list.Exists(), list.Type == gjson.Null:
		return []gjson.Result{}, nil
	case list.IsArray():
		return list.Array(), nil
	default:
		return nil, errors.NewAPIError("TikHub API错误: unexpected data payload", http.StatusOK, map[string]any{
			"type": list.Type.String(),
		})
	}
}

func (c *Client) transportError(err error) *errors.TransportError {
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.NewTransportError(fmt.Sprintf("timeout of %dms exceeded", c.timeout.Milliseconds()), true, err)
	}
	return errors.NewTransportError("Network Error: "+rootCause(err).Error(), false, err)
}

func rootCause(err error) error {
	for {
		next := stderrors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
