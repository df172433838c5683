// Package nacex implements the NACEX carrier web service integration.
package nacex

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"shipping-management/internal/carrier"
	"shipping-management/internal/config"
	appErrors "shipping-management/pkg/errors"
)

const (
	DefaultBaseURL = "http://gprs.nacex.com/nacex_ws/ws"
	DefaultTimeout = 30 * time.Second
)

// Credentials sign every call. The password is sent as its upper-case MD5 digest.
type Credentials struct {
	Login    string
	Password string
}

// Client performs raw NACEX calls: GET requests carrying method, data, user and pass.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewClient(cfg config.NacexConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		log:        log,
	}
}

// HashPassword returns the upper-case hexadecimal MD5 digest NACEX expects in pass.
func HashPassword(password string) string {
	sum := md5.Sum([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Call invokes method with the ordered data fields and returns the trimmed body.
func (c *Client) Call(ctx context.Context, creds Credentials, method string, data []carrier.Field) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &appErrors.CarrierAPIError{Method: method, Err: err}
	}

	query := url.Values{}
	query.Set("method", method)
	query.Set("data", EncodeData(data))
	query.Set("user", creds.Login)
	query.Set("pass", HashPassword(creds.Password))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", &appErrors.CarrierAPIError{Method: method, Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("NACEX request failed",
			zap.String("method", method),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
			zap.String("event", "nacex_request_failed"),
		)
		return "", &appErrors.CarrierAPIError{Method: method, Err: err}
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &appErrors.CarrierAPIError{Method: method, StatusCode: resp.StatusCode, Err: err}
	}
	body := strings.TrimSpace(string(raw))

	c.log.Debug("NACEX request",
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("event", "nacex_request"),
	)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", &appErrors.CarrierAPIError{Method: method, StatusCode: resp.StatusCode, Body: body}
	}
	if strings.HasPrefix(body, "ERROR") {
		return "", &appErrors.CarrierAPIError{Method: method, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
