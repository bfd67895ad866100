package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MetingHub/logger"

	"github.com/tidwall/gjson"
)

const maxBodySize = 8 << 20

// Client 上游 HTTP 客户端，所有请求都是 GET + JSON
type Client struct {
	name       string
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
}

// NewClient 创建新的API客户端
func NewClient(name, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		name:       name,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		timeout:    timeout,
		userAgent:  "MetingHub/1.0",
		httpClient: &http.Client{},
	}
}

// SetHTTPClient 替换底层 http.Client，测试时注入假的 Transport
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON issues GET baseURL+path?params and parses the body as JSON.
func (c *Client) GetJSON(ctx context.Context, op, path string, params url.Values) (gjson.Result, error) {
	return c.Get(ctx, op, path, params, nil)
}

// Get is GetJSON with extra request headers.
func (c *Client) Get(ctx context.Context, op, path string, params url.Values, header http.Header) (gjson.Result, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, &Failure{Kind: KindInput, Provider: c.name, Op: op, URL: endpoint, Err: fmt.Errorf("创建请求失败: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("["+c.name+"] 请求失败", logger.String("op", op), logger.String("url", endpoint), logger.ErrorField(err))
		return gjson.Result{}, &Failure{Kind: KindTransport, Provider: c.name, Op: op, URL: endpoint, Err: fmt.Errorf("请求失败: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return gjson.Result{}, &Failure{Kind: KindTransport, Provider: c.name, Op: op, URL: endpoint, Err: fmt.Errorf("读取响应失败: %w", err)}
	}

	logger.Debug("["+c.name+"] 上游响应",
		logger.String("op", op),
		logger.String("url", endpoint),
		logger.Int("status", resp.StatusCode),
		logger.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, &Failure{Kind: KindUpstream, Provider: c.name, Op: op, URL: endpoint, Err: fmt.Errorf("状态码 %d", resp.StatusCode)}
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &Failure{Kind: KindMalformed, Provider: c.name, Op: op, URL: endpoint, Err: ErrMalformed}
	}
	return gjson.ParseBytes(body), nil
}
