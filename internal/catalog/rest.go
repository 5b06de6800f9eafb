package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appErrors "attrpicker/internal/errors"
)

const attributesPath = "/wp-json/wc/v3/products/attributes"

// RESTClient talks to a WooCommerce store's product attribute endpoint.
type RESTClient struct {
	baseURL string
	key     string
	secret  string
	http    *http.Client
}

// RESTOption configures a RESTClient.
type RESTOption func(*RESTClient)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(c *http.Client) RESTOption {
	return func(r *RESTClient) {
		r.http = c
	}
}

// NewRESTClient builds a client for the store at baseURL authenticated with
// a consumer key/secret pair.
func NewRESTClient(baseURL, consumerKey, consumerSecret string, opts ...RESTOption) *RESTClient {
	c := &RESTClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		key:     consumerKey,
		secret:  consumerSecret,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListAttributes fetches every global attribute of the store.
func (c *RESTClient) ListAttributes(ctx context.Context) ([]Attribute, error) {
	var attrs []Attribute
	if err := c.do(ctx, http.MethodGet, attributesPath, nil, &attrs); err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	return attrs, nil
}

type createAttributeRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	OrderBy     string `json:"order_by"`
	HasArchives bool   `json:"has_archives"`
}

// CreateAttribute creates a global attribute. A store-side refusal with
// RESTConflictCode becomes CodeCreateConflict carrying the store's message.
func (c *RESTClient) CreateAttribute(ctx context.Context, name string) (Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Attribute{}, appErrors.New(appErrors.CodeCreateFailed, "attribute name is required", ErrEmptyName)
	}
	body := createAttributeRequest{Name: name, OrderBy: "name"}
	var created Attribute
	if err := c.do(ctx, http.MethodPost, attributesPath, body, &created); err != nil {
		return Attribute{}, fmt.Errorf("create attribute: %w", err)
	}
	return created, nil
}

func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) error {
	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return appErrors.New(appErrors.CodeParseFailed, "encode request", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return appErrors.New(appErrors.CodeConfigurationError, "build request", err)
	}
	req.SetBasicAuth(c.key, c.secret)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.New(appErrors.CodeCreateFailed, "store request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return appErrors.New(appErrors.CodeCreateFailed, "read store response", err)
	}

	if resp.StatusCode >= 300 {
		restErr := RESTError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(raw, &restErr); jsonErr != nil || restErr.Code == "" {
			restErr.Code = http.StatusText(resp.StatusCode)
		}
		return classifyRESTError(restErr)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return appErrors.New(appErrors.CodeParseFailed, "decode store response", err)
	}
	return nil
}
