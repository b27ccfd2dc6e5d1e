package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/condostore/pos-backend/pkg/config"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

// Client talks to the settlement backend that owns the catalog, the sales
// ledger and the resident accounts. Everything here is a proxy call; this
// service never mutates stock or balances itself.
type Client struct {
	baseURL string
	http    *http.Client
	logg    *logger.Logger
}

type ctxTokenKey struct{}

// WithToken stores the upstream bearer token on the context for later calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext returns the upstream bearer token, if any.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(ctxTokenKey{}).(string); ok {
		return token
	}
	return ""
}

// NewClient builds a settlement backend client from configuration.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid upstream base url: %w", err)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		logg:    logg,
	}, nil
}

// ListProducts fetches the whole sellable catalog.
func (c *Client) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	var products []ProductDTO
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateSale submits one order for authoritative settlement. The caller is
// responsible for never calling this twice for the same user attempt.
func (c *Client) CreateSale(ctx context.Context, input CreateSaleInput) error {
	resp, err := c.do(ctx, http.MethodPost, "/sales", input)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSubmission, err, "submit sale")
	}
	defer drain(resp)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return pkgerrors.New(pkgerrors.CodeRejectedOrder, "settlement service declined the sale").
			WithDetails(map[string]any{"status": resp.StatusCode, "body": readBody(resp)})
	default:
		return pkgerrors.New(pkgerrors.CodeSubmission, "settlement service error").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}
}

// ListResidents fetches the resident directory with account state.
func (c *Client) ListResidents(ctx context.Context) ([]ResidentDTO, error) {
	var residents []ResidentDTO
	if err := c.doJSON(ctx, http.MethodGet, "/residents", nil, &residents); err != nil {
		return nil, err
	}
	return residents, nil
}

// CreateResident registers a resident upstream. The backend derives the
// initial password from the CPF digits.
func (c *Client) CreateResident(ctx context.Context, input CreateResidentInput) (*ResidentDTO, error) {
	var resident ResidentDTO
	if err := c.doJSON(ctx, http.MethodPost, "/residents", input, &resident); err != nil {
		return nil, err
	}
	return &resident, nil
}

// ResidentHistory fetches a resident's account statement.
func (c *Client) ResidentHistory(ctx context.Context, residentID string) ([]HistoryEntryDTO, error) {
	if strings.TrimSpace(residentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "resident id is required")
	}
	var entries []HistoryEntryDTO
	path := "/residents/" + url.PathEscape(residentID) + "/history"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Dashboard fetches the store-wide indicators.
func (c *Client) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	var dashboard DashboardDTO
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// Login exchanges operator credentials for an upstream access token.
func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/login", input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upstream login")
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream login failed").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode login response")
	}
	if result.AccessToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream login returned no token")
	}
	return &result, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call settlement backend")
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "upstream rejected credentials")
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "upstream resource not found")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return pkgerrors.New(pkgerrors.CodeDependency, "unexpected upstream response").
			WithDetails(map[string]any{"status": resp.StatusCode, "path": path})
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode upstream response")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(req)
}

func readBody(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil {
		return ""
	}
	return string(data)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
