// Package exercise is a typed HTTP client for the purchase order exercise API.
package exercise

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	catalogmapper "github.com/Apurer/purchase-order-exercise/internal/domains/catalog/adapters/http/mapper"
	exercisehttpmapper "github.com/Apurer/purchase-order-exercise/internal/domains/exercise/adapters/http/mapper"
	apierrors "github.com/Apurer/purchase-order-exercise/internal/shared/errors"
)

const defaultTimeout = 15 * time.Second

// Client calls the exercise API.
type Client struct {
	httpClient *resty.Client
}

// Option tweaks the underlying resty client.
type Option func(*resty.Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *resty.Client) {
		c.SetTimeout(timeout)
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *resty.Client) {
		if hc != nil && hc.Transport != nil {
			c.SetTransport(hc.Transport)
		}
	}
}

// APIError is returned for every 4xx and 5xx response.
type APIError struct {
	StatusCode int
	Problem    apierrors.ProblemDetail
}

func (e *APIError) Error() string {
	if e.Problem.Title == "" {
		return fmt.Sprintf("exercise api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("exercise api: %d %s", e.StatusCode, e.Problem.Error())
}

// Missing lists the blockers reported by an incomplete-order problem.
func (e *APIError) Missing() []string {
	switch raw := e.Problem.Extensions["missing"].(type) {
	case []string:
		return raw
	case []any:
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Options is the payload of GET /v1/catalog/options.
type Options struct {
	Conditions catalogmapper.Options `json:"conditions"`
	Buyer      catalogmapper.Buyer   `json:"buyer"`
}

// Health is the payload of GET /healthz.
type Health struct {
	Status       string `json:"status"`
	SessionStore string `json:"sessionStore"`
	Reviews      string `json:"reviews"`
}

// New builds a client for the API served at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("exercise api base URL is required")
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(defaultTimeout)
	for _, opt := range opts {
		if opt != nil {
			opt(httpClient)
		}
	}
	return &Client{httpClient: httpClient}, nil
}

// Health fetches the liveness report.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.do(ctx, http.MethodGet, "/healthz", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOffers fetches the offers to compare.
func (c *Client) ListOffers(ctx context.Context) (*catalogmapper.OfferList, error) {
	var out catalogmapper.OfferList
	if err := c.do(ctx, http.MethodGet, "/v1/catalog/offers", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOffer fetches one offer.
func (c *Client) GetOffer(ctx context.Context, offerID string) (*catalogmapper.Offer, error) {
	var out catalogmapper.Offer
	if err := c.do(ctx, http.MethodGet, "/v1/catalog/offers/"+url.PathEscape(offerID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Options fetches the condition vocabularies and the buyer profile.
func (c *Client) Options(ctx context.Context) (*Options, error) {
	var out Options
	if err := c.do(ctx, http.MethodGet, "/v1/catalog/options", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create opens a new session on the intro step.
func (c *Client) Create(ctx context.Context) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodPost, "/v1/exercises", nil)
}

// Get fetches a session.
func (c *Client) Get(ctx context.Context, id string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodGet, exercisePath(id, ""), nil)
}

// Delete discards a session.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, exercisePath(id, ""), nil, nil)
}

// Start leaves the intro screen.
func (c *Client) Start(ctx context.Context, id string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodPost, exercisePath(id, "/start"), nil)
}

// SelectOffer picks an offer and opens the order form.
func (c *Client) SelectOffer(ctx context.Context, id, offerID string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodPost, exercisePath(id, "/offer"), exercisehttpmapper.SelectOfferRequest{OfferID: offerID})
}

// AddItem places an offer line on the order.
func (c *Client) AddItem(ctx context.Context, id, itemID string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodPost, exercisePath(id, "/items"), exercisehttpmapper.AddItemRequest{ItemID: itemID})
}

// RemoveItem drops a line from the order.
func (c *Client) RemoveItem(ctx context.Context, id, itemID string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodDelete, exercisePath(id, "/items/"+url.PathEscape(itemID)), nil)
}

// UpdateQuantity sends raw quantity input; the server does the coercion.
func (c *Client) UpdateQuantity(ctx context.Context, id, itemID, quantity string) (*exercisehttpmapper.Exercise, error) {
	body := map[string]string{"quantity": quantity}
	return c.exercise(ctx, http.MethodPut, exercisePath(id, "/items/"+url.PathEscape(itemID)+"/quantity"), body)
}

// SetCondition sets one of the four sales condition fields.
func (c *Client) SetCondition(ctx context.Context, id, field, value string) (*exercisehttpmapper.Exercise, error) {
	body := exercisehttpmapper.ConditionRequest{Value: &value}
	return c.exercise(ctx, http.MethodPut, exercisePath(id, "/conditions/"+url.PathEscape(field)), body)
}

// SetSignature sets the signature text.
func (c *Client) SetSignature(ctx context.Context, id, signature string) (*exercisehttpmapper.Exercise, error) {
	body := exercisehttpmapper.SignatureRequest{Signature: &signature}
	return c.exercise(ctx, http.MethodPut, exercisePath(id, "/signature"), body)
}

// Finish submits the order for review.
func (c *Client) Finish(ctx context.Context, id string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodPost, exercisePath(id, "/finish"), nil)
}

// Review fetches the checklist of a finished session.
func (c *Client) Review(ctx context.Context, id string) (*exercisehttpmapper.Review, error) {
	var out exercisehttpmapper.Review
	if err := c.do(ctx, http.MethodGet, exercisePath(id, "/review"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TogglePreview flips the review screen between checklist and document.
func (c *Client) TogglePreview(ctx context.Context, id string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodPost, exercisePath(id, "/preview"), nil)
}

// Document renders the order; format is "html" or "text".
func (c *Client) Document(ctx context.Context, id, format string) (string, error) {
	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html, text/plain, application/problem+json").
		SetError(&apierrors.ProblemDetail{})
	if format = strings.TrimSpace(format); format != "" {
		req.SetQueryParam("format", format)
	}
	resp, err := req.Get(exercisePath(id, "/document"))
	if err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	if err := apiError(resp); err != nil {
		return "", err
	}
	return resp.String(), nil
}

// Restart discards the draft and returns to the offer comparison.
func (c *Client) Restart(ctx context.Context, id string) (*exercisehttpmapper.Exercise, error) {
	return c.exercise(ctx, http.MethodPost, exercisePath(id, "/restart"), nil)
}

func (c *Client) exercise(ctx context.Context, method, path string, body any) (*exercisehttpmapper.Exercise, error) {
	var out exercisehttpmapper.Exercise
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	if c == nil || c.httpClient == nil {
		return errors.New("exercise client not configured")
	}
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(&apierrors.ProblemDetail{})
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return apiError(resp)
}

func apiError(resp *resty.Response) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	if problem, ok := resp.Error().(*apierrors.ProblemDetail); ok && problem != nil {
		apiErr.Problem = *problem
	}
	return apiErr
}

func exercisePath(id, suffix string) string {
	return "/v1/exercises/" + url.PathEscape(id) + suffix
}
