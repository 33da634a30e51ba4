// Package commerce is the typed gateway to the headless commerce backend
// (Storefront and Admin GraphQL APIs).
//
// Every operation returns a normalised model, a nil/empty result when the
// backend reports nothing for the given handle or id, a *UserError for
// validation failures, or a *TransportError. No call is ever retried.
package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
)

const (
	apiStorefront = "storefront"
	apiAdmin      = "admin"

	defaultAPIVersion = "2024-10"
	maxResponseBytes  = 10 << 20
)

type Config struct {
	StoreDomain       string
	StorefrontToken   string
	AdminToken        string
	APIVersion        string
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *logrus.Logger
	Now               func() time.Time
}

type Client struct {
	http          *http.Client
	limiter       *rate.Limiter
	log           *logrus.Entry
	now           func() time.Time
	storefrontURL string
	adminURL      string
	storefrontKey string
	adminKey      string
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.StoreDomain) == "" {
		return nil, errors.New("commerce: store domain is required")
	}
	if cfg.StorefrontToken == "" {
		return nil, errors.New("commerce: storefront access token is required")
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = int(cfg.RequestsPerSecond * 2)
		if burst < 1 {
			burst = 1
		}
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.StoreDomain), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return &Client{
		http:          cfg.HTTPClient,
		limiter:       rate.NewLimiter(limit, burst),
		log:           cfg.Logger.WithField("component", "commerce"),
		now:           cfg.Now,
		storefrontURL: fmt.Sprintf("%s/api/%s/graphql.json", base, cfg.APIVersion),
		adminURL:      fmt.Sprintf("%s/admin/api/%s/graphql.json", base, cfg.APIVersion),
		storefrontKey: cfg.StorefrontToken,
		adminKey:      cfg.AdminToken,
	}, nil
}

// AdminEnabled reports whether the elevated credential is configured.
func (c *Client) AdminEnabled() bool { return c.adminKey != "" }

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// storefront runs a Storefront API operation and returns its data object.
func (c *Client) storefront(ctx context.Context, op, query string, vars map[string]any) (gjson.Result, error) {
	return c.execute(ctx, apiStorefront, c.storefrontURL, "X-Shopify-Storefront-Access-Token", c.storefrontKey, op, query, vars)
}

// admin runs an Admin API operation with the elevated credential.
func (c *Client) admin(ctx context.Context, op, query string, vars map[string]any) (gjson.Result, error) {
	if c.adminKey == "" {
		return gjson.Result{}, ErrAdminDisabled
	}
	return c.execute(ctx, apiAdmin, c.adminURL, "X-Shopify-Access-Token", c.adminKey, op, query, vars)
}

func (c *Client) execute(ctx context.Context, api, endpoint, header, token, op, query string, vars map[string]any) (data gjson.Result, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		var ue *UserError
		switch {
		case errors.As(err, &ue):
			outcome = "user_error"
		case err != nil:
			outcome = "transport_error"
		}
		metrics.RecordGatewayCall(api, op, outcome, time.Since(start))
	}()

	if err := c.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, &TransportError{Op: op, Err: err}
	}

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return gjson.Result{}, &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(header, token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("op", op).Warn("[commerce] request failed")
		return gjson.Result{}, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gjson.Result{}, &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		terr := &TransportError{Op: op, Status: resp.StatusCode, Messages: flattenBody(raw)}
		c.log.WithFields(logrus.Fields{"op": op, "status": resp.StatusCode}).Warn("[commerce] " + terr.Error())
		return gjson.Result{}, terr
	}

	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, &TransportError{Op: op, Status: resp.StatusCode, Messages: []string{"malformed JSON response"}}
	}
	parsed := gjson.ParseBytes(raw)

	if errs := parsed.Get("errors"); errs.Exists() {
		if msgs := formatGraphQLErrors(errs); len(msgs) > 0 {
			terr := &TransportError{Op: op, Status: resp.StatusCode, Messages: msgs}
			c.log.WithField("op", op).Warn("[commerce] " + terr.Error())
			return gjson.Result{}, terr
		}
	}

	return parsed.Get("data"), nil
}

// formatGraphQLErrors flattens a GraphQL errors value. Admin auth failures
// come back as a plain string instead of a list.
func formatGraphQLErrors(errs gjson.Result) []string {
	if errs.Type == gjson.String {
		return []string{errs.String()}
	}
	var msgs []string
	errs.ForEach(func(_, e gjson.Result) bool {
		msg := e.Get("message").String()
		if msg == "" {
			msg = e.Raw
		}
		if loc := e.Get("locations.0"); loc.Exists() {
			msg += fmt.Sprintf(" (loc: %d:%d)", loc.Get("line").Int(), loc.Get("column").Int())
		}
		if path := e.Get("path"); path.Exists() && len(path.Array()) > 0 {
			parts := make([]string, 0, len(path.Array()))
			for _, p := range path.Array() {
				parts = append(parts, p.String())
			}
			msg += " (path: " + strings.Join(parts, ".") + ")"
		}
		if code := e.Get("extensions.code").String(); code != "" {
			msg += " [" + code + "]"
		}
		msgs = append(msgs, msg)
		return true
	})
	return msgs
}

// flattenBody extracts error messages from a non-2xx body, falling back to
// the truncated raw text.
func flattenBody(raw []byte) []string {
	if gjson.ValidBytes(raw) {
		if errs := gjson.GetBytes(raw, "errors"); errs.Exists() {
			if msgs := formatGraphQLErrors(errs); len(msgs) > 0 {
				return msgs
			}
		}
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil
	}
	if len(text) > 500 {
		text = text[:500] + "..."
	}
	return []string{text}
}

// userErrors turns a mutation payload's userErrors / customerUserErrors
// into a *UserError, or nil when there are none.
func userErrors(op string, payload gjson.Result) error {
	ue := &UserError{Op: op}
	for _, field := range []string{"userErrors", "customerUserErrors", "orderCancelUserErrors"} {
		payload.Get(field).ForEach(func(_, e gjson.Result) bool {
			if msg := e.Get("message").String(); msg != "" {
				ue.Messages = append(ue.Messages, msg)
				ue.Codes = append(ue.Codes, e.Get("code").String())
			}
			return true
		})
	}
	if len(ue.Messages) == 0 {
		return nil
	}
	return ue
}
