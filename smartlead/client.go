// Package smartlead is a thin client for the Smartlead campaign API.
// Clients are built per call site with NewClient; there is no package
// level default bound to a single credential.
package smartlead

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const DefaultBaseURL = "https://server.smartlead.ai/api/v1"

// APIError is a non-2xx response from Smartlead.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("smartlead: status %d: %s", e.StatusCode, e.Message)
}

// Lead is the contact payload sent when registering a lead on a campaign.
type Lead struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
}

// CampaignStep is one email step uploaded when creating a campaign.
type CampaignStep struct {
	SequenceNumber int    `json:"sequence_number"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	DelayInDays    int    `json:"delay_in_days"`
}

// Campaign is the subset of campaign details this service reads back.
type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Client talks to Smartlead on behalf of one API key.
type Client struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	http    *fasthttp.Client
}

// Option adjusts a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient builds a client bound to the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
		http:    &fasthttp.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddLeadToCampaign registers a contact as a lead on a campaign and
// returns the provider-assigned lead id. A lead that is already on the
// campaign is not an error; Smartlead owns de-duplication, and the
// returned id is empty in that case.
func (c *Client) AddLeadToCampaign(ctx context.Context, campaignID string, lead Lead) (string, error) {
	status, body, err := c.do(ctx, fasthttp.MethodPost,
		fmt.Sprintf("/campaigns/%s/leads", campaignID), lead)
	if err != nil {
		return "", err
	}
	if isDuplicateLead(status, body) {
		return "", nil
	}
	if status < 200 || status > 299 {
		return "", &APIError{StatusCode: status, Message: string(body)}
	}
	return extractLeadID(body), nil
}

// CreateCampaign creates a campaign and uploads its email steps,
// returning the campaign id.
func (c *Client) CreateCampaign(ctx context.Context, name, emailAccountID string, steps []CampaignStep) (string, error) {
	payload := map[string]interface{}{
		"name":           name,
		"email_accounts": []string{emailAccountID},
		"settings": map[string]interface{}{
			"daily_limit":  50,
			"track_opens":  true,
			"track_clicks": true,
		},
	}
	status, body, err := c.do(ctx, fasthttp.MethodPost, "/campaigns", payload)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", &APIError{StatusCode: status, Message: string(body)}
	}

	var created struct {
		ID json.Number `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("decoding campaign response: %w", err)
	}
	campaignID := created.ID.String()

	for _, step := range steps {
		status, body, err := c.do(ctx, fasthttp.MethodPost,
			fmt.Sprintf("/campaigns/%s/sequences", campaignID), step)
		if err != nil {
			return "", err
		}
		if status < 200 || status > 299 {
			return "", &APIError{StatusCode: status, Message: string(body)}
		}
	}
	return campaignID, nil
}

// SendEmailNow triggers an immediate send of one step to one lead.
func (c *Client) SendEmailNow(ctx context.Context, campaignID, leadID string, stepNumber int) error {
	payload := map[string]int{"sequence_number": stepNumber}
	status, body, err := c.do(ctx, fasthttp.MethodPost,
		fmt.Sprintf("/campaigns/%s/leads/%s/send", campaignID, leadID), payload)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &APIError{StatusCode: status, Message: string(body)}
	}
	return nil
}

// GetCampaign fetches campaign details.
func (c *Client) GetCampaign(ctx context.Context, campaignID string) (*Campaign, error) {
	status, body, err := c.do(ctx, fasthttp.MethodGet,
		fmt.Sprintf("/campaigns/%s", campaignID), nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &APIError{StatusCode: status, Message: string(body)}
	}
	var campaign Campaign
	if err := json.Unmarshal(body, &campaign); err != nil {
		return nil, fmt.Errorf("decoding campaign: %w", err)
	}
	return &campaign, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (int, []byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request: %w", err)
		}
		req.SetBody(body)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return 0, nil, fmt.Errorf("smartlead request failed: %w", err)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return resp.StatusCode(), body, nil
}

// isDuplicateLead reports whether the response indicates the lead was
// already registered on the campaign.
func isDuplicateLead(status int, body []byte) bool {
	if status == fasthttp.StatusConflict {
		return true
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(payload.Message), "already exists")
}

// extractLeadID pulls the lead id out of a successful add-lead response.
// Smartlead returns either lead_id or id depending on the endpoint
// version, as a number or a string.
func extractLeadID(body []byte) string {
	var payload map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return ""
	}
	for _, key := range []string{"lead_id", "id"} {
		switch v := payload[key].(type) {
		case json.Number:
			return v.String()
		case string:
			if v != "" {
				return v
			}
		}
	}
	return ""
}
