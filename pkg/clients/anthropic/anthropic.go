package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	messagesPath   = "/v1/messages"
	apiVersion     = "2023-06-01"
	model          = "claude-3-haiku-20240307"
	maxTokens      = 1024
)

// Client defines the AI operations the tracker uses.
type Client interface {
	GenerateReport(ctx context.Context, recordsJSON string) (string, error)
	ExtractReceipt(ctx context.Context, imageBase64, mediaType string) (ReceiptFields, error)
}

// ReceiptFields is the structured result of reading a receipt photo.
type ReceiptFields struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	return newClient(apiKey, defaultBaseURL)
}

func newClient(apiKey, baseURL string) Client {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

const reportSystemPrompt = `You are the analyst for a small cement-trucking business in Guinea. You receive the most recent financial records (trips and expenses) as JSON. Amounts are in Guinean francs (GNF).

Write a short prose report with exactly these four sections, in this order:
1. Financial summary (revenue, expenses, net profit)
2. Operational efficiency (tonnage delivered, fuel usage per trip)
3. Cost analysis (where the money goes across fuel, labor, maintenance, other)
4. One recommendation

Plain text only, no markdown tables. Be concrete and use the numbers.`

// GenerateReport asks the model for a four-section prose summary of the
// provided records. The result is opaque to the caller and displayed
// verbatim.
func (c *anthropicClient) GenerateReport(ctx context.Context, recordsJSON string) (string, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    reportSystemPrompt,
		Messages: []message{
			{Role: "user", Content: []contentBlock{{Type: "text", Text: "Records:\n" + recordsJSON}}},
		},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(messagesPath)

	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return "", fmt.Errorf("empty response from ai")
	}

	return strings.TrimSpace(respBody.Content[0].Text), nil
}

const receiptSystemPrompt = `You read photographed receipts for a trucking business and extract fields for an expense entry.

Respond with ONLY a JSON object of this exact structure:
{
	"date": "YYYY-MM-DD or empty string if unreadable",
	"amount": (total amount as a number, 0 if unreadable),
	"description": "short description of what was purchased"
}`

// ExtractReceipt sends the encoded image and returns the structured fields
// the model read off it. The caller is responsible for validating them like
// any manually typed input.
func (c *anthropicClient) ExtractReceipt(ctx context.Context, imageBase64, mediaType string) (ReceiptFields, error) {
	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    receiptSystemPrompt,
		Messages: []message{
			{
				Role: "user",
				Content: []contentBlock{
					{Type: "image", Source: &imageSource{Type: "base64", MediaType: mediaType, Data: imageBase64}},
					{Type: "text", Text: "Extract the expense fields from this receipt."},
				},
			},
			// Prefill the assistant response to force JSON
			{Role: "assistant", Content: []contentBlock{{Type: "text", Text: "{"}}},
		},
	}

	var respBody messageResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&respBody).
		Post(messagesPath)

	if err != nil {
		return ReceiptFields{}, fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return ReceiptFields{}, fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(respBody.Content) == 0 {
		return ReceiptFields{}, fmt.Errorf("empty response from ai")
	}

	// Reconstruct the full JSON since we prefilled the opening brace
	responseText := "{" + respBody.Content[0].Text

	// Clean up potential markdown code blocks if the model wraps the JSON
	responseText = strings.TrimSpace(responseText)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	var fields ReceiptFields
	if err := json.Unmarshal([]byte(responseText), &fields); err != nil {
		return ReceiptFields{}, fmt.Errorf("failed to unmarshal ai response: %w. Response was: %s", err, responseText)
	}

	return fields, nil
}
