package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends messages through the Meta WhatsApp Cloud API.
type Client struct {
	apiVersion    string
	phoneNumberId string
	accessToken   string
	httpClient    *http.Client
}

func NewClient(apiVersion, phoneNumberId, accessToken string) *Client {
	if apiVersion == "" {
		apiVersion = "v21.0"
	}
	return &Client{
		apiVersion:    apiVersion,
		phoneNumberId: phoneNumberId,
		accessToken:   accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type textPayload struct {
	Body string `json:"body"`
}

type messageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

// SendText delivers a plain text message to the given WhatsApp number.
func (c *Client) SendText(ctx context.Context, to string, body string) error {
	payload := messageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
		Text:             textPayload{Body: body},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := fmt.Sprintf(
		"https://graph.facebook.com/%s/%s/messages",
		c.apiVersion, c.phoneNumberId,
	)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}
