// services/ai_client.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultAIModel = "google/gemini-2.5-flash"

// AIClient calls the hosted chat-completion gateway.
type AIClient struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

// NewAIClient requires the gateway key up front — a missing key is a
// configuration failure, not something to discover per request.
func NewAIClient(baseURL, apiKey string) (*AIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI gateway API key is not configured")
	}
	return &AIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   defaultAIModel,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a system instruction plus user prompt and returns the first
// completion's text verbatim.
func (c *AIClient) Complete(system, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}
	jsonData, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		// upstream status goes to the log, not to the client
		log.Printf("❌ [AI] Gateway returned %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("AI API error: %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("AI API returned no choices")
	}

	return out.Choices[0].Message.Content, nil
}
