package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(baseURL, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error) {
	var response AnswerResponse
	err := c.makeRequest(ctx, "POST", "/answer", req, &response)
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *Client) AddDocuments(ctx context.Context, req AddDocumentsRequest) error {
	return c.makeRequest(ctx, "POST", "/documents", req, nil)
}

func (c *Client) DeleteDocuments(ctx context.Context, req DeleteDocumentsRequest) error {
	return c.makeRequest(ctx, "POST", "/documents/delete", req, nil)
}

func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}, result interface{}) error {
	url := c.baseURL + endpoint

	var body io.Reader
	var contentLength int

	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
		contentLength = len(jsonData)

		// Only log full payload for small requests to avoid spam
		if contentLength < 1000 {
			c.logger.WithFields(logrus.Fields{
				"method":       method,
				"url":          url,
				"payload_json": string(jsonData),
			}).Debug("Request payload")
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"url":      url,
		"has_body": payload != nil,
		"size":     contentLength,
	}).Debug("Making engine API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"method":        method,
		"url":           url,
		"response_size": len(responseBody),
	}).Debug("Engine API response received")

	// Only log response body for small responses or errors
	if len(responseBody) < 500 || resp.StatusCode >= 400 {
		c.logger.WithFields(logrus.Fields{
			"status_code":   resp.StatusCode,
			"method":        method,
			"url":           url,
			"response_body": string(responseBody),
		}).Debug("Response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("engine request failed with status %d: %s", resp.StatusCode, string(responseBody))
	}

	if result != nil && len(responseBody) > 0 {
		if err := json.Unmarshal(responseBody, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
