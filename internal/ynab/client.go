package ynab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ynab-import/ynab-import/internal/logger"
	"github.com/ynab-import/ynab-import/internal/model"
)

// DefaultBaseURL is the public v1 API root.
const DefaultBaseURL = "https://api.youneedabudget.com/v1"

// Client talks to the budgeting service with a personal access token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

type accountTransactionsResponse struct {
	Data struct {
		Transactions []model.RemoteTransaction `json:"transactions"`
	} `json:"data"`
}

// BulkResult is the service's summary of a bulk create.
type BulkResult struct {
	TransactionIDs     []string `json:"transaction_ids"`
	DuplicateImportIDs []string `json:"duplicate_import_ids"`
}

type bulkResponse struct {
	Data struct {
		Bulk BulkResult `json:"bulk"`
	} `json:"data"`
}

// AccountTransactions returns the first page of an account's transactions.
func (c *Client) AccountTransactions(ctx context.Context, budgetID, accountID string) ([]model.RemoteTransaction, error) {
	path := fmt.Sprintf("/budgets/%s/accounts/%s/transactions", url.PathEscape(budgetID), url.PathEscape(accountID))

	var resp accountTransactionsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("AccountTransactions: %w", err)
	}
	return resp.Data.Transactions, nil
}

// BulkCreate posts every transaction in batch in one request.
func (c *Client) BulkCreate(ctx context.Context, batch model.Batch) (*BulkResult, error) {
	path := fmt.Sprintf("/budgets/%s/transactions/bulk", url.PathEscape(batch.BudgetID))

	var resp bulkResponse
	if err := c.do(ctx, http.MethodPost, path, batch, &resp); err != nil {
		return nil, fmt.Errorf("BulkCreate: %w", err)
	}
	return &resp.Data.Bulk, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	log := logger.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("path", path).Msg("Sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	log.Debug().Int("status", resp.StatusCode).Int("bytes", len(respBody)).Msg("Received response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
