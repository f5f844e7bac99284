package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnauthorized is returned when the server rejects the session's
// credential. The session treats it as a signal to tear itself down.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is any other non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is a thin HTTP client for the taskboard API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
}

type reorderColumnsRequest struct {
	BoardID      string   `json:"board_id"`
	ColumnOrder  []string `json:"column_order"`
	OrderVersion *int64   `json:"order_version,omitempty"`
}

type reorderTicketsRequest struct {
	SourceColumnID      string   `json:"source_column_id"`
	DestinationColumnID string   `json:"destination_column_id"`
	TicketID            string   `json:"ticket_id"`
	NewOrder            []string `json:"new_order"`
	OrderVersion        *int64   `json:"order_version,omitempty"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/api/user/login", "", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// FetchBoard retrieves the caller's board with columns and tickets in
// display order.
func (c *Client) FetchBoard(ctx context.Context, token string) (*Board, error) {
	var board Board
	if err := c.do(ctx, http.MethodGet, "/api/boards/get", token, nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// ReorderColumns submits a new column order for the board.
func (c *Client) ReorderColumns(ctx context.Context, token, boardID string, order []string, version *int64) error {
	req := reorderColumnsRequest{BoardID: boardID, ColumnOrder: order, OrderVersion: version}
	return c.do(ctx, http.MethodPost, "/api/columns/reorder", token, req, nil)
}

// ReorderTickets submits a new ticket order within a column, or a
// cross-column move when source and destination differ.
func (c *Client) ReorderTickets(ctx context.Context, token, sourceColumnID, destColumnID, ticketID string, newOrder []string, version *int64) error {
	req := reorderTicketsRequest{
		SourceColumnID:      sourceColumnID,
		DestinationColumnID: destColumnID,
		TicketID:            ticketID,
		NewOrder:            newOrder,
		OrderVersion:        version,
	}
	return c.do(ctx, http.MethodPost, "/api/tickets/reorder", token, req, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		message := payload.Error
		if message == "" {
			message = payload.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
