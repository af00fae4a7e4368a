package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxBodySize = 1 << 20

// DefaultHeadersTransport stamps every request with the JSON headers the backend expects.
type DefaultHeadersTransport struct {
	T http.RoundTripper
}

func (t *DefaultHeadersTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return t.T.RoundTrip(req)
}

// Client talks to the account-management backend. Every call is keyed by
// account number and authenticated by sending the PIN in the body.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
}

func NewClient(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &DefaultHeadersTransport{
			T: http.DefaultTransport,
		},
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// doReq POSTs payload as JSON and returns the body of a 2xx response.
func (c *Client) doReq(ctx context.Context, op string, path string, payload any) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	entry := c.log.WithFields(logrus.Fields{
		"op":         op,
		"path":       path,
		"request_id": requestID,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(err).Error("request failed")
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		entry.WithError(err).Error("reading response failed")
		return nil, &TransportError{Op: op, Err: err}
	}

	entry = entry.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Op: op, Status: resp.StatusCode, Message: errorMessage(body)}
		entry.WithField("message", statusErr.Message).Warn("backend rejected request")
		return nil, statusErr
	}

	entry.Debug("request completed")
	return body, nil
}

func accountPath(accountNumber string, parts ...string) string {
	var sb strings.Builder
	sb.WriteString("/accounts/")
	sb.WriteString(url.PathEscape(accountNumber))
	for _, p := range parts {
		sb.WriteString("/")
		sb.WriteString(p)
	}
	return sb.String()
}

// CheckBalance doubles as login: a correct PIN answers with the bare balance.
func (c *Client) CheckBalance(ctx context.Context, accountNumber, pin string) (decimal.Decimal, error) {
	const op = "check balance"

	body, err := c.doReq(ctx, op, accountPath(accountNumber, "balance"), pinRequest{PIN: pin})
	if err != nil {
		return decimal.Zero, err
	}

	balance, ok := parseNumber(body)
	if !ok {
		return decimal.Zero, &MalformedResponseError{Op: op, Message: "Invalid balance received from server"}
	}
	return balance, nil
}

func (c *Client) CreateAccount(ctx context.Context, acc NewAccount) error {
	payload := createAccountRequest{
		AccountNumber:  acc.AccountNumber,
		OwnerName:      acc.OwnerName,
		PIN:            acc.PIN,
		InitialBalance: toNumber(acc.InitialBalance),
	}

	_, err := c.doReq(ctx, "create account", "/accounts", payload)
	return err
}

func (c *Client) Deposit(ctx context.Context, accountNumber, pin string, amount decimal.Decimal) (decimal.Decimal, error) {
	return c.moveFunds(ctx, "deposit", accountPath(accountNumber, "deposit"), pin, amount)
}

func (c *Client) Withdraw(ctx context.Context, accountNumber, pin string, amount decimal.Decimal) (decimal.Decimal, error) {
	return c.moveFunds(ctx, "withdraw", accountPath(accountNumber, "withdraw"), pin, amount)
}

// moveFunds runs deposit or withdraw. Both answer with the recorded
// transaction whose account.balance is the new balance; anything non-numeric
// there is a failure even on a 2xx status.
func (c *Client) moveFunds(ctx context.Context, op, path, pin string, amount decimal.Decimal) (decimal.Decimal, error) {
	body, err := c.doReq(ctx, op, path, amountRequest{PIN: pin, Amount: toNumber(amount)})
	if err != nil {
		return decimal.Zero, err
	}

	balance, ok := nestedBalance(body)
	if !ok {
		return decimal.Zero, &MalformedResponseError{Op: op, Message: "Invalid balance received from server"}
	}
	return balance, nil
}

// Transfer moves amount to toAccount and returns the sender's new balance,
// zero when the response carries no usable balance.
func (c *Client) Transfer(ctx context.Context, accountNumber, pin, toAccount string, amount decimal.Decimal) (decimal.Decimal, error) {
	const op = "transfer"

	path := accountPath(accountNumber, "transfer", url.PathEscape(toAccount))
	body, err := c.doReq(ctx, op, path, amountRequest{PIN: pin, Amount: toNumber(amount)})
	if err != nil {
		return decimal.Zero, err
	}

	if !json.Valid(body) {
		return decimal.Zero, &MalformedResponseError{Op: op, Message: "Invalid response received from server"}
	}
	return transferBalance(body), nil
}

// Transactions returns the account history in backend order.
func (c *Client) Transactions(ctx context.Context, accountNumber, pin string) ([]Transaction, error) {
	const op = "list transactions"

	body, err := c.doReq(ctx, op, accountPath(accountNumber, "transactions"), pinRequest{PIN: pin})
	if err != nil {
		return nil, err
	}

	var dtos []transactionDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, &MalformedResponseError{Op: op, Message: "Invalid transaction list received from server"}
	}

	transactions := make([]Transaction, 0, len(dtos))
	for _, dto := range dtos {
		transactions = append(transactions, dto.toTransaction())
	}
	return transactions, nil
}
