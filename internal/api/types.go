package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NewAccount is the signup payload.
type NewAccount struct {
	AccountNumber  string
	OwnerName      string
	PIN            string
	InitialBalance decimal.Decimal
}

// Transaction is the read-only view of one ledger entry returned by the backend.
type Transaction struct {
	Type         string
	Amount       decimal.Decimal
	Timestamp    time.Time
	RawTimestamp string
}

type pinRequest struct {
	PIN string `json:"pin"`
}

type amountRequest struct {
	PIN    string      `json:"pin"`
	Amount json.Number `json:"amount"`
}

type createAccountRequest struct {
	AccountNumber  string      `json:"accountNumber"`
	OwnerName      string      `json:"ownerName"`
	PIN            string      `json:"pin"`
	InitialBalance json.Number `json:"initialBalance"`
}

type balanceEnvelope struct {
	Balance json.RawMessage `json:"balance"`
	Account *struct {
		Balance json.RawMessage `json:"balance"`
	} `json:"account"`
}

type transactionDTO struct {
	Type      string          `json:"type"`
	Amount    json.RawMessage `json:"amount"`
	Timestamp json.RawMessage `json:"timestamp"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func toNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// parseNumber accepts a JSON number or a JSON string holding a number.
// null, missing, NaN and anything else report ok=false.
func parseNumber(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero, false
	}

	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func isNull(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}

// nestedBalance reads account.balance, the shape returned by deposit and withdraw.
func nestedBalance(body []byte) (decimal.Decimal, bool) {
	var env balanceEnvelope
	if err := json.Unmarshal(body, &env); err != nil || env.Account == nil {
		return decimal.Zero, false
	}
	return parseNumber(env.Account.Balance)
}

// transferBalance prefers a top-level balance and falls back to account.balance.
// A value that does not parse yields zero.
func transferBalance(body []byte) decimal.Decimal {
	var env balanceEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return decimal.Zero
	}

	raw := env.Balance
	if isNull(raw) && env.Account != nil {
		raw = env.Account.Balance
	}

	balance, ok := parseNumber(raw)
	if !ok {
		return decimal.Zero
	}
	return balance
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseTimestamp handles ISO-8601 strings (with or without zone, the latter read
// as local time) and epoch milliseconds.
func parseTimestamp(raw json.RawMessage) (time.Time, string) {
	if isNull(raw) {
		return time.Time{}, ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		if ms, ok := parseNumber(raw); ok {
			return time.UnixMilli(ms.IntPart()), string(raw)
		}
		return time.Time{}, string(raw)
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, s
		}
	}
	return time.Time{}, s
}

func (dto transactionDTO) toTransaction() Transaction {
	amount, _ := parseNumber(dto.Amount)
	ts, raw := parseTimestamp(dto.Timestamp)
	return Transaction{
		Type:         dto.Type,
		Amount:       amount,
		Timestamp:    ts,
		RawTimestamp: raw,
	}
}

// errorMessage extracts the user facing text from a non-2xx body: a JSON
// message/error field, otherwise the plain text body.
func errorMessage(body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
		return ""
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
