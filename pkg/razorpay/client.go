package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrGateway is returned for every upstream failure. Provider-specific detail
// is logged but never propagated to callers.
var ErrGateway = errors.New("payment gateway request failed")

const (
	contactsPath     = "/contacts"
	fundAccountsPath = "/fund_accounts"
	payoutsPath      = "/payouts"

	accountTypeBank = "bank_account"
	accountTypeVPA  = "vpa"
)

type Client struct {
	baseURL    string
	username   string
	password   string
	accountNo  string
	httpClient *http.Client
}

func NewClient(baseURL, username, password, accountNo string) *Client {
	return &Client{
		baseURL:   baseURL,
		username:  username,
		password:  password,
		accountNo: accountNo,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type Contact struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type FundAccount struct {
	ID          string `json:"id"`
	ContactID   string `json:"contact_id"`
	AccountType string `json:"account_type"`
}

type Payout struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
}

type ContactParams struct {
	Name   string
	Email  string
	Mobile string
}

// CreateContact registers a payee with the gateway.
func (c *Client) CreateContact(ctx context.Context, params ContactParams) (Contact, error) {
	payload := map[string]interface{}{
		"name":    params.Name,
		"email":   params.Email,
		"contact": params.Mobile,
		"type":    "customer",
	}

	var contact Contact
	err := c.do(ctx, http.MethodPost, contactsPath, "", payload, &contact)
	return contact, err
}

// UpdateContact syncs name/email/mobile changes to an existing payee.
func (c *Client) UpdateContact(ctx context.Context, contactID string, params ContactParams) error {
	payload := map[string]interface{}{
		"name":    params.Name,
		"email":   params.Email,
		"contact": params.Mobile,
	}

	return c.do(ctx, http.MethodPatch, contactsPath+"/"+contactID, "", payload, nil)
}

type FundAccountParams struct {
	ContactID         string
	UPI               string
	AccountHolderName string
	IFSCCode          string
	BankAccountNumber string
}

// CreateFundAccount attaches a payout destination to a contact. A UPI address
// wins over bank details when both are present.
func (c *Client) CreateFundAccount(ctx context.Context, params FundAccountParams) (FundAccount, error) {
	var payload map[string]interface{}

	if params.UPI != "" {
		payload = map[string]interface{}{
			"contact_id":   params.ContactID,
			"account_type": accountTypeVPA,
			"vpa": map[string]string{
				"address": params.UPI,
			},
		}
	} else {
		payload = map[string]interface{}{
			"contact_id":   params.ContactID,
			"account_type": accountTypeBank,
			"bank_account": map[string]string{
				"name":           params.AccountHolderName,
				"ifsc":           params.IFSCCode,
				"account_number": params.BankAccountNumber,
			},
		}
	}

	var fund FundAccount
	err := c.do(ctx, http.MethodPost, fundAccountsPath, "", payload, &fund)
	return fund, err
}

type PayoutParams struct {
	FundAccountID  string
	Amount         decimal.Decimal // rupees; converted to paisa at the boundary
	IdempotencyKey string
	ReferenceID    string
}

// CreatePayout issues a payout. Amounts cross the wire as integer paisa; the
// idempotency key makes a retried request a no-op on the gateway side.
func (c *Client) CreatePayout(ctx context.Context, params PayoutParams) (Payout, error) {
	payload := map[string]interface{}{
		"account_number":  c.accountNo,
		"fund_account_id": params.FundAccountID,
		"amount":          toPaisa(params.Amount),
		"currency":        "INR",
		"mode":            "IMPS",
		"purpose":         "payout",
		"reference_id":    params.ReferenceID,
	}

	var payout Payout
	err := c.do(ctx, http.MethodPost, payoutsPath, params.IdempotencyKey, payload, &payout)
	return payout, err
}

func toPaisa(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// FromPaisa converts an integer gateway amount back to rupees.
func FromPaisa(paisa int64) decimal.Decimal {
	return decimal.NewFromInt(paisa).Div(decimal.NewFromInt(100))
}

func (c *Client) do(ctx context.Context, method, path, idempotencyKey string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal gateway payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Payout-Idempotency-Key", idempotencyKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		zap.L().Error("Payment gateway request error",
			zap.String("path", path),
			zap.Error(err),
		)
		return ErrGateway
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		zap.L().Error("Payment gateway returned error status",
			zap.String("path", path),
			zap.Int("status", res.StatusCode),
			zap.ByteString("body", detail),
		)
		return ErrGateway
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		zap.L().Error("Payment gateway response decode error",
			zap.String("path", path),
			zap.Error(err),
		)
		return ErrGateway
	}
	return nil
}
