package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayoutSendsPaisa(t *testing.T) {
	var got map[string]interface{}
	var gotHeader http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, payoutsPath, r.URL.Path)

		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key", username)
		assert.Equal(t, "secret", password)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Payout{ID: "pout_1", Amount: 419950, Status: "processed"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", "2323230099089860")

	payout, err := client.CreatePayout(context.Background(), PayoutParams{
		FundAccountID:  "fa_1",
		Amount:         decimal.RequireFromString("4199.50"),
		IdempotencyKey: "payout-p1",
		ReferenceID:    "p1",
	})
	require.NoError(t, err)

	assert.Equal(t, "pout_1", payout.ID)
	assert.Equal(t, "processed", payout.Status)

	assert.Equal(t, float64(419950), got["amount"])
	assert.Equal(t, "INR", got["currency"])
	assert.Equal(t, "IMPS", got["mode"])
	assert.Equal(t, "fa_1", got["fund_account_id"])
	assert.Equal(t, "2323230099089860", got["account_number"])
	assert.Equal(t, "p1", got["reference_id"])
	assert.Equal(t, "payout-p1", gotHeader.Get("X-Payout-Idempotency-Key"))
}

func TestCreateFundAccountPrefersUPI(t *testing.T) {
	var got map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, fundAccountsPath, r.URL.Path)
		assert.Empty(t, r.Header.Get("X-Payout-Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(FundAccount{ID: "fa_1", ContactID: "cont_1", AccountType: "vpa"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", "acc")

	fund, err := client.CreateFundAccount(context.Background(), FundAccountParams{
		ContactID:         "cont_1",
		UPI:               "asha@upi",
		AccountHolderName: "Asha",
		IFSCCode:          "HDFC0000001",
		BankAccountNumber: "1234567890",
	})
	require.NoError(t, err)
	assert.Equal(t, "fa_1", fund.ID)

	assert.Equal(t, "vpa", got["account_type"])
	vpa, ok := got["vpa"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "asha@upi", vpa["address"])
	assert.NotContains(t, got, "bank_account")
}

func TestCreateFundAccountBankFallback(t *testing.T) {
	var got map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(FundAccount{ID: "fa_2"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", "acc")

	_, err := client.CreateFundAccount(context.Background(), FundAccountParams{
		ContactID:         "cont_1",
		AccountHolderName: "Asha",
		IFSCCode:          "HDFC0000001",
		BankAccountNumber: "1234567890",
	})
	require.NoError(t, err)

	assert.Equal(t, "bank_account", got["account_type"])
	bank, ok := got["bank_account"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "HDFC0000001", bank["ifsc"])
	assert.Equal(t, "1234567890", bank["account_number"])
}

func TestErrorStatusYieldsErrGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":{"description":"upstream down"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", "secret", "acc")

	_, err := client.CreateContact(context.Background(), ContactParams{Name: "Asha"})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestTransportFailureYieldsErrGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "key", "secret", "acc")

	_, err := client.CreatePayout(context.Background(), PayoutParams{
		FundAccountID: "fa_1",
		Amount:        decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestPaisaRoundTrip(t *testing.T) {
	assert.Equal(t, int64(419950), toPaisa(decimal.RequireFromString("4199.50")))
	assert.Equal(t, int64(100), toPaisa(decimal.NewFromInt(1)))
	assert.True(t, FromPaisa(419950).Equal(decimal.RequireFromString("4199.50")))
}
