package fakeplatform

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/myhttpclient"
	"github.com/MarcGrol/userarea/services/payment"
)

func TestInMemoryPaymentPlatform(t *testing.T) {
	PaymentPlatformContract{
		platform: func(t *testing.T) (payment.PaymentClient, *FakePaymentPlatform) {
			fake := NewFakePaymentPlatform("http://localhost:8080/payments/callback")
			return fake, fake
		},
	}.Test(t)
}

func TestHTTPPaymentPlatform(t *testing.T) {
	PaymentPlatformContract{
		platform: func(t *testing.T) (payment.PaymentClient, *FakePaymentPlatform) {
			fake := NewFakePaymentPlatform("")
			router := mux.NewRouter()
			fake.RegisterEndpoints(router)
			ts := httptest.NewServer(router)
			t.Cleanup(ts.Close)

			client := payment.NewPaymentClient(
				myhttpclient.New(myhttpclient.Config{ConnectTimeout: time.Second, ReadTimeout: time.Second}),
				payment.ClientConfig{
					PlatformURL:    ts.URL + "/",
					CreateEndpoint: "api/transactions",
					CallbackURL:    "http://localhost:8080/payments/callback",
				})
			return client, fake
		},
	}.Test(t)
}

type PaymentPlatformContract struct {
	platform func(t *testing.T) (payment.PaymentClient, *FakePaymentPlatform)
}

func (pc PaymentPlatformContract) Test(t *testing.T) {
	t.Run("can create a transaction", func(t *testing.T) {
		var (
			sut, fake = pc.platform(t)
			ctx       = context.Background()
			amount    = decimal.RequireFromString("400.90")
		)

		id, err := sut.CreateTransaction(ctx, amount, []string{"123", "456"})
		require.NoError(t, err)
		assert.NotEmpty(t, id)

		tx, err := fake.GetTransaction(ctx, id)
		require.NoError(t, err)
		assert.True(t, amount.Equal(tx.Amount))
		assert.Equal(t, []string{"123", "456"}, tx.ApplicationNumbers)
		assert.Equal(t, "http://localhost:8080/payments/callback", tx.CallbackURL)
	})

	t.Run("every transaction gets its own id", func(t *testing.T) {
		var (
			sut, _ = pc.platform(t)
			ctx    = context.Background()
		)

		first, err := sut.CreateTransaction(ctx, decimal.NewFromInt(10), []string{"123"})
		require.NoError(t, err)
		second, err := sut.CreateTransaction(ctx, decimal.NewFromInt(10), []string{"123"})
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	// behaviour of the real platform we had to discover
	t.Run("the platform refuses a zero amount", func(t *testing.T) {
		var (
			sut, fake = pc.platform(t)
			ctx       = context.Background()
		)

		_, err := sut.CreateTransaction(ctx, decimal.Zero, []string{"123"})
		require.Error(t, err)
		assert.True(t, myerrors.IsExternalServiceError(err))
		assert.Empty(t, fake.Store.Items)
	})

	t.Run("the platform refuses a transaction without applications", func(t *testing.T) {
		var (
			sut, _ = pc.platform(t)
			ctx    = context.Background()
		)

		_, err := sut.CreateTransaction(ctx, decimal.NewFromInt(10), []string{})
		require.Error(t, err)
		assert.True(t, myerrors.IsExternalServiceError(err))
	})
}

func TestFakeCallback(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2023, 2, 27, 23, 58, 59, 0, time.UTC)

	t.Run("callback of unknown transaction", func(t *testing.T) {
		fake := NewFakePaymentPlatform("")

		_, err := fake.Callback(ctx, "unknown", payment.StatusPaid, paidAt)
		assert.True(t, myerrors.IsNotFound(err))
	})

	t.Run("callback of known transaction", func(t *testing.T) {
		fake := NewFakePaymentPlatform("")
		id, err := fake.CreateTransaction(ctx, decimal.NewFromInt(10), []string{"123"})
		require.NoError(t, err)

		callback, err := fake.Callback(ctx, id, payment.StatusPaid, paidAt)
		require.NoError(t, err)
		assert.Equal(t, id, callback.TransactionID)
		assert.Equal(t, "CONF-"+id, callback.ConfirmationID)
		assert.Equal(t, payment.StatusPaid, callback.Status)
		assert.Equal(t, paidAt, *callback.PaidAt)
	})
}

func TestFakeSettle(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, confirmErr error) (*FakePaymentPlatform, *mux.Router, *[]payment.Callback) {
		fake := NewFakePaymentPlatform("")
		confirmed := []payment.Callback{}
		router := mux.NewRouter()
		fake.RegisterSettleEndpoint(router, func(c context.Context, callback payment.Callback) error {
			confirmed = append(confirmed, callback)
			return confirmErr
		})
		return fake, router, &confirmed
	}

	t.Run("settle defaults to paid", func(t *testing.T) {
		// setup
		fake, router, confirmed := setup(t, nil)

		// given
		id, err := fake.CreateTransaction(ctx, decimal.NewFromInt(10), []string{"123"})
		require.NoError(t, err)

		// when
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fake/transactions/"+id+"/settle", nil))

		// then
		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, *confirmed, 1)
		assert.Equal(t, id, (*confirmed)[0].TransactionID)
		assert.Equal(t, "CONF-"+id, (*confirmed)[0].ConfirmationID)
		assert.Equal(t, payment.StatusPaid, (*confirmed)[0].Status)
	})

	t.Run("settle as failed", func(t *testing.T) {
		fake, router, confirmed := setup(t, nil)
		id, err := fake.CreateTransaction(ctx, decimal.NewFromInt(10), []string{"123"})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fake/transactions/"+id+"/settle?status=FAILED", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, *confirmed, 1)
		assert.Equal(t, payment.StatusFailed, (*confirmed)[0].Status)
	})

	t.Run("settle unknown transaction", func(t *testing.T) {
		_, router, confirmed := setup(t, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fake/transactions/unknown/settle", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, *confirmed)
	})

	t.Run("rejected confirmation is reported", func(t *testing.T) {
		fake, router, _ := setup(t, myerrors.NewInvalidInputError(fmt.Errorf("unknown status")))
		id, err := fake.CreateTransaction(ctx, decimal.NewFromInt(10), []string{"123"})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fake/transactions/"+id+"/settle?status=BOGUS", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
