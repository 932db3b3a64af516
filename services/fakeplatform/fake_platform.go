package fakeplatform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mystore"
	"github.com/MarcGrol/userarea/lib/myuuid"
	"github.com/MarcGrol/userarea/services/payment"
)

// Transaction is what the fake platform remembers about a created payment transaction
type Transaction struct {
	ID                 string
	Amount             decimal.Decimal
	ApplicationNumbers []string
	CallbackURL        string
	CreatedAt          time.Time
}

// FakePaymentPlatform mimics the external payment platform in memory
type FakePaymentPlatform struct {
	uuider      myuuid.UUIDer
	callbackURL string
	Store       *mystore.InMemoryStore[Transaction]
}

func NewFakePaymentPlatform(callbackURL string) *FakePaymentPlatform {
	store, _, _ := mystore.NewInMemoryStore[Transaction](context.Background())
	return &FakePaymentPlatform{
		uuider:      myuuid.RealUUIDer{},
		callbackURL: callbackURL,
		Store:       store,
	}
}

func (p *FakePaymentPlatform) CreateTransaction(c context.Context, amount decimal.Decimal, applicationNumbers []string) (string, error) {
	return p.create(c, amount, applicationNumbers, p.callbackURL)
}

func (p *FakePaymentPlatform) create(c context.Context, amount decimal.Decimal, applicationNumbers []string, callbackURL string) (string, error) {
	// The real platform refuses these, so the fake does as well
	if !amount.IsPositive() {
		return "", myerrors.NewExternalServiceError(fmt.Errorf("amount %s is not positive", amount))
	}
	if len(applicationNumbers) == 0 {
		return "", myerrors.NewExternalServiceError(fmt.Errorf("no application numbers"))
	}

	tx := Transaction{
		ID:                 p.uuider.Create(),
		Amount:             amount,
		ApplicationNumbers: applicationNumbers,
		CallbackURL:        callbackURL,
		CreatedAt:          time.Now(),
	}
	err := p.Store.Put(c, tx.ID, tx)
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	return tx.ID, nil
}

func (p *FakePaymentPlatform) GetTransaction(c context.Context, id string) (Transaction, error) {
	tx, exists, err := p.Store.Get(c, id)
	if err != nil {
		return Transaction{}, myerrors.NewInternalError(err)
	}
	if !exists {
		return Transaction{}, myerrors.NewNotFoundError(fmt.Errorf("transaction %s does not exist", id))
	}
	return tx, nil
}

// Callback builds the notification the platform would post back once the transaction is settled
func (p *FakePaymentPlatform) Callback(c context.Context, id string, status payment.Status, paidAt time.Time) (payment.Callback, error) {
	tx, err := p.GetTransaction(c, id)
	if err != nil {
		return payment.Callback{}, err
	}
	return payment.Callback{
		TransactionID:  tx.ID,
		ConfirmationID: "CONF-" + tx.ID,
		Status:         status,
		PaidAt:         &paidAt,
	}, nil
}

type createRequest struct {
	Amount             decimal.Decimal `json:"amount"`
	ApplicationNumbers []string        `json:"applicationNumbers"`
	CallbackURL        string          `json:"callbackUrl"`
}

type createResponse struct {
	TransactionID string `json:"transactionId"`
}

// RegisterEndpoints exposes the fake over http, the same way the real platform does
func (p *FakePaymentPlatform) RegisterEndpoints(router *mux.Router) {
	router.HandleFunc("/api/transactions", p.createTransactionPage()).Methods("POST")
}

// Confirmer receives the callbacks the fake settles
type Confirmer func(c context.Context, callback payment.Callback) error

// RegisterSettleEndpoint lets a local user settle a transaction, since the fake never calls back by itself
func (p *FakePaymentPlatform) RegisterSettleEndpoint(router *mux.Router, confirm Confirmer) {
	router.HandleFunc("/fake/transactions/{transactionId}/settle", p.settlePage(confirm)).Methods("POST")
}

func (p *FakePaymentPlatform) settlePage(confirm Confirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := payment.Status(r.URL.Query().Get("status"))
		if status == "" {
			status = payment.StatusPaid
		}

		callback, err := p.Callback(r.Context(), mux.Vars(r)["transactionId"], status, time.Now())
		if err != nil {
			http.Error(w, err.Error(), myerrors.GetHTTPStatus(err))
			return
		}
		err = confirm(r.Context(), callback)
		if err != nil {
			http.Error(w, err.Error(), myerrors.GetHTTPStatus(err))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(callback)
	}
}

func (p *FakePaymentPlatform) createTransactionPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id, err := p.create(r.Context(), req.Amount, req.ApplicationNumbers, req.CallbackURL)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(createResponse{TransactionID: id})
	}
}
