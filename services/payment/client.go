package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/myhttpclient"
)

type ClientConfig struct {
	PlatformURL    string
	CreateEndpoint string
	CallbackURL    string
}

type createTransactionRequest struct {
	Amount             decimal.Decimal `json:"amount"`
	ApplicationNumbers []string        `json:"applicationNumbers"`
	CallbackURL        string          `json:"callbackUrl"`
}

type createTransactionResponse struct {
	TransactionID string `json:"transactionId"`
}

type httpPaymentClient struct {
	sender myhttpclient.HTTPSender
	cfg    ClientConfig
}

func NewPaymentClient(sender myhttpclient.HTTPSender, cfg ClientConfig) PaymentClient {
	return &httpPaymentClient{
		sender: sender,
		cfg:    cfg,
	}
}

// CreateTransaction mints a transaction at the payment platform; every failure is an external-service error
func (pc *httpPaymentClient) CreateTransaction(c context.Context, amount decimal.Decimal, applicationNumbers []string) (string, error) {
	requestBody, err := json.Marshal(createTransactionRequest{
		Amount:             amount,
		ApplicationNumbers: applicationNumbers,
		CallbackURL:        pc.cfg.CallbackURL,
	})
	if err != nil {
		return "", myerrors.NewInternalError(err)
	}

	status, body, err := pc.sender.Send(c, http.MethodPost, pc.cfg.PlatformURL+pc.cfg.CreateEndpoint, requestBody)
	if err != nil {
		return "", myerrors.NewExternalServiceError(fmt.Errorf("error creating payment transaction: %s", err))
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return "", myerrors.NewExternalServiceError(fmt.Errorf("payment platform returned %d", status))
	}

	resp := createTransactionResponse{}
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return "", myerrors.NewExternalServiceError(fmt.Errorf("error parsing payment platform response: %s", err))
	}
	if resp.TransactionID == "" {
		return "", myerrors.NewExternalServiceError(fmt.Errorf("payment platform returned no transaction id"))
	}

	return resp.TransactionID, nil
}
