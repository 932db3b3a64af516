package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/userarea/lib/myhttpclient"
)

type FrontOfficeConfig struct {
	URL                   string
	PaymentUpdateEndpoint string
}

type paymentUpdateRequest struct {
	TransactionID      string   `json:"transactionId"`
	ConfirmationID     string   `json:"confirmationId"`
	ApplicationNumbers []string `json:"applicationNumbers"`
	Status             string   `json:"status"`
	Code               string   `json:"code"`
}

type httpFrontOffice struct {
	sender myhttpclient.HTTPSender
	cfg    FrontOfficeConfig
}

func NewFrontOfficeNotifier(sender myhttpclient.HTTPSender, cfg FrontOfficeConfig) FrontOfficeNotifier {
	return &httpFrontOffice{
		sender: sender,
		cfg:    cfg,
	}
}

func (fo *httpFrontOffice) NotifyPaymentStatus(c context.Context, payment Payment) error {
	requestBody, err := json.Marshal(paymentUpdateRequest{
		TransactionID:      payment.TransactionID,
		ConfirmationID:     payment.ConfirmationID,
		ApplicationNumbers: payment.Numbers(),
		Status:             string(payment.Status),
		Code:               frontOfficeSubmittedCode,
	})
	if err != nil {
		return err
	}

	status, _, err := fo.sender.Send(c, http.MethodPost, fo.cfg.URL+fo.cfg.PaymentUpdateEndpoint, requestBody)
	if err != nil {
		return fmt.Errorf("error updating front office: %s", err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("front office returned %d", status)
	}
	return nil
}
