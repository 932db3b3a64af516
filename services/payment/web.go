package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/userarea/lib/myauth"
	"github.com/MarcGrol/userarea/lib/mycontext"
	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/myhttp"
	"github.com/MarcGrol/userarea/lib/mylog"
)

type webService struct {
	service *Service
	logger  mylog.Logger
}

func NewWebService(service *Service) *webService {
	return &webService{
		service: service,
		logger:  mylog.New("payment"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/payments", s.initiatePayment()).Methods("POST")
	router.HandleFunc("/api/payments/history", s.getHistory()).Methods("GET")
	router.HandleFunc("/api/payments/{transactionId}/confirmation", s.getConfirmation()).Methods("GET")
	router.HandleFunc("/api/payments/{transactionId}/invoice", s.getInvoice()).Methods("GET")
	router.HandleFunc("/api/payments/{transactionId}/status", s.checkStatus()).Methods("GET")

	// called by the payment platform
	router.HandleFunc("/payments/callback", s.callback()).Methods("POST")

	return nil
}

func principalOf(c context.Context) (myauth.Principal, error) {
	principal, found := myauth.PrincipalFromContext(c)
	if !found {
		return myauth.Principal{}, myerrors.NewAuthenticationError(fmt.Errorf("missing principal"))
	}
	return principal, nil
}

func (s *webService) initiatePayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		principal, err := principalOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		details := PaymentDetails{}
		err = json.NewDecoder(r.Body).Decode(&details)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}
		if len(details.ApplicationNumbers) == 0 {
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputError(fmt.Errorf("missing applicationNumbers")))
			return
		}

		initiation, err := s.service.InitiatePayment(c, principal.Username, details)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, initiation)
	}
}

// callback always answers 200: the payment platform cannot act on errors
func (s *webService) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		callback := Callback{}
		err := json.NewDecoder(r.Body).Decode(&callback)
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityError, "Error parsing payment callback: %s", err)
		} else {
			err = s.service.Confirm(c, callback)
			if err != nil {
				s.logger.Log(c, callback.TransactionID, mylog.SeverityError, "Error processing callback of payment %s: %s", callback.TransactionID, err)
			}
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Callback received",
		})
	}
}

func (s *webService) authorizedTransaction(c context.Context, r *http.Request) (string, error) {
	principal, err := principalOf(c)
	if err != nil {
		return "", err
	}
	transactionID := mux.Vars(r)["transactionId"]
	err = s.service.VerifyAccess(c, principal.Username, transactionID)
	if err != nil {
		return "", err
	}
	return transactionID, nil
}

func (s *webService) getConfirmation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		transactionID, err := s.authorizedTransaction(c, r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		confirmation, err := s.service.GetConfirmation(c, transactionID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, confirmation)
	}
}

func (s *webService) getInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		transactionID, err := s.authorizedTransaction(c, r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		invoice, err := s.service.GetInvoice(c, transactionID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, invoice)
	}
}

func (s *webService) checkStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		transactionID, err := s.authorizedTransaction(c, r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		status, err := s.service.CheckStatus(c, transactionID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, status)
	}
}

func (s *webService) getHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		principal, err := principalOf(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		criteria := HistoryCriteria{}
		err = formcodec.NewDecoder().Decode(&criteria, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		page, err := s.service.GetPaymentHistory(c, principal.Username, criteria)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, page)
	}
}
