package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/services/application"
	"github.com/MarcGrol/userarea/services/payment/paymentevents"
	"github.com/MarcGrol/userarea/services/shoppingcart"
)

// InitiatePayment locks the requested cart applications for username and opens a transaction at the payment platform
func (s *Service) InitiatePayment(c context.Context, username string, details PaymentDetails) (Initiation, error) {
	mainAccount, err := s.accounts.GetMainAccount(c, username)
	if err != nil {
		return Initiation{}, err
	}
	cart, cartFound, err := s.carts.GetByUser(c, mainAccount)
	if err != nil {
		return Initiation{}, err
	}

	items, err := s.carts.GetShoppingCartApplicationsByNumbers(c, details.ApplicationNumbers)
	if err != nil {
		return Initiation{}, err
	}
	for _, item := range items {
		if !cartFound || item.CartID != cart.ID {
			return Initiation{}, myerrors.NewSecurityViolationError(
				fmt.Errorf("application %s is not in the shopping cart of %s", item.Number, mainAccount))
		}
	}
	if len(items) == 0 {
		return Initiation{}, myerrors.NewCompletedByAnotherUserError(
			fmt.Errorf("none of applications %v is in a shopping cart anymore", details.ApplicationNumbers))
	}

	items = uniqueByNumber(items)
	total := decimal.Zero
	ids := []int64{}
	numbers := []string{}
	for _, item := range items {
		fees := item.FeesAmount()
		if fees.Valid {
			total = total.Add(fees.Decimal)
		}
		ids = append(ids, item.ApplicationID)
		numbers = append(numbers, item.Number)
	}

	err = s.lockAll(c, ids, username)
	if err != nil {
		return Initiation{}, err
	}

	// locks stay in place when the platform fails; the lock sweep recovers them
	transactionID, err := s.client.CreateTransaction(c, total, numbers)
	if err != nil {
		return Initiation{}, err
	}

	now := s.nower.Now()
	payment := Payment{
		TransactionID:      transactionID,
		Status:             StatusPending,
		Owner:              cart.User,
		PaidBy:             username,
		CartID:             cart.ID,
		ApplicationIDs:     joinIDs(ids),
		ApplicationNumbers: strings.Join(numbers, ","),
		Total:              total.StringFixed(2),
		CreatedDate:        now,
		LastModifiedDate:   now,
	}
	err = s.paymentStore.RunInTransaction(c, func(c context.Context) error {
		err := s.paymentStore.Put(c, payment.TransactionID, payment)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, paymentevents.TopicName, paymentevents.PaymentInitiated{
			TransactionID:      payment.TransactionID,
			Owner:              payment.Owner,
			PaidBy:             payment.PaidBy,
			CartID:             payment.CartID,
			ApplicationNumbers: numbers,
			Total:              payment.Total,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return Initiation{}, err
	}

	s.metrics.PaymentsInitiated.Inc()
	s.logger.Log(c, transactionID, mylog.SeverityInfo, "Payment %s of %s for %v initiated by %s", transactionID, payment.Total, numbers, username)

	redirectURL, err := url.JoinPath(s.cfg.PlatformURL, "payments", transactionID)
	if err != nil {
		return Initiation{}, myerrors.NewInternalError(err)
	}

	return Initiation{
		TransactionID: transactionID,
		RedirectURL:   redirectURL,
	}, nil
}

func uniqueByNumber(items []shoppingcart.CartApplication) []shoppingcart.CartApplication {
	seen := map[string]bool{}
	result := []shoppingcart.CartApplication{}
	for _, item := range items {
		if seen[item.Number] {
			continue
		}
		seen[item.Number] = true
		result = append(result, item)
	}
	return result
}

// lockAll releases the locks it took itself when one of the applications is locked by another user
func (s *Service) lockAll(c context.Context, ids []int64, username string) error {
	seen := map[int64]bool{}
	locked := []application.Application{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		app, err := s.applications.GetByIDAndLock(c, id, username)
		if err != nil {
			if len(locked) > 0 {
				_, releaseErr := s.applications.UpdateAndReleaseApplicationsLock(c, locked, username)
				if releaseErr != nil {
					s.logger.Log(c, username, mylog.SeverityError, "Error releasing %d locks of %s: %s", len(locked), username, releaseErr)
				}
			}
			return err
		}
		locked = append(locked, app)
	}
	return nil
}

// Confirm applies the outcome reported by the payment platform. Unknown transactions are ignored.
// Only a pending payment changes status; locks are released on every callback.
func (s *Service) Confirm(c context.Context, callback Callback) error {
	if !callback.Status.isValid() {
		return myerrors.NewInvalidInputError(fmt.Errorf("unknown payment status %q", callback.Status))
	}
	s.metrics.PaymentCallbacks.WithLabelValues(string(callback.Status)).Inc()

	var payment Payment
	found := false
	err := s.paymentStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		payment, found, err = s.paymentStore.Get(c, callback.TransactionID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found || payment.ApplicationNumbers == "" {
			return nil
		}

		if payment.Status != StatusPending {
			s.logger.Log(c, payment.TransactionID, mylog.SeverityWarn, "Payment %s already %s: callback with status %s ignored",
				payment.TransactionID, payment.Status, callback.Status)
			return nil
		}

		payment.Status = callback.Status
		payment.ConfirmationID = callback.ConfirmationID
		payment.ErrorMessage = callback.ErrorMessage
		payment.SubmissionDateTime = s.nower.Now()
		if callback.PaidAt != nil {
			payment.SubmissionDateTime = *callback.PaidAt
		}
		payment.LastModifiedDate = s.nower.Now()

		err = s.paymentStore.Put(c, payment.TransactionID, payment)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, paymentevents.TopicName, paymentevents.PaymentCompleted{
			TransactionID:  payment.TransactionID,
			ConfirmationID: payment.ConfirmationID,
			Status:         string(payment.Status),
			ErrorMessage:   payment.ErrorMessage,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		s.logger.Log(c, callback.TransactionID, mylog.SeverityWarn, "Callback for unknown payment %s ignored", callback.TransactionID)
		return nil
	}
	if payment.ApplicationNumbers == "" {
		s.logger.Log(c, callback.TransactionID, mylog.SeverityWarn, "Payment %s has no applications", callback.TransactionID)
		return nil
	}

	s.logger.Log(c, payment.TransactionID, mylog.SeverityInfo, "Payment %s has status %s", payment.TransactionID, payment.Status)

	err = s.releaseLocks(c, payment)
	if err != nil {
		return err
	}

	if payment.Status.IsPaid() {
		transactionID := payment.TransactionID
		s.executor.Go(c, "frontoffice-payment-update", func(c context.Context) {
			s.notifyFrontOffice(c, transactionID)
		})
	}

	return nil
}

func (s *Service) releaseLocks(c context.Context, payment Payment) error {
	ids, err := payment.IDs()
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	apps, err := s.applications.GetApplicationsByIDs(c, ids)
	if err != nil {
		return err
	}
	_, err = s.applications.UpdateAndReleaseApplicationsLock(c, apps, payment.PaidBy)
	if err != nil {
		return err
	}
	return nil
}

// notifyFrontOffice absorbs a failure into PAID_UPDATE_FO_FAILED
func (s *Service) notifyFrontOffice(c context.Context, transactionID string) {
	payment, found, err := s.paymentStore.Get(c, transactionID)
	if err != nil || !found {
		s.logger.Log(c, transactionID, mylog.SeverityError, "Error fetching payment %s for front office update: found:%v, err:%v", transactionID, found, err)
		return
	}

	err = s.frontOffice.NotifyPaymentStatus(c, payment)
	if err == nil {
		s.logger.Log(c, transactionID, mylog.SeverityInfo, "Front office updated for payment %s", transactionID)
		return
	}

	s.metrics.FrontOfficeFailures.Inc()
	s.logger.Log(c, transactionID, mylog.SeverityError, "Error updating front office for payment %s: %s", transactionID, err)

	err = s.paymentStore.RunInTransaction(c, func(c context.Context) error {
		payment, found, err := s.paymentStore.Get(c, transactionID)
		if err != nil {
			return err
		}
		if !found || payment.Status != StatusPaid {
			return nil
		}
		payment.Status = StatusPaidUpdateFOFailed
		payment.LastModifiedDate = s.nower.Now()
		return s.paymentStore.Put(c, transactionID, payment)
	})
	if err != nil {
		s.logger.Log(c, transactionID, mylog.SeverityError, "Error marking payment %s as %s: %s", transactionID, StatusPaidUpdateFOFailed, err)
	}
}
