package payment

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mylog"
	"github.com/MarcGrol/userarea/lib/mystore"
	"github.com/MarcGrol/userarea/services/application"
	"github.com/MarcGrol/userarea/services/shoppingcart"
)

func (s *Service) getPayment(c context.Context, transactionID string) (Payment, error) {
	payment, found, err := s.paymentStore.Get(c, transactionID)
	if err != nil {
		return Payment{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Payment{}, myerrors.NewNotFoundError(fmt.Errorf("payment %s not found", transactionID))
	}
	return payment, nil
}

func (s *Service) getPaidPayment(c context.Context, transactionID string) (Payment, error) {
	payment, err := s.getPayment(c, transactionID)
	if err != nil {
		return Payment{}, err
	}
	if !payment.Status.IsPaid() {
		return Payment{}, myerrors.NewIllegalStateError(fmt.Errorf("payment %s has status %s", transactionID, payment.Status))
	}
	return payment, nil
}

// VerifyAccess allows the payer and everybody acting for the owning main account
func (s *Service) VerifyAccess(c context.Context, username string, transactionID string) error {
	payment, err := s.getPayment(c, transactionID)
	if err != nil {
		return err
	}
	if payment.PaidBy == username {
		return nil
	}
	mainAccount, err := s.accounts.GetMainAccount(c, username)
	if err != nil {
		return err
	}
	if mainAccount != payment.Owner {
		return myerrors.NewSecurityViolationError(fmt.Errorf("payment %s does not belong to %s", transactionID, username))
	}
	return nil
}

// GetConfirmation snapshots the paid applications and, on first view, promotes them to submitted
// and takes them out of the shopping cart
func (s *Service) GetConfirmation(c context.Context, transactionID string) (Confirmation, error) {
	payment, err := s.getPaidPayment(c, transactionID)
	if err != nil {
		return Confirmation{}, err
	}
	ids, err := payment.IDs()
	if err != nil {
		return Confirmation{}, myerrors.NewInternalError(err)
	}

	items, err := s.carts.GetShoppingCartApplicationsByIDs(c, ids)
	if err != nil {
		return Confirmation{}, err
	}
	err = s.snapshot(c, transactionID, items)
	if err != nil {
		return Confirmation{}, err
	}

	err = s.submit(c, payment, ids)
	if err != nil {
		return Confirmation{}, err
	}

	rows, err := s.snapshotOf(c, transactionID)
	if err != nil {
		return Confirmation{}, err
	}

	confirmation := Confirmation{
		TransactionID:      payment.TransactionID,
		ConfirmationID:     payment.ConfirmationID,
		Status:             payment.Status,
		PaidBy:             payment.PaidBy,
		Total:              payment.TotalAmount(),
		SubmissionDateTime: payment.SubmissionDateTime,
		Applications:       []ConfirmedApplication{},
	}
	seen := map[string]bool{}
	for _, row := range rows {
		if seen[row.Number] {
			continue
		}
		seen[row.Number] = true
		confirmation.Applications = append(confirmation.Applications, ConfirmedApplication{
			ApplicationID: row.ApplicationID,
			Number:        row.Number,
			Type:          row.Type,
			Applicant:     row.Applicant,
			Fees:          row.FeesAmount(),
		})
	}
	sort.SliceStable(confirmation.Applications, func(i, j int) bool {
		return confirmation.Applications[i].Number < confirmation.Applications[j].Number
	})

	return confirmation, nil
}

func (s *Service) snapshot(c context.Context, transactionID string, items []shoppingcart.CartApplication) error {
	for _, item := range items {
		row := PaymentApplication{
			TransactionID: transactionID,
			ApplicationID: item.ApplicationID,
			Number:        item.Number,
			Type:          item.Type,
			IPRightType:   ipRightTypeOf(item),
			Applicant:     item.Applicant,
			Fees:          item.Fees,
		}
		err := s.paymentApplicationStore.Put(c, paymentApplicationKey(transactionID, item.ApplicationID), row)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
	}
	return nil
}

func ipRightTypeOf(item shoppingcart.CartApplication) string {
	switch {
	case item.IsTrademark:
		return application.FoModuleTrademark
	case item.IsDesign:
		return application.FoModuleDesign
	default:
		return ""
	}
}

func (s *Service) snapshotOf(c context.Context, transactionID string) ([]PaymentApplication, error) {
	rows, err := s.paymentApplicationStore.Query(c, []mystore.Filter{{Field: "TransactionID", Compare: "=", Value: transactionID}}, "Number")
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	return rows, nil
}

func (s *Service) submit(c context.Context, payment Payment, ids []int64) error {
	apps, err := s.applications.GetApplicationsByIDs(c, ids)
	if err != nil {
		return err
	}

	now := s.nower.Now()
	submitted := []application.Application{}
	skipped := map[int64]bool{}
	for _, app := range apps {
		// someone else took the application over after the payment released it
		if app.IsLocked() && !app.IsLockedBy(payment.PaidBy) {
			s.logger.Log(c, payment.TransactionID, mylog.SeverityWarn, "Application %s of payment %s is locked by %s, not submitted",
				app.Number, payment.TransactionID, *app.LockedBy)
			skipped[app.ID] = true
			continue
		}
		if app.Status == application.StatusSubmitted {
			continue
		}
		app.Status = application.StatusSubmitted
		app.LastModifiedDate = &now
		app.StatusDate = &now
		app.ApplicationDate = &now
		submitted = append(submitted, app)
	}
	err = s.applications.SaveAll(c, submitted, payment.PaidBy)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if skipped[id] {
			continue
		}
		err = s.carts.RemoveApplication(c, id)
		if err != nil {
			return err
		}
	}

	if len(submitted) > 0 {
		s.logger.Log(c, payment.TransactionID, mylog.SeverityInfo, "Submitted %d applications of payment %s", len(submitted), payment.TransactionID)
	}
	return nil
}

// GetInvoice is read-only: it combines the paid snapshot with the current applications
func (s *Service) GetInvoice(c context.Context, transactionID string) (Invoice, error) {
	payment, err := s.getPaidPayment(c, transactionID)
	if err != nil {
		return Invoice{}, err
	}

	rows, err := s.snapshotOf(c, transactionID)
	if err != nil {
		return Invoice{}, err
	}
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ApplicationID)
	}
	apps, err := s.applications.GetApplicationsByIDs(c, ids)
	if err != nil {
		return Invoice{}, err
	}
	current := map[int64]application.Application{}
	for _, app := range apps {
		current[app.ID] = app
	}

	invoice := Invoice{
		TransactionID:      payment.TransactionID,
		ConfirmationID:     payment.ConfirmationID,
		Owner:              payment.Owner,
		PaidBy:             payment.PaidBy,
		Total:              payment.TotalAmount(),
		SubmissionDateTime: payment.SubmissionDateTime,
		Lines:              []InvoiceLine{},
	}
	for _, row := range rows {
		line := InvoiceLine{
			ApplicationID: row.ApplicationID,
			Number:        row.Number,
			IPRightType:   row.IPRightType,
			Applicant:     row.Applicant,
			Fees:          row.FeesAmount(),
		}
		if app, found := current[row.ApplicationID]; found {
			line.Representative = app.Representative
			line.Status = app.Status
		}
		invoice.Lines = append(invoice.Lines, line)
	}

	return invoice, nil
}

func (s *Service) CheckStatus(c context.Context, transactionID string) (StatusView, error) {
	payment, err := s.getPayment(c, transactionID)
	if err != nil {
		return StatusView{}, err
	}

	view := StatusView{
		TransactionID: payment.TransactionID,
		Status:        payment.Status,
		IsValid:       payment.Status.IsPaid(),
	}
	if payment.ErrorMessage != "" {
		view.ErrorMessage = payment.ErrorMessage
		view.ErrorCode = ErrorCodePaymentFailed
	}
	return view, nil
}
