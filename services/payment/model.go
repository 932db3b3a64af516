package payment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending            Status = "PENDING"
	StatusPaid               Status = "PAID"
	StatusPaidUpdateFOFailed Status = "PAID_UPDATE_FO_FAILED"
	StatusFailed             Status = "FAILED"
)

const (
	ErrorCodePaymentFailed = "PAYMENT_FAILED"
	// front-office status code for "Submitted"
	frontOfficeSubmittedCode = "5100"
)

func (s Status) IsPaid() bool {
	return s == StatusPaid || s == StatusPaidUpdateFOFailed
}

func (s Status) isValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusPaidUpdateFOFailed, StatusFailed:
		return true
	default:
		return false
	}
}

// Payment is never deleted; the transaction id from the payment platform is its key
type Payment struct {
	TransactionID      string
	ConfirmationID     string
	Status             Status
	Owner              string
	PaidBy             string
	ApplicationIDs     string `datastore:",noindex"`
	ApplicationNumbers string
	Total              string `datastore:",noindex"`
	CartID             string
	ErrorMessage       string `datastore:",noindex"`
	SubmissionDateTime time.Time
	CreatedDate        time.Time
	LastModifiedDate   time.Time
}

func (p Payment) IDs() ([]int64, error) {
	ids := []int64{}
	for _, s := range splitList(p.ApplicationIDs) {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid application id %q in payment %s: %s", s, p.TransactionID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (p Payment) Numbers() []string {
	return splitList(p.ApplicationNumbers)
}

func (p Payment) TotalAmount() decimal.Decimal {
	total, err := decimal.NewFromString(p.Total)
	if err != nil {
		return decimal.Zero
	}
	return total
}

func splitList(joined string) []string {
	result := []string{}
	for _, s := range strings.Split(joined, ",") {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// PaymentApplication is the snapshot of an application as it was paid for
type PaymentApplication struct {
	TransactionID string
	ApplicationID int64
	Number        string
	Type          string
	IPRightType   string
	Applicant     string
	Fees          string `datastore:",noindex"`
}

func paymentApplicationKey(transactionID string, applicationID int64) string {
	return fmt.Sprintf("%s/%d", transactionID, applicationID)
}

func (a PaymentApplication) FeesAmount() decimal.NullDecimal {
	fees, err := decimal.NewFromString(a.Fees)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(fees)
}

type PaymentDetails struct {
	ApplicationNumbers []string `json:"applicationNumbers"`
}

type Initiation struct {
	TransactionID string `json:"transactionId"`
	RedirectURL   string `json:"redirectUrl"`
}

// Callback is what the payment platform posts when a transaction reaches a final state
type Callback struct {
	TransactionID  string     `json:"transactionId"`
	ConfirmationID string     `json:"confirmationId"`
	Status         Status     `json:"status"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	ErrorMessage   string     `json:"errorMessage,omitempty"`
}

type ConfirmedApplication struct {
	ApplicationID int64               `json:"applicationId"`
	Number        string              `json:"number"`
	Type          string              `json:"type"`
	Applicant     string              `json:"applicant"`
	Fees          decimal.NullDecimal `json:"fees"`
}

type Confirmation struct {
	TransactionID      string                 `json:"transactionId"`
	ConfirmationID     string                 `json:"confirmationId"`
	Status             Status                 `json:"status"`
	PaidBy             string                 `json:"paidBy"`
	Total              decimal.Decimal        `json:"total"`
	SubmissionDateTime time.Time              `json:"submissionDateTime"`
	Applications       []ConfirmedApplication `json:"applications"`
}

type InvoiceLine struct {
	ApplicationID  int64               `json:"applicationId"`
	Number         string              `json:"number"`
	IPRightType    string              `json:"ipRightType"`
	Applicant      string              `json:"applicant"`
	Representative string              `json:"representative"`
	Status         string              `json:"status"`
	Fees           decimal.NullDecimal `json:"fees"`
}

type Invoice struct {
	TransactionID      string          `json:"transactionId"`
	ConfirmationID     string          `json:"confirmationId"`
	Owner              string          `json:"owner"`
	PaidBy             string          `json:"paidBy"`
	Total              decimal.Decimal `json:"total"`
	SubmissionDateTime time.Time       `json:"submissionDateTime"`
	Lines              []InvoiceLine   `json:"lines"`
}

type StatusView struct {
	TransactionID string `json:"transactionId"`
	Status        Status `json:"status"`
	IsValid       bool   `json:"isValid"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
	ErrorCode     string `json:"errorCode,omitempty"`
}
