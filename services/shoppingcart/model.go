package shoppingcart

import (
	"time"

	"github.com/shopspring/decimal"
)

type SortColumn string

const (
	SortByType             SortColumn = "TYPE"
	SortByNumber           SortColumn = "NUMBER"
	SortByApplicants       SortColumn = "APPLICANTS"
	SortByRepresentatives  SortColumn = "REPRESENTATIVES"
	SortByFees             SortColumn = "FEES"
	SortByLastModifiedDate SortColumn = "LAST_MODIFIED_DATE"
	SortByLastModifiedBy   SortColumn = "LAST_MODIFIED_BY"
)

// Cart belongs to a main account; there is at most one per main account
type Cart struct {
	ID          string
	User        string
	CreatedDate time.Time
}

// CartApplication is a line item: a snapshot of an application awaiting payment.
// Stored under its application id, so an application is in at most one cart.
type CartApplication struct {
	ApplicationID  int64
	CartID         string
	Type           string
	Number         string
	Applicant      string
	Representative string
	// canonical decimal; empty when unknown
	Fees             string `datastore:",noindex"`
	IsTrademark      bool
	IsDesign         bool
	LastModifiedBy   string
	LastModifiedDate time.Time
}

func (a CartApplication) FeesAmount() decimal.NullDecimal {
	if a.Fees == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(a.Fees)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

func formatFees(fees decimal.NullDecimal) string {
	if !fees.Valid {
		return ""
	}
	return fees.Decimal.StringFixed(2)
}

type Criteria struct {
	SortColumn SortColumn `form:"sortColumn"`
	Ascending  bool       `form:"ascending"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

type CartApplicationView struct {
	ApplicationID    int64               `json:"applicationId"`
	Type             string              `json:"type"`
	Number           string              `json:"number"`
	Applicant        string              `json:"applicant"`
	Representative   string              `json:"representative"`
	Fees             decimal.NullDecimal `json:"fees"`
	IsTrademark      bool                `json:"isTrademark"`
	IsDesign         bool                `json:"isDesign"`
	LastModifiedBy   string              `json:"lastModifiedBy"`
	LastModifiedDate *time.Time          `json:"lastModifiedDate,omitempty"`
}

type Search struct {
	Items []CartApplicationView `json:"items"`
	Total int                   `json:"total"`
}

func toView(a CartApplication) CartApplicationView {
	view := CartApplicationView{
		ApplicationID:  a.ApplicationID,
		Type:           a.Type,
		Number:         a.Number,
		Applicant:      a.Applicant,
		Representative: a.Representative,
		Fees:           a.FeesAmount(),
		IsTrademark:    a.IsTrademark,
		IsDesign:       a.IsDesign,
		LastModifiedBy: a.LastModifiedBy,
	}
	if !a.LastModifiedDate.IsZero() {
		modified := a.LastModifiedDate
		view.LastModifiedDate = &modified
	}
	return view
}

type modifyResponse struct {
	ResumeURL string `json:"resumeUrl"`
}
