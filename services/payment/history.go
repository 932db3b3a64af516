package payment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/userarea/lib/myerrors"
	"github.com/MarcGrol/userarea/lib/mystore"
)

type HistorySortColumn string

const (
	SortByTransactionID  HistorySortColumn = "TRANSACTION_ID"
	SortByConfirmationID HistorySortColumn = "CONFIRMATION_ID"
	SortBySubmissionDate HistorySortColumn = "SUBMISSION_DATE"
	SortByTotal          HistorySortColumn = "TOTAL"
	SortByPaidBy         HistorySortColumn = "PAID_BY"

	historyDateLayout = "2006-01-02"
)

type HistoryCriteria struct {
	Search     string            `form:"search"`
	From       string            `form:"from"`
	To         string            `form:"to"`
	SortColumn HistorySortColumn `form:"sortColumn"`
	Ascending  bool              `form:"ascending"`
	Page       int               `form:"page"`
	PageSize   int               `form:"pageSize"`
}

type HistoryItem struct {
	TransactionID      string          `json:"transactionId"`
	ConfirmationID     string          `json:"confirmationId"`
	Status             Status          `json:"status"`
	ApplicationNumbers []string        `json:"applicationNumbers"`
	Total              decimal.Decimal `json:"total"`
	PaidBy             string          `json:"paidBy"`
	SubmissionDateTime time.Time       `json:"submissionDateTime"`
}

type HistoryPage struct {
	Items []HistoryItem `json:"items"`
	Total int           `json:"total"`
}

var searchableColumns = map[string]func(p Payment) string{
	"TransactionID":      func(p Payment) string { return p.TransactionID },
	"ConfirmationID":     func(p Payment) string { return p.ConfirmationID },
	"ApplicationNumbers": func(p Payment) string { return p.ApplicationNumbers },
	"PaidBy":             func(p Payment) string { return p.PaidBy },
	"Owner":              func(p Payment) string { return p.Owner },
}

// GetPaymentHistory lists the paid transactions of the caller's main account
func (s *Service) GetPaymentHistory(c context.Context, username string, criteria HistoryCriteria) (HistoryPage, error) {
	from, to, err := parseRange(criteria.From, criteria.To)
	if err != nil {
		return HistoryPage{}, err
	}

	mainAccount, err := s.accounts.GetMainAccount(c, username)
	if err != nil {
		return HistoryPage{}, err
	}

	payments, err := s.paymentStore.Query(c, []mystore.Filter{{Field: "Owner", Compare: "=", Value: mainAccount}}, "")
	if err != nil {
		return HistoryPage{}, myerrors.NewInternalError(err)
	}

	matching := []Payment{}
	for _, p := range payments {
		if !p.Status.IsPaid() {
			continue
		}
		if !from.IsZero() && p.SubmissionDateTime.Before(from) {
			continue
		}
		if !to.IsZero() && !p.SubmissionDateTime.Before(to) {
			continue
		}
		if !s.matches(p, criteria.Search) {
			continue
		}
		matching = append(matching, p)
	}

	sortPayments(matching, criteria)

	page := HistoryPage{
		Items: []HistoryItem{},
		Total: len(matching),
	}
	for _, p := range paginate(matching, criteria.Page, criteria.PageSize) {
		page.Items = append(page.Items, HistoryItem{
			TransactionID:      p.TransactionID,
			ConfirmationID:     p.ConfirmationID,
			Status:             p.Status,
			ApplicationNumbers: p.Numbers(),
			Total:              p.TotalAmount(),
			PaidBy:             p.PaidBy,
			SubmissionDateTime: p.SubmissionDateTime,
		})
	}
	return page, nil
}

// parseRange returns an exclusive upper bound: the day after to
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if fromStr != "" {
		from, err = time.Parse(historyDateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, myerrors.NewInvalidInputError(fmt.Errorf("invalid from-date %q: %s", fromStr, err))
		}
	}
	if toStr != "" {
		to, err = time.Parse(historyDateLayout, toStr)
		if err != nil {
			return time.Time{}, time.Time{}, myerrors.NewInvalidInputError(fmt.Errorf("invalid to-date %q: %s", toStr, err))
		}
		to = to.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func (s *Service) matches(p Payment, search string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, column := range s.cfg.SearchableColumns {
		value, found := searchableColumns[column]
		if !found {
			continue
		}
		if strings.Contains(strings.ToLower(value(p)), search) {
			return true
		}
	}
	return false
}

func sortPayments(payments []Payment, criteria HistoryCriteria) {
	column := criteria.SortColumn
	ascending := criteria.Ascending
	if column == "" {
		// most recent first
		column, ascending = SortBySubmissionDate, false
	}

	cmp := historyComparator{column: column, ascending: ascending}
	sort.SliceStable(payments, func(i, j int) bool {
		return cmp.compare(payments[i], payments[j]) < 0
	})
}

type historyComparator struct {
	column    HistorySortColumn
	ascending bool
}

// compare puts blank values last in both directions
func (cmp historyComparator) compare(a, b Payment) int {
	switch cmp.column {
	case SortByTransactionID:
		return cmp.text(a.TransactionID, b.TransactionID)
	case SortByConfirmationID:
		return cmp.text(a.ConfirmationID, b.ConfirmationID)
	case SortBySubmissionDate:
		return cmp.directed(!a.SubmissionDateTime.IsZero(), !b.SubmissionDateTime.IsZero(), func() int {
			return a.SubmissionDateTime.Compare(b.SubmissionDateTime)
		})
	case SortByTotal:
		return cmp.directed(strings.TrimSpace(a.Total) != "", strings.TrimSpace(b.Total) != "", func() int {
			return a.TotalAmount().Cmp(b.TotalAmount())
		})
	case SortByPaidBy:
		return cmp.text(a.PaidBy, b.PaidBy)
	default:
		return 0
	}
}

func (cmp historyComparator) text(a, b string) int {
	return cmp.directed(strings.TrimSpace(a) != "", strings.TrimSpace(b) != "", func() int {
		return strings.Compare(a, b)
	})
}

func (cmp historyComparator) directed(aPresent, bPresent bool, compare func() int) int {
	switch {
	case !aPresent && !bPresent:
		return 0
	case !aPresent:
		return 1
	case !bPresent:
		return -1
	}
	if cmp.ascending {
		return compare()
	}
	return -compare()
}

func paginate(payments []Payment, page int, pageSize int) []Payment {
	if pageSize <= 0 {
		return payments
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(payments) {
		return []Payment{}
	}
	return payments[start:min(start+pageSize, len(payments))]
}
