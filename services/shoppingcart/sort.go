package shoppingcart

import (
	"sort"
	"strings"
)

type comparator struct {
	column    SortColumn
	ascending bool
}

// compare puts blank values last in both directions; equal values and unknown columns compare 0
func (cmp comparator) compare(a, b CartApplication) int {
	switch cmp.column {
	case SortByType:
		return cmp.text(a.Type, b.Type)
	case SortByNumber:
		return cmp.text(a.Number, b.Number)
	case SortByApplicants:
		return cmp.text(a.Applicant, b.Applicant)
	case SortByRepresentatives:
		return cmp.text(a.Representative, b.Representative)
	case SortByLastModifiedBy:
		return cmp.text(a.LastModifiedBy, b.LastModifiedBy)
	case SortByFees:
		feesA, feesB := a.FeesAmount(), b.FeesAmount()
		return cmp.directed(feesA.Valid, feesB.Valid, func() int {
			return feesA.Decimal.Cmp(feesB.Decimal)
		})
	case SortByLastModifiedDate:
		return cmp.directed(!a.LastModifiedDate.IsZero(), !b.LastModifiedDate.IsZero(), func() int {
			return a.LastModifiedDate.Compare(b.LastModifiedDate)
		})
	default:
		return 0
	}
}

func (cmp comparator) text(a, b string) int {
	return cmp.directed(strings.TrimSpace(a) != "", strings.TrimSpace(b) != "", func() int {
		return strings.Compare(a, b)
	})
}

func (cmp comparator) directed(aPresent, bPresent bool, compare func() int) int {
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

func sortApplications(apps []CartApplication, criteria Criteria) {
	if criteria.SortColumn == "" {
		return
	}
	cmp := comparator{column: criteria.SortColumn, ascending: criteria.Ascending}
	sort.SliceStable(apps, func(i, j int) bool {
		return cmp.compare(apps[i], apps[j]) < 0
	})
}

// page is 1-based; a non-positive page size disables paging
func paginate(apps []CartApplication, page int, pageSize int) []CartApplication {
	if pageSize <= 0 {
		return apps
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(apps) {
		return []CartApplication{}
	}
	end := start + pageSize
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end]
}
