package signature

import (
	"sort"
	"strings"
	"time"
)

const signedAtLayout = "2006-01-02T15:04:05"

type comparator struct {
	column    SortColumn
	ascending bool
}

func newComparator(criteria Criteria) comparator {
	ascending := criteria.Ascending
	if criteria.SortColumn == SortBySignedAt {
		// the signed-at compare below is already most-recent-first
		ascending = !ascending
	}
	return comparator{
		column:    criteria.SortColumn,
		ascending: ascending,
	}
}

// compare orders blank values last whatever the direction; unknown columns compare equal
func (cmp comparator) compare(a, b Application) int {
	switch cmp.column {
	case SortByNumber:
		return cmp.blankLast(a.Number, b.Number, strings.Compare(a.Number, b.Number))
	case SortByType:
		return cmp.blankLast(a.Type, b.Type, strings.Compare(a.Type, b.Type))
	case SortByApplicant:
		return cmp.blankLast(a.Applicant, b.Applicant, strings.Compare(a.Applicant, b.Applicant))
	case SortBySignedAt:
		ta, okA := parseSignedAt(a.SignedAt)
		tb, okB := parseSignedAt(b.SignedAt)
		return cmp.presentFirst(okA, okB, func() int {
			return -compareDateThenTime(ta, tb)
		})
	default:
		return 0
	}
}

func (cmp comparator) blankLast(a, b string, result int) int {
	return cmp.presentFirst(strings.TrimSpace(a) != "", strings.TrimSpace(b) != "", func() int { return result })
}

func (cmp comparator) presentFirst(aPresent, bPresent bool, compare func() int) int {
	switch {
	case !aPresent && !bPresent:
		return 0
	case !aPresent:
		return 1
	case !bPresent:
		return -1
	}
	result := compare()
	if !cmp.ascending {
		return -result
	}
	return result
}

func parseSignedAt(value string) (time.Time, bool) {
	stamp, _, _ := strings.Cut(value, ",")
	stamp = strings.TrimSpace(stamp)
	if stamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(signedAtLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func compareDateThenTime(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	dateA := ay*10000 + int(am)*100 + ad
	dateB := by*10000 + int(bm)*100 + bd
	if dateA != dateB {
		return compareInt(dateA, dateB)
	}
	return compareInt(a.Hour()*3600+a.Minute()*60+a.Second(), b.Hour()*3600+b.Minute()*60+b.Second())
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sortApplications(apps []Application, criteria Criteria) {
	cmp := newComparator(criteria)
	sort.SliceStable(apps, func(i, j int) bool {
		return cmp.compare(apps[i], apps[j]) < 0
	})
}
