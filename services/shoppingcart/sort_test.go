package shoppingcart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func numbers(apps []CartApplication) []string {
	result := []string{}
	for _, a := range apps {
		result = append(result, a.Number)
	}
	return result
}

func TestSortApplications(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	// the blank row comes first so blank-last is never an accident of stable order
	given := func() []CartApplication {
		return []CartApplication{
			{Number: "3", Applicant: " ", Representative: "", LastModifiedBy: "", Fees: "", LastModifiedDate: time.Time{}},
			{Number: "2", Applicant: "beta", Representative: "rep-b", LastModifiedBy: "bob", Fees: "20.00", LastModifiedDate: day},
			{Number: "1", Applicant: "alpha", Representative: "rep-a", LastModifiedBy: "amy", Fees: "100.00", LastModifiedDate: day.Add(time.Hour)},
		}
	}

	testCases := []struct {
		name     string
		criteria Criteria
		expected []string
	}{
		{"applicants ascending", Criteria{SortColumn: SortByApplicants, Ascending: true}, []string{"1", "2", "3"}},
		{"applicants descending", Criteria{SortColumn: SortByApplicants, Ascending: false}, []string{"2", "1", "3"}},
		{"representatives ascending", Criteria{SortColumn: SortByRepresentatives, Ascending: true}, []string{"1", "2", "3"}},
		{"representatives descending", Criteria{SortColumn: SortByRepresentatives, Ascending: false}, []string{"2", "1", "3"}},
		{"last modified by ascending", Criteria{SortColumn: SortByLastModifiedBy, Ascending: true}, []string{"1", "2", "3"}},
		{"last modified by descending", Criteria{SortColumn: SortByLastModifiedBy, Ascending: false}, []string{"2", "1", "3"}},
		{"fees numeric ascending", Criteria{SortColumn: SortByFees, Ascending: true}, []string{"2", "1", "3"}},
		{"fees numeric descending", Criteria{SortColumn: SortByFees, Ascending: false}, []string{"1", "2", "3"}},
		{"last modified date ascending", Criteria{SortColumn: SortByLastModifiedDate, Ascending: true}, []string{"2", "1", "3"}},
		{"last modified date descending", Criteria{SortColumn: SortByLastModifiedDate, Ascending: false}, []string{"1", "2", "3"}},
		{"no column keeps order", Criteria{}, []string{"3", "2", "1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			apps := given()
			sortApplications(apps, tc.criteria)
			assert.Equal(t, tc.expected, numbers(apps))
		})
	}
}

func TestPaginate(t *testing.T) {
	apps := []CartApplication{{Number: "1"}, {Number: "2"}, {Number: "3"}}

	assert.Equal(t, []string{"1", "2"}, numbers(paginate(apps, 1, 2)))
	assert.Equal(t, []string{"3"}, numbers(paginate(apps, 2, 2)))
	assert.Equal(t, []string{}, numbers(paginate(apps, 3, 2)))
	assert.Equal(t, []string{"1", "2", "3"}, numbers(paginate(apps, 0, 0)))
}
