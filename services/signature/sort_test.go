package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbers(apps []Application) []string {
	result := []string{}
	for _, a := range apps {
		result = append(result, a.Number)
	}
	return result
}

func TestSortApplications(t *testing.T) {
	fixture := func() []Application {
		return []Application{
			{Number: "002", Type: "Trademark", Applicant: "Beta", SignedAt: "2024-03-02T08:00:00,en"},
			{Number: "001", Type: "Design", Applicant: "", SignedAt: "2024-03-01T23:59:59,nl"},
			{Number: "003", Type: "", Applicant: "Alpha", SignedAt: "2024-03-02T17:30:00,fr"},
		}
	}

	t.Run("signed-at ascending request yields oldest first", func(t *testing.T) {
		apps := fixture()
		sortApplications(apps, Criteria{SortColumn: SortBySignedAt, Ascending: true})
		assert.Equal(t, []string{"001", "002", "003"}, numbers(apps))
	})

	t.Run("signed-at descending request yields newest first", func(t *testing.T) {
		apps := fixture()
		sortApplications(apps, Criteria{SortColumn: SortBySignedAt, Ascending: false})
		assert.Equal(t, []string{"003", "002", "001"}, numbers(apps))
	})

	t.Run("signed-at compare is negated before direction", func(t *testing.T) {
		apps := fixture()
		plain := comparator{column: SortBySignedAt, ascending: true}
		// without the swapped flag the newest comes first
		assert.Equal(t, -1, plain.compare(apps[0], apps[1]))
		assert.Equal(t, 1, newComparator(Criteria{SortColumn: SortBySignedAt, Ascending: true}).compare(apps[0], apps[1]))
	})

	t.Run("number ascending and descending", func(t *testing.T) {
		apps := fixture()
		sortApplications(apps, Criteria{SortColumn: SortByNumber, Ascending: true})
		assert.Equal(t, []string{"001", "002", "003"}, numbers(apps))

		sortApplications(apps, Criteria{SortColumn: SortByNumber, Ascending: false})
		assert.Equal(t, []string{"003", "002", "001"}, numbers(apps))
	})

	t.Run("blank applicant last in both directions", func(t *testing.T) {
		apps := fixture()
		sortApplications(apps, Criteria{SortColumn: SortByApplicant, Ascending: true})
		assert.Equal(t, []string{"003", "002", "001"}, numbers(apps))

		sortApplications(apps, Criteria{SortColumn: SortByApplicant, Ascending: false})
		assert.Equal(t, []string{"002", "003", "001"}, numbers(apps))
	})

	t.Run("blank type last", func(t *testing.T) {
		apps := fixture()
		sortApplications(apps, Criteria{SortColumn: SortByType, Ascending: false})
		assert.Equal(t, []string{"002", "001", "003"}, numbers(apps))
	})

	t.Run("unparseable signed-at sorts last", func(t *testing.T) {
		apps := fixture()
		apps[0].SignedAt = "yesterday"
		sortApplications(apps, Criteria{SortColumn: SortBySignedAt, Ascending: false})
		assert.Equal(t, []string{"003", "001", "002"}, numbers(apps))
	})

	t.Run("unknown column keeps order", func(t *testing.T) {
		apps := fixture()
		sortApplications(apps, Criteria{SortColumn: "COLOR", Ascending: true})
		assert.Equal(t, []string{"002", "001", "003"}, numbers(apps))
	})
}
