package filter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markoswell/optivest/internal/filter"
)

type record struct {
	status  string
	kind    string
	created time.Time
	fields  []string
}

func (r record) StatusValue() string    { return r.status }
func (r record) TypeValue() string      { return r.kind }
func (r record) CreatedTime() time.Time { return r.created }
func (r record) SearchFields() []string { return r.fields }

// Wednesday 2024-06-12, mid-month, mid-ISO-week.
var now = time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)

func TestApply_ZeroCriteriaMatchesEverything(t *testing.T) {
	items := []record{
		{status: "pending"},
		{status: "success"},
	}

	got := filter.Apply(items, filter.Criteria{}, now)

	assert.Equal(t, items, got)
}

func TestApply_Status(t *testing.T) {
	items := []record{
		{status: "pending", fields: []string{"one"}},
		{status: "success", fields: []string{"two"}},
		{status: "Pending", fields: []string{"three"}},
	}

	got := filter.Apply(items, filter.Criteria{Status: "pending"}, now)

	require.Len(t, got, 2, "status match is case-insensitive")

	gotAll := filter.Apply(items, filter.Criteria{Status: filter.All}, now)
	assert.Equal(t, items, gotAll, "the all sentinel disables the predicate")
}

func TestApply_DateRanges(t *testing.T) {
	today := record{created: now.Add(-2 * time.Hour)}
	thisWeek := record{created: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}  // Monday same week
	thisMonth := record{created: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}  // same month, earlier week
	lastMonth := record{created: time.Date(2024, 5, 28, 9, 0, 0, 0, time.UTC)} // same ISO-year, older

	items := []record{today, thisWeek, thisMonth, lastMonth}

	tests := []struct {
		name    string
		r       filter.DateRange
		wantLen int
	}{
		{name: "Today", r: filter.DateRangeToday, wantLen: 1},
		{name: "Week", r: filter.DateRangeWeek, wantLen: 2},
		{name: "Month", r: filter.DateRangeMonth, wantLen: 3},
		{name: "All", r: filter.DateRangeAll, wantLen: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Apply(items, filter.Criteria{DateRange: tt.r}, now)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestApply_Search(t *testing.T) {
	items := []record{
		{fields: []string{"Jasmine Cole", "jasmine@example.com", "500"}},
		{fields: []string{"Victor Obi", "victor@example.com", "1200"}},
		{fields: []string{"", "", ""}},
	}

	got := filter.Apply(items, filter.Criteria{Search: "JAS"}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Jasmine Cole", got[0].fields[0])

	got = filter.Apply(items, filter.Criteria{Search: "200"}, now)
	require.Len(t, got, 1)
	assert.Equal(t, "Victor Obi", got[0].fields[0])
}

func TestApply_Conjunction(t *testing.T) {
	items := []record{
		{status: "active", created: now, fields: []string{"Jasmine Cole"}},
		{status: "active", created: now, fields: []string{"Victor Obi"}},
		{status: "pending", created: now, fields: []string{"Jason Reed"}},
	}

	got := filter.Apply(items, filter.Criteria{Status: "active", Search: "jas"}, now)

	require.Len(t, got, 1)
	assert.Equal(t, "Jasmine Cole", got[0].fields[0])
}

func TestApply_Idempotent(t *testing.T) {
	items := []record{
		{status: "pending", created: now, fields: []string{"alpha"}},
		{status: "success", created: now.AddDate(0, -2, 0), fields: []string{"beta"}},
		{status: "declined", created: now, fields: []string{"gamma"}},
	}

	c := filter.Criteria{Status: "pending", DateRange: filter.DateRangeMonth, Search: "al"}

	once := filter.Apply(items, c, now)
	twice := filter.Apply(once, c, now)

	assert.Equal(t, once, twice)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := []record{
		{status: "pending"},
		{status: "success"},
	}

	_ = filter.Apply(items, filter.Criteria{Status: "pending"}, now)

	assert.Equal(t, "pending", items[0].status)
	assert.Equal(t, "success", items[1].status)
	assert.Len(t, items, 2)
}
