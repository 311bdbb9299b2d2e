package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markoswell/optivest/internal/plan"
)

func TestPlan_Term(t *testing.T) {
	tests := []struct {
		name string
		plan plan.Plan
		want plan.Term
	}{
		{
			name: "Hourly is short",
			plan: plan.Plan{TimingParameter: plan.TimingHours, Duration: 24},
			want: plan.TermShort,
		},
		{
			name: "Few days is medium",
			plan: plan.Plan{TimingParameter: plan.TimingDays, Duration: 5},
			want: plan.TermMedium,
		},
		{
			name: "Many days is long",
			plan: plan.Plan{TimingParameter: plan.TimingDays, Duration: 30},
			want: plan.TermLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.plan.Term())
		})
	}
}

func TestByTerm(t *testing.T) {
	short := &plan.Plan{Name: "Sprint", TimingParameter: plan.TimingHours, Duration: 12}
	medium := &plan.Plan{Name: "Steady", TimingParameter: plan.TimingDays, Duration: 3}
	long := &plan.Plan{Name: "Horizon", TimingParameter: plan.TimingDays, Duration: 90}
	all := []*plan.Plan{short, medium, long}

	assert.Equal(t, all, plan.ByTerm(all, plan.TermAll))
	assert.Equal(t, []*plan.Plan{short}, plan.ByTerm(all, plan.TermShort))
	assert.Equal(t, []*plan.Plan{medium}, plan.ByTerm(all, plan.TermMedium))
	assert.Equal(t, []*plan.Plan{long}, plan.ByTerm(all, plan.TermLong))
	assert.Empty(t, plan.ByTerm([]*plan.Plan{}, plan.TermLong))
}
