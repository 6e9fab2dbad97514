package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobmarket-engine/internal/domain"
)

func TestBuildSnapshot_EmptyInputIsTotal(t *testing.T) {
	s := BuildSnapshot(nil)
	assert.Equal(t, Metrics{}, s.Metrics)
	assert.Empty(t, s.CategoryStats)
	assert.Empty(t, s.TopOpportunities)
	assert.Empty(t, s.TechnologyInsights)
	assert.Len(t, s.Recommendations, 2)
}

func TestBuildSnapshot_Composes(t *testing.T) {
	jobs := []domain.JobRecord{
		{Company: "Acme", Title: "Python Developer", Category: "Software Engineer", DaysAgo: fp(1)},
	}
	s := BuildSnapshot(jobs)
	assert.Equal(t, 1, s.Metrics.TotalJobs)
	assert.Contains(t, s.CategoryStats, "Software Engineer")
	assert.Len(t, s.TopOpportunities, 1)
	assert.NotEmpty(t, s.TechnologyInsights)
	assert.NotEmpty(t, s.Recommendations)
}
