package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The step number embedded in metadata is the only join key between an
// engagement and a step; filtering must return exactly the matching rows.
func TestFilterEngagementsByStep(t *testing.T) {
	engagements := []Engagement{
		{EngagementType: EngagementEmailSent, Metadata: EngagementMetadata{StepNumber: 1}},
		{EngagementType: EngagementEmailOpened, Metadata: EngagementMetadata{StepNumber: 1}},
		{EngagementType: EngagementEmailSent, Metadata: EngagementMetadata{StepNumber: 2}},
	}

	stepOne := FilterEngagementsByStep(engagements, 1)
	require.Len(t, stepOne, 2)
	for _, e := range stepOne {
		assert.Equal(t, 1, e.Metadata.StepNumber)
	}

	assert.Len(t, FilterEngagementsByStep(engagements, 2), 1)
	assert.Empty(t, FilterEngagementsByStep(engagements, 3))
	assert.Empty(t, FilterEngagementsByStep(nil, 1))
}
