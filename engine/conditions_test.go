package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"outreachly/models"
)

func engagementOfType(engagementType string, step int) models.Engagement {
	return models.Engagement{
		EngagementType: engagementType,
		Metadata:       models.EngagementMetadata{StepNumber: step},
	}
}

// A step with no declared conditions proceeds regardless of history.
func TestEvaluateConditions_NoConditionsAlwaysPass(t *testing.T) {
	step := emailStep(2, 0, 0)

	assert.True(t, EvaluateConditions(&step, nil))
	assert.True(t, EvaluateConditions(&step, []models.Engagement{
		engagementOfType(models.EngagementEmailBounced, 1),
	}))
}

// Step 1 proceeds unconditionally even when conditions are declared;
// there is no prior step to gate on.
func TestEvaluateConditions_StepOneNeverGated(t *testing.T) {
	step := emailStep(1, 0, 0)
	step.ConditionPreviousOpened = true
	step.ConditionPreviousClicked = true

	assert.True(t, EvaluateConditions(&step, nil))
}

func TestEvaluateConditions_PreviousOpened(t *testing.T) {
	step := emailStep(2, 0, 0)
	step.ConditionPreviousOpened = true

	assert.False(t, EvaluateConditions(&step, nil))
	assert.True(t, EvaluateConditions(&step, []models.Engagement{
		engagementOfType(models.EngagementEmailOpened, 1),
	}))
}

func TestEvaluateConditions_PreviousClicked(t *testing.T) {
	step := emailStep(2, 0, 0)
	step.ConditionPreviousClicked = true

	// An open is not a click
	assert.False(t, EvaluateConditions(&step, []models.Engagement{
		engagementOfType(models.EngagementEmailOpened, 1),
	}))
	assert.True(t, EvaluateConditions(&step, []models.Engagement{
		engagementOfType(models.EngagementEmailClicked, 1),
	}))
}

func TestEvaluateConditions_NotReplied(t *testing.T) {
	step := emailStep(2, 0, 0)
	step.ConditionNotReplied = true

	assert.True(t, EvaluateConditions(&step, nil))
	assert.False(t, EvaluateConditions(&step, []models.Engagement{
		engagementOfType(models.EngagementEmailReplied, 1),
	}))
}

// Declared conditions are conjunctive: opened passes but the reply
// makes "not replied" fail, so the overall result is false.
func TestEvaluateConditions_Conjunctive(t *testing.T) {
	step := emailStep(2, 0, 0)
	step.ConditionPreviousOpened = true
	step.ConditionNotReplied = true

	history := []models.Engagement{
		engagementOfType(models.EngagementEmailOpened, 1),
		engagementOfType(models.EngagementEmailReplied, 1),
	}
	assert.False(t, EvaluateConditions(&step, history))

	// Without the reply, both conditions pass
	assert.True(t, EvaluateConditions(&step, history[:1]))
}
