package engine

import "outreachly/models"

// EvaluateConditions decides whether a step's entry conditions hold
// given the engagement history of the previous step. Step 1 always
// proceeds; there is no prior step to gate on. A step with no declared
// conditions always proceeds. Declared conditions are conjunctive:
// every one of them must pass.
func EvaluateConditions(step *models.SequenceStep, priorEngagements []models.Engagement) bool {
	if step.StepNumber <= 1 {
		return true
	}
	if !step.HasConditions() {
		return true
	}

	var opened, clicked, replied bool
	for _, e := range priorEngagements {
		switch e.EngagementType {
		case models.EngagementEmailOpened:
			opened = true
		case models.EngagementEmailClicked:
			clicked = true
		case models.EngagementEmailReplied:
			replied = true
		}
	}

	if step.ConditionPreviousOpened && !opened {
		return false
	}
	if step.ConditionPreviousClicked && !clicked {
		return false
	}
	if step.ConditionNotReplied && replied {
		return false
	}
	return true
}
