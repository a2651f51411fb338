package engine

import (
	"time"

	"outreachly/models"
)

// Progression is the outcome of computing an enrollment's next position.
// Terminal means no further step exists and the enrollment completes.
type Progression struct {
	Terminal  bool
	NextStep  int
	NextDueAt time.Time
}

// ComputeNext looks up step currentStep+1 in the step list. If present,
// the next due time is now plus that step's delay; delays are measured
// from the moment the current step was processed, so they chain. If
// absent, the sequence is terminal.
func ComputeNext(currentStep int, steps []models.SequenceStep, now time.Time) Progression {
	nextNumber := currentStep + 1
	for i := range steps {
		if steps[i].StepNumber != nextNumber {
			continue
		}
		delay := time.Duration(steps[i].DelayDays)*24*time.Hour +
			time.Duration(steps[i].DelayHours)*time.Hour
		return Progression{
			NextStep:  nextNumber,
			NextDueAt: now.Add(delay),
		}
	}
	return Progression{Terminal: true}
}
