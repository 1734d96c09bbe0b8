package backprop

import (
	"time"

	"github.com/google/uuid"
)

// EventKind identifies the point of the learning loop at which an Event was sent.
type EventKind int8

const (
	// PatternProcessed is sent after the weights have been adjusted for a single pattern.
	PatternProcessed EventKind = iota
	// IterationProcessed is sent after every pattern of an epoch has been processed.
	IterationProcessed
	// StopConditionReached is sent once, when the Trainer stops without an error.
	StopConditionReached
	// PerformanceCalculated is sent after the check data has been evaluated.
	PerformanceCalculated
)

func (k EventKind) String() string {
	switch k {
	case PatternProcessed:
		return "pattern processed"
	case IterationProcessed:
		return "iteration processed"
	case StopConditionReached:
		return "stop condition reached"
	case PerformanceCalculated:
		return "performance calculated"
	default:
		return "unknown event"
	}
}

// Event is the progress information given to TrainArgs.Update.
type Event struct {
	Kind EventKind

	// Run identifies the call to Execute that sent the Event
	Run uuid.UUID

	// Epoch is the index of the current epoch, starting at zero
	Epoch int

	// Pattern is the number of patterns processed so far in the current epoch. For
	// PatternProcessed, it is the index of the pattern plus one.
	Pattern int

	// TotalError is the running mean of the pattern errors of the current epoch. For events sent
	// after an epoch, it is the total error of that epoch.
	TotalError float64

	// Elapsed is the time taken by the pattern (PatternProcessed), the epoch
	// (IterationProcessed), the evaluation (PerformanceCalculated) or the whole run
	// (StopConditionReached)
	Elapsed time.Duration

	// Performance is the percentage (0 to 100) of check patterns that were correct at the last
	// evaluation. It is -1 if no evaluation has happened yet.
	Performance float64

	// LearningRate is the learning rate in use when the Event was sent.
	LearningRate float64
}
