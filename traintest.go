package backprop

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// State is the position of a Trainer in its learning loop.
type State int32

const (
	Idle State = iota
	RunningEpoch
	EvaluatingPerformance
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RunningEpoch:
		return "running epoch"
	case EvaluatingPerformance:
		return "evaluating performance"
	case Stopped:
		return "stopped"
	default:
		return "unknown state"
	}
}

// TrainArgs is the set of arguments given to a Trainer. Only TrainData and LearningRate are
// required.
type TrainArgs struct {
	// TrainData is iterated in full once per epoch.
	TrainData PatternSource

	// CheckData is evaluated after every epoch, if it is not nil. Its Performance is given in the
	// events that follow.
	CheckData PatternSource

	// LearningRate is the learning rate at the start of training.
	LearningRate float64

	// DecreaseFactor multiplies the learning rate after any epoch whose total error is greater
	// than that of the epoch before. It must be in (0, 1]. Zero is taken to mean 1 (no decay).
	DecreaseFactor float64

	// HistoryDepth is the number of epoch errors kept. Defaults to 10.
	HistoryDepth int

	// Precision is the number of decimal places that outputs and targets are rounded to when
	// checking whether a check pattern is correct.
	Precision int

	// RunCondition is called before every epoch with the index of that epoch and the total error
	// of the one before it (+Inf before the first). Training stops if it returns false. If nil,
	// training runs until Stop is called or the context given to Execute is done.
	RunCondition func(int, float64) bool

	// Update is given every Event, synchronously, from the goroutine running Execute. May be nil.
	Update func(Event)

	// Logger receives progress logs. If nil, nothing is logged.
	Logger *slog.Logger
}

// Trainer runs the supervised learning loop of a Network: every epoch it passes each training
// pattern forwards and its error backwards, keeps track of the total error, evaluates the check
// data and decays the learning rate whenever the error increases.
type Trainer struct {
	net  *Network
	args TrainArgs
	log  *slog.Logger

	isCorrect func([]float64, []float64) bool

	state atomic.Int32
	stop  atomic.Bool

	run         uuid.UUID
	epoch       int
	totalError  float64
	performance float64
	history     *errorHistory

	// reused between patterns
	errs []float64
}

// errStopped is returned by runEpoch when the epoch was cut short by a stop request
var errStopped = Error{"Training stopped"}

// NewTrainer checks the given arguments and fills in their defaults. The Network must already have
// all of its layers.
func NewTrainer(net *Network, args TrainArgs) (*Trainer, error) {
	if net == nil {
		return nil, NilArgError{"Network"}
	} else if net.NumLayers() == 0 {
		return nil, ErrNoLayers
	} else if args.TrainData == nil {
		return nil, NilArgError{"TrainData"}
	} else if !(args.LearningRate > 0) || math.IsInf(args.LearningRate, 0) {
		return nil, errors.Wrapf(ErrBadRate, "Can't create Trainer with learning rate %v", args.LearningRate)
	}

	if args.DecreaseFactor == 0 {
		args.DecreaseFactor = 1
	} else if !(args.DecreaseFactor > 0 && args.DecreaseFactor <= 1) {
		return nil, errors.Wrapf(ErrBadDecrease, "Can't create Trainer with decrease factor %v", args.DecreaseFactor)
	}

	if args.HistoryDepth <= 0 {
		args.HistoryDepth = defaultHistoryDepth
	}

	if args.RunCondition == nil {
		args.RunCondition = func(int, float64) bool { return true }
	}

	if args.Update == nil {
		args.Update = func(Event) {}
	}

	log := args.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	t := &Trainer{
		net:         net,
		args:        args,
		log:         log,
		isCorrect:   CorrectRound(args.Precision),
		totalError:  math.Inf(1),
		performance: -1,
		history:     newErrorHistory(args.HistoryDepth),
		errs:        make([]float64, net.OutputSize()),
	}

	return t, nil
}

// State returns the current State of the Trainer. It is safe to call from any goroutine.
func (t *Trainer) State() State {
	return State(t.state.Load())
}

// Stop asks a running Execute to return. The request is honoured between patterns, never during
// one. Stop is safe to call from any goroutine, but has no effect on later calls to Execute.
func (t *Trainer) Stop() {
	t.stop.Store(true)
}

// Epoch returns the number of epochs completed in the current (or last) run.
func (t *Trainer) Epoch() int {
	return t.epoch
}

// TotalError returns the running mean error of the current epoch, or the total error of the last
// one if no epoch is in progress.
func (t *Trainer) TotalError() float64 {
	return t.totalError
}

// LastPerformance returns the result of the most recent check data evaluation, or -1.
func (t *Trainer) LastPerformance() float64 {
	return t.performance
}

// History returns the total errors of the most recent epochs, oldest first.
func (t *Trainer) History() []float64 {
	return t.history.list()
}

func (t *Trainer) event(kind EventKind, pattern int, elapsed time.Duration) {
	t.args.Update(Event{
		Kind:         kind,
		Run:          t.run,
		Epoch:        t.epoch,
		Pattern:      pattern,
		TotalError:   t.totalError,
		Elapsed:      elapsed,
		Performance:  t.performance,
		LearningRate: t.net.LearningRate(),
	})
}

// Execute trains the Network until RunCondition returns false, Stop is called or ctx is done.
// Every run starts from epoch zero, with an empty history and the initial learning rate.
//
// Errors from the Network or the PatternSources end the run immediately and are returned wrapped.
// If the run ends because ctx is done, ctx.Err() is returned; otherwise a stopped run returns nil.
// Only one Execute may run at a time.
func (t *Trainer) Execute(ctx context.Context) error {
	if !t.state.CompareAndSwap(int32(Idle), int32(RunningEpoch)) &&
		!t.state.CompareAndSwap(int32(Stopped), int32(RunningEpoch)) {
		return ErrRunning
	}
	defer t.state.Store(int32(Stopped))

	if t.args.TrainData.IsEmpty() {
		return errors.Wrapf(ErrEmptyData, "Can't train on empty TrainData")
	}

	t.stop.Store(false)
	t.run = uuid.New()
	t.epoch = 0
	t.totalError = math.Inf(1)
	t.performance = -1
	t.history = newErrorHistory(t.args.HistoryDepth)
	if len(t.errs) != t.net.OutputSize() {
		t.errs = make([]float64, t.net.OutputSize())
	}
	if err := t.net.SetLearningRate(t.args.LearningRate); err != nil {
		return err
	}

	log := t.log.With("run", t.run.String())
	log.Info("Starting training", "patterns", t.args.TrainData.Size(), "learning-rate", t.args.LearningRate)

	start := time.Now()
	for {
		if ctx.Err() != nil || t.stop.Load() || !t.args.RunCondition(t.epoch, t.totalError) {
			break
		}

		if err := t.runEpoch(ctx, log); err == errStopped {
			break
		} else if err != nil {
			log.Error("Training failed", "epoch", t.epoch, "error", err)
			return errors.Wrapf(err, "Epoch %d failed\n", t.epoch)
		}
	}

	log.Info("Training stopped", "epochs", t.epoch, "total-error", t.totalError, "elapsed", time.Since(start))
	t.event(StopConditionReached, 0, time.Since(start))

	return ctx.Err()
}

// runEpoch passes every pattern of the training data through the Network once, then evaluates and
// adjusts the learning rate.
func (t *Trainer) runEpoch(ctx context.Context, log *slog.Logger) error {
	t.state.Store(int32(RunningEpoch))
	epochStart := time.Now()

	data := t.args.TrainData
	data.Rewind()

	var total float64
	n := 0
	for data.HasNext() {
		if ctx.Err() != nil || t.stop.Load() {
			return errStopped
		}

		patternStart := time.Now()

		p, err := data.Next()
		if err != nil {
			return errors.Wrapf(err, "Failed to get pattern %d\n", n)
		} else if err = p.check(t.net); err != nil {
			return errors.Wrapf(err, "Pattern %d does not fit Network\n", n)
		}

		outs, err := t.net.ProcessInputs(p.Inputs)
		if err != nil {
			return errors.Wrapf(err, "Forward pass failed on pattern %d\n", n)
		}

		patternErr := PatternError(outs, p.Outputs, t.errs)

		n++
		total = (total*float64(n-1) + patternErr) / float64(n)
		t.totalError = total

		if err = t.net.ProcessErrors(t.errs); err != nil {
			return errors.Wrapf(err, "Backward pass failed on pattern %d\n", n-1)
		}

		log.Debug("Pattern processed", "epoch", t.epoch, "pattern", n-1, "error", patternErr)
		t.event(PatternProcessed, n, time.Since(patternStart))
	}

	t.history.push(total)

	if t.args.CheckData != nil {
		t.state.Store(int32(EvaluatingPerformance))
		evalStart := time.Now()

		perf, err := t.Performance(t.args.CheckData)
		if err != nil {
			return errors.Wrapf(err, "Failed to evaluate check data\n")
		}

		t.performance = perf
		t.event(PerformanceCalculated, n, time.Since(evalStart))
	}

	t.event(IterationProcessed, n, time.Since(epochStart))
	log.Info("Epoch finished", "epoch", t.epoch, "total-error", total, "performance", t.performance)

	if t.history.increasing() && t.args.DecreaseFactor != 1 {
		old := t.net.LearningRate()
		if err := t.net.SetLearningRate(old * t.args.DecreaseFactor); err != nil {
			return errors.Wrapf(err, "Failed to decrease learning rate\n")
		}

		log.Info("Total error increased, decreasing learning rate", "epoch", t.epoch, "from", old, "to", t.net.LearningRate())
	}

	t.epoch++
	t.state.Store(int32(RunningEpoch))
	return nil
}

// Performance returns the percentage of patterns in data whose outputs are correct, by
// CorrectRound with the Trainer's Precision. It only runs forward passes, so weights are left
// unchanged. Performance must not be called while Execute is running on another goroutine.
//
// An empty PatternSource has performance 0.
func (t *Trainer) Performance(data PatternSource) (float64, error) {
	if data == nil {
		return 0, NilArgError{"PatternSource"}
	}

	data.Rewind()

	var correct, size int
	for data.HasNext() {
		p, err := data.Next()
		if err != nil {
			return 0, errors.Wrapf(err, "Failed to get test pattern %d\n", size)
		} else if err = p.check(t.net); err != nil {
			return 0, errors.Wrapf(err, "Test pattern %d does not fit Network\n", size)
		}

		outs, err := t.net.ProcessInputs(p.Inputs)
		if err != nil {
			return 0, errors.Wrapf(err, "Failed to get Network outputs with test pattern %d\n", size)
		}

		if t.isCorrect(outs, p.Outputs) {
			correct++
		}
		size++
	}

	if size == 0 {
		return 0, nil
	}

	return 100 * float64(correct) / float64(size), nil
}
