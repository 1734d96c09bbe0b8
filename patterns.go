package backprop

import (
	"github.com/pkg/errors"
)

// Pattern is a single training or testing sample.
type Pattern struct {
	// Inputs is the input of the network. It must have the same size as that of the network's
	// inputs.
	Inputs []float64

	// Outputs is the expected output of the network, given the inputs.
	Outputs []float64
}

// Fits indicates whether or not the Pattern's dimensions match those of the Network, allowing it to
// be used for training or testing.
func (p Pattern) Fits(net *Network) bool {
	return len(p.Inputs) == net.InputSize() && len(p.Outputs) == net.OutputSize()
}

// check returns type SizeMismatchError if the Pattern doesn't fit the Network
func (p Pattern) check(net *Network) error {
	if len(p.Inputs) != net.InputSize() {
		return SizeMismatchError{net.InputSize(), len(p.Inputs), "inputs"}
	} else if len(p.Outputs) != net.OutputSize() {
		return SizeMismatchError{net.OutputSize(), len(p.Outputs), "outputs"}
	}
	return nil
}

// PatternSource is the method of providing samples to the Trainer. It is a finite sequence that
// can be restarted.
//
// After Rewind, a PatternSource must yield the same Patterns in the same order as it did before.
type PatternSource interface {
	// Size returns the total number of Patterns in one pass.
	Size() int

	// IsEmpty is equivalent to Size() == 0.
	IsEmpty() bool

	// Rewind restarts the sequence from its first Pattern.
	Rewind()

	// HasNext returns whether or not the current pass has any Patterns left.
	HasNext() bool

	// Next returns the next Pattern of the current pass. Next may return an error if it is called
	// when HasNext() is false, or if the Pattern could not be produced.
	Next() (Pattern, error)
}

// sliceSource is a PatternSource over Patterns held in memory
type sliceSource struct {
	patterns []Pattern
	pos      int
}

// Patterns returns a PatternSource that yields the given Patterns, in order. The slice is not
// copied.
func Patterns(ps []Pattern) PatternSource {
	return &sliceSource{patterns: ps}
}

func (s *sliceSource) Size() int {
	return len(s.patterns)
}

func (s *sliceSource) IsEmpty() bool {
	return len(s.patterns) == 0
}

func (s *sliceSource) Rewind() {
	s.pos = 0
}

func (s *sliceSource) HasNext() bool {
	return s.pos < len(s.patterns)
}

func (s *sliceSource) Next() (Pattern, error) {
	if s.pos >= len(s.patterns) {
		return Pattern{}, errors.Errorf("No patterns left (size %d)", len(s.patterns))
	}

	p := s.patterns[s.pos]
	s.pos++
	return p, nil
}

// Data converts a 3D dataset of float64 to a PatternSource, which can be used for training or
// testing. dataset indexing is: [pattern index][inputs, outputs][values]
//
// N.B.: Data does not check if the data fit a certain network; that will be done during training
// and testing
func Data(dataset [][][]float64) (PatternSource, error) {
	if len(dataset) == 0 {
		return nil, errors.Errorf("dataset has no data (len == 0)")
	}

	ps := make([]Pattern, len(dataset))
	for i, d := range dataset {
		if len(d) < 2 {
			return nil, errors.Errorf("dataset lacks required data at index %d (len([%d]) < 2)", i, i)
		}

		ps[i] = Pattern{Inputs: d[0], Outputs: d[1]}
	}

	return Patterns(ps), nil
}
