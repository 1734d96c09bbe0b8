package backprop

import (
	"reflect"
	"testing"
)

func drain(t *testing.T, s PatternSource) []Pattern {
	t.Helper()

	var ps []Pattern
	for s.HasNext() {
		p, err := s.Next()
		if err != nil {
			t.Fatal(err)
		}
		ps = append(ps, p)
	}
	return ps
}

func TestPatternSourceRewind(t *testing.T) {
	s, err := Data([][][]float64{
		{{0, 0}, {0}},
		{{0, 1}, {1}},
		{{1, 0}, {1}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if s.Size() != 3 || s.IsEmpty() {
		t.Fatalf("Size() = %d, IsEmpty() = %v", s.Size(), s.IsEmpty())
	}

	first := drain(t, s)
	if len(first) != s.Size() {
		t.Fatalf("first pass yielded %d patterns, want %d", len(first), s.Size())
	}

	if _, err := s.Next(); err == nil {
		t.Error("Next() past the end returned no error")
	}

	s.Rewind()
	if second := drain(t, s); !reflect.DeepEqual(first, second) {
		t.Errorf("second pass %v differs from first %v", second, first)
	}

	// rewinding mid-pass restarts from the beginning
	s.Rewind()
	s.Next()
	s.Rewind()
	if third := drain(t, s); !reflect.DeepEqual(first, third) {
		t.Errorf("pass after a partial one %v differs from first %v", third, first)
	}
}

func TestDataErrors(t *testing.T) {
	if _, err := Data(nil); err == nil {
		t.Error("Data(nil) returned no error")
	}
	if _, err := Data([][][]float64{{{1}, {1}}, {{1}}}); err == nil {
		t.Error("Data with a pattern missing outputs returned no error")
	}
}

func TestEmptyPatterns(t *testing.T) {
	s := Patterns(nil)
	if !s.IsEmpty() || s.Size() != 0 || s.HasNext() {
		t.Errorf("empty source: IsEmpty %v, Size %d, HasNext %v", s.IsEmpty(), s.Size(), s.HasNext())
	}
}

func TestPatternFits(t *testing.T) {
	net := build(t, 2, 1)

	cases := []struct {
		p    Pattern
		fits bool
	}{
		{Pattern{[]float64{1, 2}, []float64{1}}, true},
		{Pattern{[]float64{1}, []float64{1}}, false},
		{Pattern{[]float64{1, 2}, []float64{1, 2}}, false},
	}

	for i, c := range cases {
		if c.p.Fits(net) != c.fits {
			t.Errorf("case %d: Fits() = %v, want %v", i, !c.fits, c.fits)
		}
		if err := c.p.check(net); (err == nil) != c.fits || (err != nil && !IsSizeMismatch(err)) {
			t.Errorf("case %d: check() = %v", i, err)
		}
	}
}
