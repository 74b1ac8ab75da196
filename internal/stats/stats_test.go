package stats

import "testing"

func TestExtend(t *testing.T) {
	s := Default()
	for _, v := range []int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10} {
		s.Extend(v)
	}

	if s.Min != 1 {
		t.Errorf("Min = %d, want 1", s.Min)
	}
	if s.Max != 10 {
		t.Errorf("Max = %d, want 10", s.Max)
	}
	if s.Sum != 55 {
		t.Errorf("Sum = %d, want 55", s.Sum)
	}
	if s.Count != 10 {
		t.Errorf("Count = %d, want 10", s.Count)
	}
}

func TestExport(t *testing.T) {
	s := Single(10)
	for _, v := range []int16{60, 40, 20, 50, 30} {
		s.Extend(v)
	}

	got := s.Format([]byte("station1"))
	want := "station1=1.0/3.5/6.0"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestMergeIdentity(t *testing.T) {
	s := Single(42)
	orig := s

	id := Default()
	s.Merge(id)
	if s != orig {
		t.Errorf("merge with identity changed stats: got %+v, want %+v", s, orig)
	}
}

func TestMergeAssociativeCommutative(t *testing.T) {
	a := Single(10)
	b := Single(-20)
	c := Single(35)

	ab := a
	ab.Merge(b)
	abc1 := ab
	abc1.Merge(c)

	bc := b
	bc.Merge(c)
	abc2 := a
	abc2.Merge(bc)

	if abc1 != abc2 {
		t.Errorf("merge not associative: %+v != %+v", abc1, abc2)
	}

	ba := b
	ba.Merge(a)
	if ba != ab {
		t.Errorf("merge not commutative: %+v != %+v", ba, ab)
	}
}

func TestNegativeRange(t *testing.T) {
	s := Single(-5)
	s.Extend(5)

	got := s.Format([]byte("a"))
	want := "a=-0.5/0.0/0.5"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
