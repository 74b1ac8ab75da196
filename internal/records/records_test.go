package records

import (
	"testing"

	"go.coldcutz.net/brc/internal/key"
)

func insertLine(t Records, hasher key.Hasher, name string, tenths int16) {
	t.Insert(key.New(hasher, []byte(name)), tenths)
}

func TestSingleStationExport(t *testing.T) {
	for _, table := range []Records{New(), NewSwiss()} {
		insertLine(table, key.LiteHasher{}, "jack", 12)
		got := ExportText(table)
		want := "{jack=1.2/1.2/1.2}\n"
		if got != want {
			t.Errorf("%T: ExportText() = %q, want %q", table, got, want)
		}
	}
}

func TestMultipleStationsSortedExport(t *testing.T) {
	for _, table := range []Records{New(), NewSwiss()} {
		insertLine(table, key.LiteHasher{}, "jill", 34)
		insertLine(table, key.LiteHasher{}, "jack", 12)
		insertLine(table, key.LiteHasher{}, "jill", 23)
		insertLine(table, key.LiteHasher{}, "jill", 45)

		got := ExportText(table)
		want := "{jack=1.2/1.2/1.2, jill=2.3/3.4/4.5}\n"
		if got != want {
			t.Errorf("%T: ExportText() = %q, want %q", table, got, want)
		}
	}
}

func TestManyStationsSortedExport(t *testing.T) {
	for _, table := range []Records{New(), NewSwiss()} {
		insertLine(table, key.LiteHasher{}, "this", 4)
		insertLine(table, key.LiteHasher{}, "that", 5)
		insertLine(table, key.LiteHasher{}, "foo", 1)
		insertLine(table, key.LiteHasher{}, "bar", 2)
		insertLine(table, key.LiteHasher{}, "baz", 3)

		got := ExportText(table)
		want := "{bar=0.2/0.2/0.2, baz=0.3/0.3/0.3, foo=0.1/0.1/0.1, that=0.5/0.5/0.5, this=0.4/0.4/0.4}\n"
		if got != want {
			t.Errorf("%T: ExportText() = %q, want %q", table, got, want)
		}
	}
}

func TestLenConservedAcrossMerge(t *testing.T) {
	for _, pair := range [][2]Records{{New(), New()}, {NewSwiss(), NewSwiss()}} {
		a, b := pair[0], pair[1]
		insertLine(a, key.LiteHasher{}, "x", 10)
		insertLine(a, key.LiteHasher{}, "x", 20)
		insertLine(b, key.LiteHasher{}, "x", 30)
		insertLine(b, key.LiteHasher{}, "y", 5)

		a.Merge(b)
		if got, want := a.Len(), uint64(4); got != want {
			t.Errorf("%T: Len() after merge = %d, want %d", a, got, want)
		}
	}
}

func TestMergeMinMaxTight(t *testing.T) {
	for _, pair := range [][2]Records{{New(), New()}, {NewSwiss(), NewSwiss()}} {
		a, b := pair[0], pair[1]
		insertLine(a, key.LiteHasher{}, "x", -50)
		insertLine(b, key.LiteHasher{}, "x", 100)

		a.Merge(b)
		s, ok := a.Get(key.New(key.LiteHasher{}, []byte("x")))
		if !ok {
			t.Fatalf("%T: expected station x to exist", a)
		}
		if s.Min != -50 || s.Max != 100 {
			t.Errorf("%T: Min/Max = %d/%d, want -50/100", a, s.Min, s.Max)
		}
	}
}

func TestMergeIsCommutative(t *testing.T) {
	build := func(factory func() Records) Records {
		tbl := factory()
		insertLine(tbl, key.LiteHasher{}, "a", 11)
		insertLine(tbl, key.LiteHasher{}, "b", 22)
		return tbl
	}
	buildOther := func(factory func() Records) Records {
		tbl := factory()
		insertLine(tbl, key.LiteHasher{}, "b", 33)
		insertLine(tbl, key.LiteHasher{}, "c", 44)
		return tbl
	}

	ab := build(func() Records { return New() })
	ab.Merge(buildOther(func() Records { return New() }))

	ba := buildOther(func() Records { return New() })
	ba.Merge(build(func() Records { return New() }))

	if ExportText(ab) != ExportText(ba) {
		t.Errorf("merge not commutative: %q != %q", ExportText(ab), ExportText(ba))
	}
}

func TestMixedBackendMerge(t *testing.T) {
	a := New()
	insertLine(a, key.LiteHasher{}, "a", 10)

	b := NewSwiss()
	insertLine(b, key.LiteHasher{}, "a", 20)
	insertLine(b, key.LiteHasher{}, "b", 30)

	a.Merge(b)
	got := ExportText(a)
	want := "{a=1.0/1.5/2.0, b=3.0/3.0/3.0}\n"
	if got != want {
		t.Errorf("mixed-backend merge: ExportText() = %q, want %q", got, want)
	}
}
