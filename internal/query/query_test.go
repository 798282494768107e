package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "campus/pkg/domain-errors"
)

type row struct {
	name string
	age  int
	// zero means unknown
	credits int
}

var rowFields = Fields[row]{
	"name": func(r row) Value { return String(r.name) },
	"age":  func(r row) Value { return Int(r.age) },
	"credits": func(r row) Value {
		if r.credits == 0 {
			return Absent
		}
		return Int(r.credits)
	},
}

func names(rows []row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.name)
	}
	return out
}

func fiveRows() []row {
	return []row{
		{name: "a", age: 21},
		{name: "b", age: 22},
		{name: "c", age: 23},
		{name: "d", age: 24},
		{name: "e", age: 25},
	}
}

func TestFilter(t *testing.T) {
	rows := fiveRows()

	t.Run("nil match keeps everything", func(t *testing.T) {
		assert.Equal(t, names(rows), names(Filter(rows, nil)))
	})

	t.Run("keeps matching rows in order", func(t *testing.T) {
		got := Filter(rows, func(r row) bool { return r.age >= 23 })
		assert.Equal(t, []string{"c", "d", "e"}, names(got))
	})
}

func TestSortBy(t *testing.T) {
	t.Run("descending numeric", func(t *testing.T) {
		rows := []row{{name: "karim", age: 22}, {name: "salma", age: 23}}
		got, err := SortBy(rows, rowFields, &Sort{Field: "age", Direction: ParseDirection("DESC")})
		require.NoError(t, err)
		assert.Equal(t, []string{"salma", "karim"}, names(got))
	})

	t.Run("direction token is case-insensitive", func(t *testing.T) {
		rows := []row{{name: "karim", age: 22}, {name: "salma", age: 23}}
		got, err := SortBy(rows, rowFields, &Sort{Field: "age", Direction: ParseDirection("desc")})
		require.NoError(t, err)
		assert.Equal(t, []string{"salma", "karim"}, names(got))
	})

	t.Run("unrecognized direction sorts ascending", func(t *testing.T) {
		rows := []row{{name: "salma", age: 23}, {name: "karim", age: 22}}
		got, err := SortBy(rows, rowFields, &Sort{Field: "age", Direction: ParseDirection("sideways")})
		require.NoError(t, err)
		assert.Equal(t, []string{"karim", "salma"}, names(got))
	})

	t.Run("strings use collation", func(t *testing.T) {
		rows := []row{{name: "Zoe"}, {name: "émile"}, {name: "adam"}}
		got, err := SortBy(rows, rowFields, &Sort{Field: "name"})
		require.NoError(t, err)
		assert.Equal(t, []string{"adam", "émile", "Zoe"}, names(got))
	})

	t.Run("absent values keep input order", func(t *testing.T) {
		rows := []row{
			{name: "x", credits: 4},
			{name: "y"},
			{name: "z", credits: 3},
		}
		got, err := SortBy(rows, rowFields, &Sort{Field: "credits"})
		require.NoError(t, err)
		// y compares equal to both neighbours; the stable sort may only
		// reorder the pair it can actually compare.
		assert.Equal(t, "y", got[1].name)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		rows := []row{{name: "b", age: 2}, {name: "a", age: 1}}
		_, err := SortBy(rows, rowFields, &Sort{Field: "age"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, names(rows))
	})

	t.Run("unknown field is a validation error", func(t *testing.T) {
		_, err := SortBy(fiveRows(), rowFields, &Sort{Field: "shoe_size"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("nil sort is pass-through", func(t *testing.T) {
		got, err := SortBy(fiveRows(), rowFields, nil)
		require.NoError(t, err)
		assert.Equal(t, names(fiveRows()), names(got))
	})
}

func TestPaginate(t *testing.T) {
	rows := fiveRows()

	t.Run("second page of two", func(t *testing.T) {
		got := Paginate(rows, &Page{Size: 2, Number: 1})
		assert.Equal(t, []string{"c", "d"}, names(got))
	})

	t.Run("last partial page", func(t *testing.T) {
		got := Paginate(rows, &Page{Size: 2, Number: 2})
		assert.Equal(t, []string{"e"}, names(got))
	})

	t.Run("out of range page is empty", func(t *testing.T) {
		assert.Empty(t, Paginate(rows, &Page{Size: 2, Number: 3}))
		assert.Empty(t, Paginate(rows, &Page{Size: 2, Number: 1 << 40}))
	})

	t.Run("zero size falls back to default", func(t *testing.T) {
		many := make([]row, 30)
		assert.Len(t, Paginate(many, &Page{}), DefaultPageSize)
		assert.Len(t, Paginate(many, &Page{Size: -3}), DefaultPageSize)
	})

	t.Run("size is capped", func(t *testing.T) {
		many := make([]row, 120)
		assert.Len(t, Paginate(many, &Page{Size: 500}), MaxPageSize)
	})

	t.Run("negative page number is the first page", func(t *testing.T) {
		got := Paginate(rows, &Page{Size: 2, Number: -1})
		assert.Equal(t, []string{"a", "b"}, names(got))
	})

	t.Run("nil page returns everything", func(t *testing.T) {
		assert.Len(t, Paginate(rows, nil), 5)
	})
}

func TestApplyRunsStagesInOrder(t *testing.T) {
	rows := []row{
		{name: "a", age: 30},
		{name: "b", age: 19},
		{name: "c", age: 25},
		{name: "d", age: 40},
	}
	got, err := Apply(rows,
		func(r row) bool { return r.age > 20 },
		rowFields,
		Options{Sort: &Sort{Field: "age", Direction: Descending}, Page: &Page{Size: 2, Number: 0}},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a"}, names(got))
}
