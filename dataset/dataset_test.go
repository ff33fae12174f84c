package dataset

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cols    []Column
		wantErr string
	}{
		{
			name: "valid",
			cols: []Column{IntColumn("a", 1, 2, 3), StringColumn("b", "x", "y", "z")},
		},
		{
			name: "empty frame",
		},
		{
			name: "nulls allowed",
			cols: []Column{{Name: "a", Type: Float, Values: []any{1.5, nil}}},
		},
		{
			name:    "length mismatch",
			cols:    []Column{IntColumn("a", 1, 2), IntColumn("b", 1)},
			wantErr: `column "b" has 1 values, want 2`,
		},
		{
			name:    "duplicate name",
			cols:    []Column{IntColumn("a", 1), IntColumn("a", 2)},
			wantErr: `duplicate column name "a"`,
		},
		{
			name:    "wrong value type",
			cols:    []Column{{Name: "a", Type: Int, Values: []any{1}}},
			wantErr: `column "a" row 0: int is not int`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.cols...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.cols), f.NumCols())
		})
	}
}

func TestAccessors(t *testing.T) {
	f := MustNew(
		IntColumn("id", 1, 2, 3),
		FloatColumn("score", 0.5, 1.5, 2.5),
		BoolColumn("ok", true, false, true),
	)

	rows, cols := f.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []string{"id", "score", "ok"}, f.Names())

	c, ok := f.Column("score")
	require.True(t, ok)
	assert.Equal(t, Float, c.Type)

	_, ok = f.Column("missing")
	assert.False(t, ok)

	v, err := f.Value(1, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	_, err = f.Value(3, "id")
	assert.Error(t, err)
	_, err = f.Value(0, "missing")
	assert.Error(t, err)

	row, err := f.Row(2)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(3), 2.5, true}, row)

	_, err = f.Row(-1)
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	a := MustNew(FloatColumn("x", math.NaN(), 1))
	b := MustNew(FloatColumn("x", math.NaN(), 1))
	c := MustNew(FloatColumn("y", math.NaN(), 1))
	d := MustNew(IntColumn("x", 0, 1))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestRepresentation(t *testing.T) {
	f := MustNew(
		IntColumn("i", 1, 2),
		BoolColumn("b", true, false),
		Column{Name: "f", Type: Float, Values: []any{nil, 3.5}},
	)

	t.Run("default is identity", func(t *testing.T) {
		got, err := Default.Apply(f)
		require.NoError(t, err)
		assert.Same(t, f, got)
	})

	t.Run("matrix converts to float", func(t *testing.T) {
		got, err := Matrix.Apply(f)
		require.NoError(t, err)
		for _, c := range got.Columns() {
			assert.Equal(t, Float, c.Type, c.Name)
		}
		v, _ := got.Value(0, "i")
		assert.Equal(t, 1.0, v)
		v, _ = got.Value(1, "b")
		assert.Equal(t, 0.0, v)
		v, _ = got.Value(0, "f")
		assert.Nil(t, v)
	})

	t.Run("matrix rejects strings", func(t *testing.T) {
		_, err := Matrix.Apply(MustNew(StringColumn("s", "x")))
		assert.True(t, errors.Is(err, ErrNotNumeric))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Representation("columnar").Apply(f)
		assert.ErrorIs(t, err, ErrUnknownRepresentation)
	})
}

func TestParseRepresentation(t *testing.T) {
	r, err := ParseRepresentation("")
	require.NoError(t, err)
	assert.Equal(t, Default, r)

	r, err = ParseRepresentation("MATRIX")
	require.NoError(t, err)
	assert.Equal(t, Matrix, r)

	_, err = ParseRepresentation("rows")
	assert.ErrorIs(t, err, ErrUnknownRepresentation)
}
