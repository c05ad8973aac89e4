package schema

import (
	"testing"

	"github.com/go-sif/columnar/types"
	"github.com/stretchr/testify/require"
)

func TestIntersect(t *testing.T) {
	a := MustNew(
		Field{"id", Value(types.Of(types.Int32))},
		Field{"name", Value(types.Of(types.String))},
		Field{"tags", Group(MustNew(Field{"x", Value(types.Of(types.Bool))}, Field{"y", Value(types.Of(types.Bool))}))},
		Field{"mixed", Value(types.Of(types.Int32))},
	)
	b := MustNew(
		Field{"tags", Group(MustNew(Field{"y", Value(types.NullableOf(types.Bool))}))},
		Field{"id", Value(types.NullableOf(types.Float64))},
		Field{"mixed", Group(Empty())},
	)

	s := Intersect(a, nil, b)
	require.Equal(t, []string{"id", "tags"}, s.Names())

	id, err := s.Column("id")
	require.Nil(t, err)
	require.Equal(t, types.NullableOf(types.Number), id.ValueType())

	tags, err := s.Column("tags")
	require.Nil(t, err)
	require.Equal(t, []string{"y"}, tags.Schema().Names())
}

func TestIntersectEdgeCases(t *testing.T) {
	require.Equal(t, 0, Intersect().Len())
	require.Equal(t, 0, Intersect(nil, nil).Len())

	s := MustNew(Field{"f", Frame(Empty(), false)})
	other := MustNew(Field{"f", Frame(Empty(), true)})
	require.Equal(t, Equal, Compare(Intersect(s), s, Strict))

	f, err := Intersect(s, other).Column("f")
	require.Nil(t, err)
	require.True(t, f.Nullable())
}
