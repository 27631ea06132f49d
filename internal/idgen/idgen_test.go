package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv1NewID(t *testing.T) {
	gen := NewUUIDv1()

	id, err := gen.NewID()
	require.NoError(t, err)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(1), parsed.Version())
}

func TestUUIDv1Distinct(t *testing.T) {
	gen := NewUUIDv1()
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id, err := gen.NewID()
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestUUIDv1TimeOrdered(t *testing.T) {
	gen := NewUUIDv1()

	first, err := gen.NewID()
	require.NoError(t, err)
	second, err := gen.NewID()
	require.NoError(t, err)

	a := uuid.MustParse(first)
	b := uuid.MustParse(second)
	assert.LessOrEqual(t, int64(a.Time()), int64(b.Time()))
}
