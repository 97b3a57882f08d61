package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameSeedSameSequence(t *testing.T) {
	a := NewRand(99)
	b := NewRand(99)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Float(), b.Float())
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewRand(1)
	b := NewRand(2)
	same := true
	for i := 0; i < 20; i++ {
		if a.Float() != b.Float() {
			same = false
		}
	}
	assert.False(t, same)
}

func TestIntRangeBounds(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 200; i++ {
		v := r.IntRange(10, 20)
		require.GreaterOrEqual(t, v, 10)
		require.Less(t, v, 20)
	}
}

func TestIntRangeFrom(t *testing.T) {
	src := NewRand(7)
	for i := 0; i < 200; i++ {
		v := IntRangeFrom(src, -5, 5)
		require.GreaterOrEqual(t, v, -5)
		require.Less(t, v, 5)
	}
}

func TestSetSeedResetsDefault(t *testing.T) {
	SetSeed(42)
	first := Float()
	SetSeed(42)
	assert.Equal(t, first, Float())
}
