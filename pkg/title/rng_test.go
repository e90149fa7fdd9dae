package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  uint32
	}{
		{name: "empty string is the offset basis", input: "", want: 2166136261},
		{name: "ascii", input: "ab", want: 1294271946},
		{name: "reversed ascii", input: "ba", want: 1009493708},
		{name: "katakana with variant", input: "コーヒー::0", want: 1372956136},
		{name: "astral plane hashes both surrogates", input: "🔥::0", want: 3922175237},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeedFromString(tt.input))
		})
	}
}

func TestSeedFromString_OrderSensitive(t *testing.T) {
	assert.NotEqual(t, SeedFromString("ab"), SeedFromString("ba"))
	assert.NotEqual(t, SeedFromString("A::0"), SeedFromString("B::0"))
	assert.NotEqual(t, SeedFromString("寝坊::0"), SeedFromString("寝坊::5"))
}

func TestRNG_KnownSequence(t *testing.T) {
	rng := NewRNG(42)
	want := []float64{
		0.6011037519201636,
		0.44829055899754167,
		0.8524657934904099,
		0.6697340414393693,
		0.17481389874592423,
	}
	for i, w := range want {
		assert.Equal(t, w, rng.Next(), "draw %d", i)
	}

	zero := NewRNG(0)
	assert.Equal(t, 0.26642920868471265, zero.Next())
	assert.Equal(t, 0.0003297457005828619, zero.Next())
}

func TestRNG_StreamStability(t *testing.T) {
	a, b := NewRNG(42), NewRNG(42)
	var first, second []float64
	for range 100 {
		first = append(first, a.Next())
		second = append(second, b.Next())
	}
	require.Equal(t, first, second)
	assert.Equal(t, 0.47539179865270853, first[99])

	for i, v := range first {
		assert.GreaterOrEqual(t, v, 0.0, "draw %d", i)
		assert.Less(t, v, 1.0, "draw %d", i)
	}
}

func TestRNG_CopyContinuesIndependently(t *testing.T) {
	rng := NewRNG(7)
	rng.Next()
	fork := *rng
	assert.Equal(t, rng.Next(), fork.Next())
}

func TestPick(t *testing.T) {
	list := []string{"a", "b", "c", "d"}
	rng := NewRNG(99)
	for range 200 {
		assert.Contains(t, list, Pick(list, rng))
	}

	// A single-element list never indexes out of range.
	assert.Equal(t, "only", Pick([]string{"only"}, NewRNG(1)))
}

func TestPickMany(t *testing.T) {
	t.Run("returns distinct members in draw order", func(t *testing.T) {
		got := PickMany([]string{"a", "b", "c"}, 3, NewRNG(7))
		assert.Equal(t, []string{"a", "c", "b"}, got)
	})

	t.Run("two from every bank", func(t *testing.T) {
		for category, bank := range emojiBanks {
			for seed := range uint32(50) {
				got := PickMany(bank, 2, NewRNG(seed))
				require.Len(t, got, 2, "category %s seed %d", category, seed)
				assert.NotEqual(t, got[0], got[1], "category %s seed %d", category, seed)
				assert.Subset(t, bank, got)
			}
		}
	})

	t.Run("zero is empty", func(t *testing.T) {
		assert.Empty(t, PickMany([]int{1, 2}, 0, NewRNG(1)))
	})
}
