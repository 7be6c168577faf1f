package scale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandsPartitionRange(t *testing.T) {
	seen := make(map[int]string)
	for _, b := range Bands() {
		for v := b.Min; v <= b.Max; v++ {
			prev, dup := seen[v]
			require.Falsef(t, dup, "value %d in both %s and %s", v, prev, b.Letter)
			seen[v] = b.Letter
		}
	}
	for v := MinValue; v <= MaxValue; v++ {
		_, ok := seen[v]
		assert.Truef(t, ok, "value %d not covered", v)
	}
	assert.Len(t, seen, MaxValue-MinValue+1)
	assert.Len(t, Letters(), 11)
}

func TestValueToLetterEveryValue(t *testing.T) {
	for v := MinValue; v <= MaxValue; v++ {
		letter, err := ValueToLetter(v)
		require.NoError(t, err)

		matches := 0
		for _, b := range Bands() {
			if v >= b.Min && v <= b.Max {
				matches++
				assert.Equal(t, b.Letter, letter)
			}
		}
		assert.Equal(t, 1, matches)
	}
}

func TestValueToLetterBoundaries(t *testing.T) {
	cases := map[int]string{
		100: "A+", 97: "A+", 96: "A", 93: "A", 92: "A-", 90: "A-",
		89: "B+", 87: "B+", 86: "B", 83: "B", 82: "B-", 80: "B-",
		79: "C+", 77: "C+", 76: "C", 73: "C", 72: "C-", 70: "C-",
		69: "D", 60: "D", 59: "F", 0: "F",
	}
	for v, want := range cases {
		got, err := ValueToLetter(v)
		require.NoError(t, err)
		assert.Equalf(t, want, got, "value %d", v)
	}
}

func TestValueToLetterOutOfRange(t *testing.T) {
	for _, v := range []int{-1, -100, 101, 1000} {
		_, err := ValueToLetter(v)
		assert.Truef(t, errors.Is(err, ErrValueOutOfRange), "value %d: %v", v, err)
	}
}

func TestLetterToValueIsBandMax(t *testing.T) {
	v, err := LetterToValue("A")
	require.NoError(t, err)
	assert.Equal(t, 96, v)

	v, err = LetterToValue("A+")
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	v, err = LetterToValue("F")
	require.NoError(t, err)
	assert.Equal(t, 59, v)
}

func TestLetterRoundTrip(t *testing.T) {
	for _, letter := range Letters() {
		v, err := LetterToValue(letter)
		require.NoError(t, err)
		back, err := ValueToLetter(v)
		require.NoError(t, err)
		assert.Equal(t, letter, back)
	}
}

func TestValueRoundTripIsLossy(t *testing.T) {
	letter, err := ValueToLetter(94)
	require.NoError(t, err)
	v, err := LetterToValue(letter)
	require.NoError(t, err)
	assert.Equal(t, 96, v)
}

func TestLetterToValueUnknown(t *testing.T) {
	for _, l := range []string{"Z", "", "a", "A++", "E", " A"} {
		_, err := LetterToValue(l)
		assert.Truef(t, errors.Is(err, ErrUnknownLetter), "letter %q", l)
	}
}

func TestAverage(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		want   int
	}{
		{"empty", nil, 0},
		{"single", []int{70}, 70},
		{"exact", []int{90, 80}, 85},
		{"tie rounds up to even", []int{90, 81}, 86},
		{"tie rounds down to even", []int{90, 79}, 84},
		{"tie at 0.5", []int{0, 1}, 0},
		{"tie at 1.5", []int{1, 2}, 2},
		{"below half", []int{90, 85, 85}, 87},
		{"above half", []int{90, 90, 86}, 89},
		{"report scenario", []int{95, 85}, 90},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Average(tc.values))
		})
	}
}
