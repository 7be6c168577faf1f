// file: internals/features/academic/scale/scale.go
package scale

import (
	"errors"
	"fmt"
)

const (
	MinValue = 0
	MaxValue = 100
)

var (
	ErrValueOutOfRange = errors.New("grade value out of range")
	ErrUnknownLetter   = errors.New("unknown letter grade")
)

// Band is one closed interval [Min, Max] of the scale.
type Band struct {
	Letter string `json:"letter"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

// Ordered from the highest band down; covers [0,100] with no gaps.
var bands = [...]Band{
	{Letter: "A+", Min: 97, Max: 100},
	{Letter: "A", Min: 93, Max: 96},
	{Letter: "A-", Min: 90, Max: 92},
	{Letter: "B+", Min: 87, Max: 89},
	{Letter: "B", Min: 83, Max: 86},
	{Letter: "B-", Min: 80, Max: 82},
	{Letter: "C+", Min: 77, Max: 79},
	{Letter: "C", Min: 73, Max: 76},
	{Letter: "C-", Min: 70, Max: 72},
	{Letter: "D", Min: 60, Max: 69},
	{Letter: "F", Min: 0, Max: 59},
}

var letterMax = func() map[string]int {
	m := make(map[string]int, len(bands))
	for _, b := range bands {
		m[b.Letter] = b.Max
	}
	return m
}()

func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands[:])
	return out
}

func Letters() []string {
	out := make([]string, 0, len(bands))
	for _, b := range bands {
		out = append(out, b.Letter)
	}
	return out
}

func InRange(v int) bool { return v >= MinValue && v <= MaxValue }

// ValueToLetter returns the letter whose band contains v.
func ValueToLetter(v int) (string, error) {
	for _, b := range bands {
		if v >= b.Min && v <= b.Max {
			return b.Letter, nil
		}
	}
	return "", fmt.Errorf("%w: %d is outside %d-%d", ErrValueOutOfRange, v, MinValue, MaxValue)
}

// LetterToValue returns the ceiling of the letter's band ("A" -> 96).
// Converting back with ValueToLetter always gives the same letter; the
// exact score behind a letter is not recoverable.
func LetterToValue(letter string) (int, error) {
	v, ok := letterMax[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLetter, letter)
	}
	return v, nil
}

// Average is the mean of values rounded half to even; 0 for no values.
func Average(values []int) int {
	n := len(values)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return roundHalfEven(sum, n)
}

// roundHalfEven: exact integer division, ties go to the even neighbour.
func roundHalfEven(num, den int) int {
	neg := (num < 0) != (den < 0)
	if num < 0 {
		num = -num
	}
	if den < 0 {
		den = -den
	}
	q, r := num/den, num%den
	switch {
	case 2*r > den:
		q++
	case 2*r == den && q%2 == 1:
		q++
	}
	if neg {
		return -q
	}
	return q
}
