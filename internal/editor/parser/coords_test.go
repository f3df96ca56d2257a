package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCoords_Plain(t *testing.T) {
	assert.Equal(t, []int{10, 20, 110, 60}, ParseCoords("10,20,110,60"))
}

func TestParseCoords_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, ParseCoords(" 1 , 2,3 "))
}

func TestParseCoords_InvalidTokensBecomeZero(t *testing.T) {
	assert.Equal(t, []int{10, 0, 0, 40}, ParseCoords("10,abc,,40"))
}

func TestParseCoords_LeadingIntegerPrefix(t *testing.T) {
	assert.Equal(t, []int{12, 3, -7, 5}, ParseCoords("12px,3.9,-7,+5"))
}

func TestParseCoords_SignWithoutDigits(t *testing.T) {
	assert.Equal(t, []int{0, 0}, ParseCoords("-,+"))
}

func TestParseCoords_Overflow(t *testing.T) {
	assert.Equal(t, []int{0, 1}, ParseCoords("99999999999999999999999,1"))
}

func TestParseCoords_KeepsTokenCount(t *testing.T) {
	assert.Len(t, ParseCoords(""), 1)
	assert.Len(t, ParseCoords("1,2,3,4,5"), 5)
}

func TestFormatCoords(t *testing.T) {
	assert.Equal(t, "10,10,110,60", FormatCoords([]int{10, 10, 110, 60}))
	assert.Equal(t, "", FormatCoords(nil))
	assert.Equal(t, "-1,2", FormatCoords([]int{-1, 2}))
}
