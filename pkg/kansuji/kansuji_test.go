package kansuji_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/novelint/pkg/kansuji"
)

func TestFormat_Digits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"three digits", "123", "一二三"},
		{"year with zero", "2017", "二〇一七"},
		{"fullwidth digits", "１２３", "一二三"},
		{"decimal", "3.14", "三・一四"},
		{"fullwidth decimal", "３．１４", "三・一四"},
		{"leading zeros kept", "007", "〇〇七"},
		{"not a numeral", "abc", "abc"},
		{"trailing separator", "12.", "12."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, kansuji.Format(tt.input, kansuji.StyleDigits))
		})
	}
}

func TestFormat_Units(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"0", "〇"},
		{"7", "七"},
		{"10", "十"},
		{"11", "十一"},
		{"123", "百二十三"},
		{"1000", "千"},
		{"2017", "二千十七"},
		{"10000", "一万"},
		{"12345", "一万二千三百四十五"},
		{"100000000", "一億"},
		{"100010000", "一億一万"},
		{"3.5", "三・五"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, kansuji.Format(tt.input, kansuji.StyleUnits))
		})
	}
}

func TestParseStyle(t *testing.T) {
	t.Parallel()

	style, err := kansuji.ParseStyle("units")
	require.NoError(t, err)
	assert.Equal(t, kansuji.StyleUnits, style)

	style, err = kansuji.ParseStyle("wide")
	require.NoError(t, err)
	assert.Equal(t, kansuji.StyleDigits, style)

	_, err = kansuji.ParseStyle("roman")
	require.ErrorIs(t, err, kansuji.ErrUnknownStyle)

	assert.Equal(t, "units", kansuji.StyleUnits.String())
	assert.Equal(t, "digits", kansuji.StyleDigits.String())
}
