package nit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDigit(t *testing.T) {
	cases := map[string]byte{
		"800197268": '4',
		"860034313": '7',
		"900123456": '8',
		"12345":     '8',
	}
	for base, want := range cases {
		got, err := CheckDigit(base)
		require.NoError(t, err, base)
		assert.Equal(t, want, got, base)
	}

	_, err := CheckDigit("12a4")
	assert.ErrorIs(t, err, ErrFormat)
	_, err = CheckDigit("")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestNormalize(t *testing.T) {
	ok := map[string]string{
		"800.197.268-4": "800197268-4",
		" 860034313-7 ": "860034313-7",
		"900 123 456":   "900123456",
		"1020304050":    "1020304050",
	}
	for in, want := range ok {
		got, err := Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Normalize("800197268-5")
	assert.ErrorIs(t, err, ErrCheckDigit)

	for _, bad := range []string{"", "NIT900", "900-", "900-12", "-4"} {
		_, err := Normalize(bad)
		assert.ErrorIs(t, err, ErrFormat, bad)
	}
}
