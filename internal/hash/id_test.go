package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "FLOW RIGHT FACE", NormalizeName(" flow right face  "))
	require.Equal(t, ID(NormalizeName("STREAM LEAKAGE")), ID(NormalizeName("  stream leakage      ")))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("out.cbc", 100, 1)
	require.Equal(t, a, Fingerprint("out.cbc", 100, 1))
	require.NotEqual(t, a, Fingerprint("out.cbc", 101, 1))
	require.NotEqual(t, a, Fingerprint("out.cbc", 100, 2))
	require.NotEqual(t, a, Fingerprint("other.cbc", 100, 1))
}
