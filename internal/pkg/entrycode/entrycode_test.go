package entrycode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, Length)
		require.Regexp(t, "^[A-Z0-9]+$", code)

		seen[code] = true
	}

	// 100 draws from a 36^8 space never collide in practice.
	require.Len(t, seen, 100)
}
