package randompkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountNumber(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}

	for i := 0; i < 100; i++ {
		n := AccountNumber()

		require.Len(t, n, 10)
		require.NotEqual(t, byte('0'), n[0])

		for _, c := range n {
			require.True(t, c >= '0' && c <= '9', "unexpected character %q in %v", c, n)
		}

		seen[n] = true
	}

	// 100 draws from a 9e9 space colliding down to a handful would mean the
	// generator is broken.
	require.Greater(t, len(seen), 90)
}

func TestMoneyAmountBetween(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		amount := MoneyAmountBetween(10, 1_000)

		f, _ := amount.Float64()
		require.GreaterOrEqual(t, f, 10.0)
		require.Less(t, f, 1_000.0)
	}
}
