package word

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "wordwatch/pkg/domain-errors"
)

func TestNormalize(t *testing.T) {
	t.Run("trims and lowercases", func(t *testing.T) {
		got, err := Normalize("  FooBar \t")
		require.NoError(t, err)
		assert.Equal(t, "foobar", got)
	})

	t.Run("is idempotent", func(t *testing.T) {
		for _, input := range []string{"Foo ", " BAR", "już", "  MiXeD CaSe  "} {
			once, err := Normalize(input)
			require.NoError(t, err)
			twice, err := Normalize(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		}
	})

	t.Run("rejects empty result", func(t *testing.T) {
		for _, input := range []string{"", "   ", "\t\n"} {
			_, err := Normalize(input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		}
	})

	t.Run("rejects 255 code points and above", func(t *testing.T) {
		_, err := Normalize(strings.Repeat("a", 255))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

		// Length counts code points, not bytes.
		_, err = Normalize(strings.Repeat("ż", 255))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects oversized input even when padding would trim away", func(t *testing.T) {
		// Length bounds apply to the raw input, not the trimmed result.
		_, err := Normalize("a" + strings.Repeat(" ", 300))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("accepts 254 code points", func(t *testing.T) {
		got, err := Normalize(strings.Repeat("ż", 254))
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("ż", 254), got)
	})
}

func TestCheckReserved(t *testing.T) {
	for _, key := range []string{"_id", "discord_server_id", "discord_user_id", "total_words", "total_flagged_words"} {
		err := CheckReserved(key)
		require.Error(t, err, key)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeReservedWord))
	}

	assert.NoError(t, CheckReserved("foo"))
	// Equality check only; prefixed names are ordinary words.
	assert.NoError(t, CheckReserved("total_words_spoken"))
}

func TestNormalizeAll(t *testing.T) {
	t.Run("normalizes batch", func(t *testing.T) {
		got, err := NormalizeAll([]string{"Foo ", " BAR"})
		require.NoError(t, err)
		assert.Equal(t, []string{"foo", "bar"}, got)
	})

	t.Run("empty batch is an error", func(t *testing.T) {
		_, err := NormalizeAll(nil)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects reserved names after normalization", func(t *testing.T) {
		_, err := NormalizeAll([]string{" Total_Words "})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeReservedWord))
	})

	t.Run("one bad word fails the whole batch", func(t *testing.T) {
		_, err := NormalizeAll([]string{"fine", "   "})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
