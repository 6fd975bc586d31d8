package i18n_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngi18n-go/packages/extractor/i18n"
)

func TestComputeMsgID(t *testing.T) {
	t.Run("should compute the message id", func(t *testing.T) {
		assert.Equal(t, "4416290763660062288", i18n.ComputeMsgID("", ""))
		assert.Equal(t, "2674653928643152084", i18n.ComputeMsgID("abc", ""))
		assert.Equal(t, "3902961887793684628", i18n.ComputeMsgID("Hello", ""))
	})

	t.Run("should mix the meaning into the id", func(t *testing.T) {
		assert.Equal(t, "5905004912418243898", i18n.ComputeMsgID("Hello", "greeting"))
		assert.NotEqual(t, i18n.ComputeMsgID("Hello", ""), i18n.ComputeMsgID("Hello", "greeting"))
		assert.NotEqual(t, i18n.ComputeMsgID("Hello", "greeting"), i18n.ComputeMsgID("Hello", "salutation"))
	})

	t.Run("should hash messages longer than one block", func(t *testing.T) {
		assert.Equal(t, "527535323599683031",
			i18n.ComputeMsgID("this is a much longer message spanning more than twelve bytes", ""))
	})

	t.Run("should be deterministic", func(t *testing.T) {
		assert.Equal(t, i18n.ComputeMsgID("some message", "m"), i18n.ComputeMsgID("some message", "m"))
	})

	t.Run("should fit in 63 bits", func(t *testing.T) {
		for _, msg := range []string{"", "a", "Hello world", "éèê", "1234567890123"} {
			id := i18n.ComputeMsgID(msg, "meaning")
			n, err := strconv.ParseUint(id, 10, 64)
			require.NoError(t, err, "id %q must be a decimal number", id)
			assert.LessOrEqual(t, n, uint64(0x7fffffffffffffff))
		}
	})
}

func TestComputeDigest(t *testing.T) {
	t.Run("should digest content and meaning", func(t *testing.T) {
		msg := &i18n.Message{Content: "Hello", Meaning: ""}
		assert.Equal(t, "d076adbb3fab5be167493b385b0bab2e710998ed", i18n.ComputeDigest(msg))

		msg = &i18n.Message{Content: "Hello", Meaning: "greeting"}
		assert.Equal(t, "affcce0b37dac7a17fdf738cc537c2bebf6fac06", i18n.ComputeDigest(msg))
	})
}

func TestDigest(t *testing.T) {
	t.Run("should prefer an existing id", func(t *testing.T) {
		msg := &i18n.Message{Content: "Hello", ID: "custom-id"}
		assert.Equal(t, "custom-id", i18n.Digest(msg))
		assert.Equal(t, "custom-id", i18n.DecimalDigest(msg))
	})

	t.Run("should fall back to the computed digest", func(t *testing.T) {
		msg := &i18n.Message{Content: "abc"}
		assert.Equal(t, "c518cc8df4a182cbc44d6131ddaba155b2949cdb", i18n.Digest(msg))
		assert.Equal(t, "2674653928643152084", i18n.DecimalDigest(msg))
	})
}

func TestSHA1(t *testing.T) {
	t.Run("should produce 40 hex characters", func(t *testing.T) {
		hash := i18n.SHA1("any input")
		require.Len(t, hash, 40)
	})
}
