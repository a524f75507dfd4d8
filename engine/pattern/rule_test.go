package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	rules := Compile("x", `\berror\b`, `(?i)\bslow\b`, `\bCS\d{4}\b`)

	t.Run("Should count each matching rule once", func(t *testing.T) {
		assert.Equal(t, 1, Count(rules, "error error error"))
		assert.Equal(t, 2, Count(rules, "error and CS0029"))
	})

	t.Run("Should return zero for no matches", func(t *testing.T) {
		assert.Equal(t, 0, Count(rules, "hello"))
		assert.False(t, Any(rules, "hello"))
	})

	t.Run("Should report matching expressions in table order", func(t *testing.T) {
		assert.Equal(t, []string{`(?i)\bslow\b`, `\bCS\d{4}\b`}, Matches(rules, "SLOW CS1001"))
	})
}

func TestCompile(t *testing.T) {
	t.Run("Should panic on an invalid expression", func(t *testing.T) {
		assert.Panics(t, func() { Compile("x", `(`) })
	})

	t.Run("Should tag every rule with the label", func(t *testing.T) {
		for _, r := range Compile("PERF", `a`, `b`) {
			assert.Equal(t, "PERF", r.Label)
		}
	})
}
