package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLevels(t *testing.T) {
	t.Run("explicit level", func(t *testing.T) {
		l, err := Init("WARN", "dev")
		require.NoError(t, err)
		defer l.Closer()
		assert.Equal(t, zap.WarnLevel, l.Level.Level())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		l, err := Init("chatty", "prod")
		require.NoError(t, err)
		defer l.Closer()
		assert.Equal(t, zap.InfoLevel, l.Level.Level())
	})
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Base.Info("discarded")
	l.Closer()
}
