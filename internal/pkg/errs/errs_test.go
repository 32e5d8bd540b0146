//go:build unit

package errs_test

import (
	"testing"

	"studio-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStackLines(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Nil(t, errs.ExtractStackLines(nil, 10))
	})

	t.Run("wrapped error carries a stack", func(t *testing.T) {
		err := errs.Wrap(errs.New("db gone"), "failed to load room")

		lines := errs.ExtractStackLines(err, 0)
		require.NotEmpty(t, lines)
		assert.Contains(t, lines[0], "failed to load room")
	})

	t.Run("maxLines truncates", func(t *testing.T) {
		err := errs.New("boom")

		lines := errs.ExtractStackLines(err, 3)
		assert.LessOrEqual(t, len(lines), 3)
	})
}
