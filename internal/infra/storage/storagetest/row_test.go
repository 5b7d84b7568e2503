package storagetest

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowScan(t *testing.T) {
	t.Run("values and null into pointer", func(t *testing.T) {
		var id int64
		var name string
		var note *string

		err := NewRow(int64(5), "a", nil).Scan(&id, &name, &note)
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
		assert.Equal(t, "a", name)
		assert.Nil(t, note)
	})

	t.Run("value into pointer", func(t *testing.T) {
		var note *string

		require.NoError(t, NewRow("b").Scan(&note))
		require.NotNil(t, note)
		assert.Equal(t, "b", *note)
	})

	t.Run("null into scanner", func(t *testing.T) {
		var s sql.NullString

		require.NoError(t, NewRow(nil).Scan(&s))
		assert.False(t, s.Valid)
	})

	t.Run("null into value", func(t *testing.T) {
		var name string

		err := NewRow(nil).Scan(&name)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "converting NULL to string is unsupported")
	})

	t.Run("column count mismatch", func(t *testing.T) {
		var id int64

		assert.Error(t, NewRow(int64(1), int64(2)).Scan(&id))
	})

	t.Run("row error", func(t *testing.T) {
		var id int64

		err := Row{Err: sql.ErrNoRows}.Scan(&id)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})
}
