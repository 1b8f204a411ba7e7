package book

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Book.UID must scan from a postgres uuid column in both wire formats.
func TestPostgresUUIDScan(t *testing.T) {
	m := pgtype.NewMap()
	want := uuid.MustParse("0b7a2c1e-5d2f-4a77-9b0c-2f4f7e8a9c11")

	t.Run("text", func(t *testing.T) {
		var got uuid.UUID
		require.NoError(t, m.Scan(pgtype.UUIDOID, pgtype.TextFormatCode, []byte(want.String()), &got))
		assert.Equal(t, want, got)
	})

	t.Run("binary", func(t *testing.T) {
		var got uuid.UUID
		require.NoError(t, m.Scan(pgtype.UUIDOID, pgtype.BinaryFormatCode, want[:], &got))
		assert.Equal(t, want, got)
	})
}
