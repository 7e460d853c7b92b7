package source

import (
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

func TestPostgresType(t *testing.T) {
	tests := []struct {
		oid  uint32
		want dataset.DataType
	}{
		{pgtype.BoolOID, dataset.TypeBoolean},
		{pgtype.Int2OID, dataset.TypeSmallInt},
		{pgtype.Int4OID, dataset.TypeInt},
		{pgtype.Int8OID, dataset.TypeBigInt},
		{pgtype.Float4OID, dataset.TypeFloat},
		{pgtype.Float8OID, dataset.TypeDouble},
		{pgtype.NumericOID, dataset.TypeDecimal},
		{pgtype.DateOID, dataset.TypeDate},
		{pgtype.TimestampOID, dataset.TypeTimestamp},
		{pgtype.TimestamptzOID, dataset.TypeTimestamp},
		{pgtype.ByteaOID, dataset.TypeBinary},
		{pgtype.TextOID, dataset.TypeString},
		{pgtype.VarcharOID, dataset.TypeString},
		{pgtype.UUIDOID, dataset.TypeString},
		{pgtype.JSONBOID, dataset.TypeString},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, postgresType(tt.oid), "oid %d", tt.oid)
	}
}

func TestPostgresValue(t *testing.T) {
	assert.Nil(t, postgresValue(dataset.TypeString, nil))

	num := pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}
	assert.InDelta(t, 123.45, postgresValue(dataset.TypeDecimal, num), 1e-9)
	assert.Nil(t, postgresValue(dataset.TypeDecimal, pgtype.Numeric{}))

	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2024, 1, 1, 1, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), postgresValue(dataset.TypeTimestamp, ts))

	id := [16]byte{0x12, 0x3e, 0x45, 0x67, 0xe8, 0x9b, 0x12, 0xd3, 0xa4, 0x56, 0x42, 0x66, 0x14, 0x17, 0x40, 0x00}
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", postgresValue(dataset.TypeString, id))

	assert.Equal(t, "map[a:1]", postgresValue(dataset.TypeString, map[string]any{"a": 1}))
	assert.Equal(t, int32(7), postgresValue(dataset.TypeInt, int32(7)))
}

func TestQueryPostgres_Config(t *testing.T) {
	_, err := QueryPostgres(t.Context(), "postgres://localhost/db", " ")
	require.Error(t, err)
	assert.True(t, dqerrors.IsConfig(err))

	_, err = QueryPostgres(t.Context(), "postgres://%zz", "select 1")
	require.Error(t, err)
	assert.True(t, dqerrors.IsConfig(err))
}

// Runs against a live database when DQGATE_TEST_POSTGRES holds its URL.
func TestQueryPostgres_Live(t *testing.T) {
	dsn := os.Getenv("DQGATE_TEST_POSTGRES")
	if dsn == "" {
		t.Skip("DQGATE_TEST_POSTGRES not set")
	}

	tbl, err := QueryPostgres(t.Context(),
		dsn, "select 1::int4 as id, 'a'::text as name, 1.5::numeric as amount, null::date as day")
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Count())
	assert.Equal(t, dataset.Schema{
		{Name: "id", Type: dataset.TypeInt},
		{Name: "name", Type: dataset.TypeString},
		{Name: "amount", Type: dataset.TypeDecimal},
		{Name: "day", Type: dataset.TypeDate},
	}, tbl.Schema())

	amount, err := tbl.Column("amount")
	require.NoError(t, err)
	assert.Equal(t, []any{1.5}, amount)
}
