package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	"github.com/NVIDIA/dqgate/pkg/defaults"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// QueryPostgres runs query against the database at dsn and returns the
// result set. Column types come from the result's type OIDs.
func QueryPostgres(ctx context.Context, dsn, query string) (*dataset.Table, error) {
	if strings.TrimSpace(query) == "" {
		return nil, dqerrors.New(dqerrors.ErrCodeInvalidConfig, "a query is required for postgres datasets")
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidConfig, "invalid postgres connection string", err)
	}
	cfg.MaxConns = 1

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaults.PostgresConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeUnavailable, "failed to connect to postgres", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeUnavailable, "failed to ping postgres", err)
	}
	slog.Debug("connected to postgres", "database", cfg.ConnConfig.Database, "host", cfg.ConnConfig.Host)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "query failed", err)
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	schema := make(dataset.Schema, len(descs))
	for i, d := range descs {
		schema[i] = dataset.Field{Name: normalizeName(d.Name), Type: postgresType(d.DataTypeOID)}
	}

	table, err := dataset.NewTable(schema, nil)
	if err != nil {
		return nil, err
	}

	for rows.Next() {
		raw, err := rows.Values()
		if err != nil {
			return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "failed to scan row", err)
		}
		values := make([]any, len(raw))
		for i, v := range raw {
			values[i] = postgresValue(schema[i].Type, v)
		}
		if err := table.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "failed to read rows", err)
	}

	return table, nil
}

// postgresType maps a result column type OID to a type label.
// Types without a dedicated label are read as string.
func postgresType(oid uint32) dataset.DataType {
	switch oid {
	case pgtype.BoolOID:
		return dataset.TypeBoolean
	case pgtype.Int2OID:
		return dataset.TypeSmallInt
	case pgtype.Int4OID:
		return dataset.TypeInt
	case pgtype.Int8OID:
		return dataset.TypeBigInt
	case pgtype.Float4OID:
		return dataset.TypeFloat
	case pgtype.Float8OID:
		return dataset.TypeDouble
	case pgtype.NumericOID:
		return dataset.TypeDecimal
	case pgtype.DateOID:
		return dataset.TypeDate
	case pgtype.TimestampOID, pgtype.TimestamptzOID:
		return dataset.TypeTimestamp
	case pgtype.ByteaOID:
		return dataset.TypeBinary
	default:
		return dataset.TypeString
	}
}

// postgresValue converts a decoded value to the representation used for t.
func postgresValue(t dataset.DataType, v any) any {
	if v == nil {
		return nil
	}

	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid {
			return nil
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case time.Time:
		if t == dataset.TypeTimestamp {
			return x.UTC()
		}
		return x
	case [16]byte:
		return uuid.UUID(x).String()
	}

	if t == dataset.TypeString {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprint(v)
	}
	return v
}
