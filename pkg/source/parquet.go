package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/NVIDIA/dqgate/pkg/dataset"
	dqerrors "github.com/NVIDIA/dqgate/pkg/errors"
)

// parquetBatch is the number of rows read per call.
const parquetBatch = 256

// julianUnixEpoch is the Julian day number of 1970-01-01.
const julianUnixEpoch = 2440588

type parquetColumn struct {
	field   dataset.Field
	convert func(parquet.Value) any
}

func openParquet(path string) (dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeNotFound, fmt.Sprintf("failed to open dataset %q", path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close dataset", "path", path, "error", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInternal, fmt.Sprintf("failed to stat dataset %q", path), err)
	}

	return ReadParquet(f, info.Size())
}

// ReadParquet reads a Parquet file. Column types come from the file schema;
// nested groups are flattened into dotted names. Repeated fields are not
// supported.
func ReadParquet(r io.ReaderAt, size int64) (*dataset.Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "invalid parquet file", err)
	}

	schema := f.Schema()
	paths := schema.Columns()
	columns := make([]parquetColumn, len(paths))
	for _, path := range paths {
		name := normalizeName(strings.Join(path, dataset.FlattenSeparator))
		leaf, ok := schema.Lookup(path...)
		if !ok || leaf.ColumnIndex < 0 || leaf.ColumnIndex >= len(columns) {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidRequest, fmt.Sprintf("parquet column %q not found in schema", name))
		}
		if leaf.MaxRepetitionLevel > 0 {
			return nil, dqerrors.New(dqerrors.ErrCodeInvalidRequest,
				fmt.Sprintf("parquet column %q is repeated, only flat and nested non-repeated fields are supported", name))
		}

		t, convert, err := parquetType(leaf.Node.Type())
		if err != nil {
			return nil, dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, fmt.Sprintf("parquet column %q", name), err)
		}
		columns[leaf.ColumnIndex] = parquetColumn{
			field:   dataset.Field{Name: name, Type: t},
			convert: convert,
		}
	}

	fields := make(dataset.Schema, len(columns))
	for i, c := range columns {
		fields[i] = c.field
	}

	table, err := dataset.NewTable(fields, nil)
	if err != nil {
		return nil, err
	}

	buf := make([]parquet.Row, parquetBatch)
	for _, rg := range f.RowGroups() {
		if err := readRowGroup(rg, buf, columns, table); err != nil {
			return nil, err
		}
	}

	return table, nil
}

func readRowGroup(rg parquet.RowGroup, buf []parquet.Row, columns []parquetColumn, table *dataset.Table) error {
	rows := rg.Rows()
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Warn("failed to close parquet rows", "error", err)
		}
	}()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			values := make([]any, len(columns))
			for _, v := range row {
				i := v.Column()
				if i < 0 || i >= len(columns) || v.IsNull() {
					continue
				}
				values[i] = columns[i].convert(v)
			}
			if err := table.Append(values...); err != nil {
				return err
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return dqerrors.Wrap(dqerrors.ErrCodeInvalidRequest, "failed to read parquet rows", err)
		}
	}
}

// parquetType maps a Parquet column type to a type label and value converter.
func parquetType(t parquet.Type) (dataset.DataType, func(parquet.Value) any, error) {
	lt := t.LogicalType()

	if lt != nil && lt.Decimal != nil {
		label := dataset.DataType(fmt.Sprintf("%s(%d,%d)", dataset.TypeDecimal, lt.Decimal.Precision, lt.Decimal.Scale))
		scale := int(lt.Decimal.Scale)
		return label, func(v parquet.Value) any { return decimalValue(v, t.Kind(), scale) }, nil
	}

	switch t.Kind() {
	case parquet.Boolean:
		return dataset.TypeBoolean, func(v parquet.Value) any { return v.Boolean() }, nil

	case parquet.Int32:
		switch {
		case lt != nil && lt.Date != nil:
			return dataset.TypeDate, func(v parquet.Value) any {
				return time.Unix(int64(v.Int32())*86400, 0).UTC()
			}, nil
		case lt != nil && lt.Integer != nil && lt.Integer.IsSigned && lt.Integer.BitWidth == 8:
			return dataset.TypeTinyInt, func(v parquet.Value) any { return int8(v.Int32()) }, nil
		case lt != nil && lt.Integer != nil && lt.Integer.IsSigned && lt.Integer.BitWidth == 16:
			return dataset.TypeSmallInt, func(v parquet.Value) any { return int16(v.Int32()) }, nil
		case lt != nil && lt.Integer != nil && !lt.Integer.IsSigned:
			// unsigned values need the next wider signed type
			switch lt.Integer.BitWidth {
			case 8:
				return dataset.TypeSmallInt, func(v parquet.Value) any { return int16(uint8(v.Int32())) }, nil
			case 16:
				return dataset.TypeInt, func(v parquet.Value) any { return int32(uint16(v.Int32())) }, nil
			default:
				return dataset.TypeBigInt, func(v parquet.Value) any { return int64(uint32(v.Int32())) }, nil
			}
		}
		return dataset.TypeInt, func(v parquet.Value) any { return v.Int32() }, nil

	case parquet.Int64:
		if lt != nil && lt.Timestamp != nil {
			unit := time.Microsecond
			switch {
			case lt.Timestamp.Unit.Millis != nil:
				unit = time.Millisecond
			case lt.Timestamp.Unit.Nanos != nil:
				unit = time.Nanosecond
			}
			return dataset.TypeTimestamp, func(v parquet.Value) any {
				return time.Unix(0, 0).Add(time.Duration(v.Int64()) * unit).UTC()
			}, nil
		}
		if lt != nil && lt.Integer != nil && !lt.Integer.IsSigned {
			return dataset.TypeBigInt, func(v parquet.Value) any { return uint64(v.Int64()) }, nil
		}
		return dataset.TypeBigInt, func(v parquet.Value) any { return v.Int64() }, nil

	case parquet.Int96:
		return dataset.TypeTimestamp, func(v parquet.Value) any {
			i := v.Int96()
			nanos := int64(uint64(i[1])<<32 | uint64(i[0]))
			days := int64(i[2]) - julianUnixEpoch
			return time.Unix(days*86400, nanos).UTC()
		}, nil

	case parquet.Float:
		return dataset.TypeFloat, func(v parquet.Value) any { return v.Float() }, nil

	case parquet.Double:
		return dataset.TypeDouble, func(v parquet.Value) any { return v.Double() }, nil

	case parquet.ByteArray:
		if lt != nil && (lt.UTF8 != nil || lt.Enum != nil || lt.Json != nil) {
			return dataset.TypeString, func(v parquet.Value) any { return string(v.ByteArray()) }, nil
		}
		return dataset.TypeBinary, func(v parquet.Value) any { return bytes.Clone(v.ByteArray()) }, nil

	case parquet.FixedLenByteArray:
		if lt != nil && lt.UUID != nil {
			return dataset.TypeString, func(v parquet.Value) any {
				id, err := uuid.FromBytes(v.ByteArray())
				if err != nil {
					return nil
				}
				return id.String()
			}, nil
		}
		return dataset.TypeBinary, func(v parquet.Value) any { return bytes.Clone(v.ByteArray()) }, nil
	}

	return "", nil, fmt.Errorf("unsupported parquet type %s", t)
}

// decimalValue reads an unscaled decimal stored in any physical type.
func decimalValue(v parquet.Value, kind parquet.Kind, scale int) any {
	var unscaled *big.Int
	switch kind {
	case parquet.Int32:
		unscaled = big.NewInt(int64(v.Int32()))
	case parquet.Int64:
		unscaled = big.NewInt(v.Int64())
	default:
		unscaled = twosComplement(v.ByteArray())
	}

	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(unscaled),
		new(big.Float).SetFloat64(math.Pow10(scale)),
	).Float64()
	return f
}

// twosComplement decodes a big-endian two's complement integer.
func twosComplement(b []byte) *big.Int {
	n := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}
	return n
}
