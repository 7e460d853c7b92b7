// Package source loads datasets for validation.
//
// A Spec names where the data lives; Open picks the reader from the URI
// scheme, an explicit Format, or the file extension:
//
//	data/orders.csv                     CSV with a header row, types inferred
//	data/orders.tsv                     tab separated
//	data/events.jsonl                   one JSON object per line
//	data/events.json                    JSON array of objects, or JSON lines
//	data/prices.parquet                 Parquet, types from the file schema
//	postgres://user@host/db             PostgreSQL, rows from Spec.Query
//
// A trailing ".gz" on file paths is decompressed transparently (not for
// Parquet). Nested JSON objects are flattened into dotted column names.
// Column names are trimmed and normalized to Unicode NFC so they compare
// equal to dictionary entries typed on another system.
//
// Text cells are typed the way a schema-inferring reader would: a column is
// int when every non-empty cell fits 32 bits, bigint for 64 bits, double for
// any other number, boolean for true/false, date for bare dates, timestamp
// for date-times and string otherwise. Empty cells are nil.
package source
