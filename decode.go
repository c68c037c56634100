package payrun

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Source is a stream of decoded transactions. Read returns io.EOF when the
// stream is exhausted; any other error concerns a single row and the caller
// may skip it and keep reading.
type Source interface {
	Read() (Transaction, error)
}

// Reader decodes transaction records from a CSV stream.
//
// The first row is the header; columns are matched by name so their order
// does not matter. Fields may carry surrounding whitespace. The amount column
// is optional for dispute, resolve and chargeback rows and is required for
// deposits and withdrawals.
type Reader struct {
	csv  *csv.Reader
	cols map[string]int
	line int
}

// NewReader creates a transaction reader on top of a CSV stream.
func NewReader(r io.Reader) *Reader {
	c := csv.NewReader(r)
	c.TrimLeadingSpace = true
	// dispute rows commonly omit the trailing amount field entirely.
	c.FieldsPerRecord = -1
	c.ReuseRecord = true
	return &Reader{csv: c}
}

// header reads and indexes the header row.
func (r *Reader) header() error {
	record, err := r.csv.Read()
	if err != nil {
		return err
	}
	r.cols = make(map[string]int, len(record))
	for i, name := range record {
		r.cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := r.cols[required]; !ok {
			return fmt.Errorf("input header is missing the %q column", required)
		}
	}
	return nil
}

// field returns the trimmed value of a named column, or "" when the column is
// absent from this row.
func (r *Reader) field(record []string, name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Read decodes the next row into a Transaction. It returns io.EOF at the end
// of the stream. A malformed row yields an error describing the row; the
// reader stays usable and the next Read moves on to the following row.
func (r *Reader) Read() (Transaction, error) {
	if r.cols == nil {
		if err := r.header(); err != nil {
			return nil, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	r.line++

	kind, err := ParseKind(r.field(record, "type"))
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", r.line, err)
	}

	client, err := strconv.ParseUint(r.field(record, "client"), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid client id: %w", r.line, err)
	}
	tx, err := strconv.ParseUint(r.field(record, "tx"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid transaction id: %w", r.line, err)
	}

	var amount Amount
	if raw := r.field(record, "amount"); raw != "" {
		if amount, err = ParseAmount(raw); err != nil {
			return nil, fmt.Errorf("row %d: invalid amount: %w", r.line, err)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("row %d: amount must not be negative, got %s", r.line, amount)
		}
	} else if kind.IsSettlement() {
		return nil, fmt.Errorf("row %d: %s requires an amount", r.line, kind)
	}

	return NewTransaction(kind, AccountID(client), TxID(tx), amount)
}
