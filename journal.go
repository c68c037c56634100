package payrun

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// journalRecord is the JSONL form of a transaction record. The amount field
// is omitted for dispute-family kinds.
type journalRecord struct {
	Type   Kind             `json:"type"`
	Client AccountID        `json:"client"`
	Tx     TxID             `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

func (r journalRecord) transaction() (Transaction, error) {
	if _, err := ParseKind(string(r.Type)); err != nil {
		return nil, err
	}
	var amount Amount
	if r.Amount != nil {
		amount = A(*r.Amount)
		if amount.IsNegative() {
			return nil, fmt.Errorf("amount must not be negative, got %s", amount)
		}
	} else if r.Type.IsSettlement() {
		return nil, fmt.Errorf("%s requires an amount", r.Type)
	}
	return NewTransaction(r.Type, r.Client, r.Tx, amount)
}

// EncodeTransaction appends one transaction to a JSONL journal stream.
func EncodeTransaction(w io.Writer, t Transaction) error {
	record := journalRecord{Type: t.Kind(), Client: t.Account(), Tx: t.Tx()}
	switch v := t.(type) {
	case Deposit:
		d := v.Amount.Decimal()
		record.Amount = &d
	case Withdrawal:
		d := v.Amount.Decimal()
		record.Amount = &d
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// JournalReader decodes transaction records from a JSONL journal stream, one
// record per line. It implements Source.
type JournalReader struct {
	scanner *bufio.Scanner
	line    int
}

// NewJournalReader creates a journal reader.
func NewJournalReader(r io.Reader) *JournalReader {
	return &JournalReader{scanner: bufio.NewScanner(r)}
}

// Read decodes the next journal line. It returns io.EOF at the end of the
// stream; a malformed line yields an error and the reader moves on.
func (r *JournalReader) Read() (Transaction, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}
		var record journalRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		t, err := record.transaction()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return t, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
