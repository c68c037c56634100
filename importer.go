package payrun

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// ImportJSON extracts transaction records out of a provider JSON export.
//
// Providers rarely hand out flat files: the records sit somewhere inside a
// response envelope. The path argument is a JSONPath expression selecting the
// array of record objects (for example "$.transactions[*]"); each selected
// object must carry "type", "client" and "tx" fields, plus "amount" for
// settlements. Amounts may be JSON numbers or decimal strings.
func ImportJSON(r io.Reader, path string) ([]Transaction, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("decoding provider document: %w", err)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", path, err)
	}
	rows, ok := jval.([]any)
	if !ok {
		// a path selecting a single object still imports one record.
		rows = []any{jval}
	}

	transactions := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d: expected an object, got %T", i, row)
		}
		t, err := importRecord(obj)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func importRecord(obj map[string]any) (Transaction, error) {
	rawKind, ok := obj["type"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or non-string %q field", "type")
	}
	kind, err := ParseKind(rawKind)
	if err != nil {
		return nil, err
	}

	client, err := importID(obj, "client", 1<<16-1)
	if err != nil {
		return nil, err
	}
	tx, err := importID(obj, "tx", 1<<32-1)
	if err != nil {
		return nil, err
	}

	var amount Amount
	switch v := obj["amount"].(type) {
	case nil:
		if kind.IsSettlement() {
			return nil, fmt.Errorf("%s requires an amount", kind)
		}
	case float64:
		amount = A(v)
	case string:
		if amount, err = ParseAmount(v); err != nil {
			return nil, fmt.Errorf("invalid amount: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid amount type %T", v)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative, got %s", amount)
	}

	return NewTransaction(kind, AccountID(client), TxID(tx), amount)
}

// importID reads an unsigned identifier field, which providers emit as a JSON
// number.
func importID(obj map[string]any, field string, max uint64) (uint64, error) {
	v, ok := obj[field].(float64)
	if !ok {
		return 0, fmt.Errorf("missing or non-numeric %q field", field)
	}
	if v < 0 || v != float64(uint64(v)) || uint64(v) > max {
		return 0, fmt.Errorf("field %q out of range: %v", field, v)
	}
	return uint64(v), nil
}
