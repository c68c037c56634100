package payrun

import (
	"strings"
	"testing"
)

func TestWriteReport(t *testing.T) {
	e := NewEngine()
	mustExecute(t, e, NewDeposit(2, 200, amt(t, "1.5")))
	mustExecute(t, e, NewDeposit(1, 100, amt(t, "10.0000")))
	mustExecute(t, e, NewWithdrawal(1, 101, amt(t, "5.0000")))
	mustExecute(t, e, NewDeposit(3, 300, amt(t, "2")))
	mustExecute(t, e, NewDispute(3, 300))
	mustExecute(t, e, NewChargeback(3, 300))

	var b strings.Builder
	if err := WriteReport(&b, e.Accounts()); err != nil {
		t.Fatalf("WriteReport() error: %v", err)
	}

	want := "client,available,held,total,locked\n" +
		"1,5,0,5,false\n" +
		"2,1.5,0,1.5,false\n" +
		"3,0,0,0,true\n"
	if got := b.String(); got != want {
		t.Fatalf("WriteReport() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteTransactions_RoundTrip(t *testing.T) {
	transactions := []Transaction{
		NewDeposit(1, 100, amt(t, "10.5")),
		NewWithdrawal(1, 101, amt(t, "0.0001")),
		NewDispute(1, 100),
		NewResolve(1, 100),
		NewChargeback(1, 100),
	}

	var b strings.Builder
	if err := WriteTransactions(&b, transactions); err != nil {
		t.Fatalf("WriteTransactions() error: %v", err)
	}

	decoded, rowErrs := readAll(t, NewReader(strings.NewReader(b.String())))
	if len(rowErrs) > 0 {
		t.Fatalf("round trip produced row errors: %v", rowErrs)
	}
	if len(decoded) != len(transactions) {
		t.Fatalf("round trip decoded %d transactions, want %d", len(decoded), len(transactions))
	}
	for i := range transactions {
		if !decoded[i].Equal(transactions[i]) {
			t.Errorf("transaction %d = %#v, want %#v", i, decoded[i], transactions[i])
		}
	}
}
