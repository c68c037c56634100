package payrun

import (
	"encoding/csv"
	"io"
	"iter"
	"strconv"
)

// WriteReport writes the final account table as CSV: one row per account,
// ascending by id when fed from Engine.Accounts.
func WriteReport(w io.Writer, accounts iter.Seq[*Account]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for account := range accounts {
		row := []string{
			strconv.FormatUint(uint64(account.ID), 10),
			account.Available.String(),
			account.Held.String(),
			account.Total.String(),
			strconv.FormatBool(account.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactions writes transaction records in the canonical CSV input
// form. Dispute-family rows leave the amount column empty.
func WriteTransactions(w io.Writer, transactions []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		return err
	}
	for _, t := range transactions {
		amount := ""
		switch v := t.(type) {
		case Deposit:
			amount = v.Amount.String()
		case Withdrawal:
			amount = v.Amount.String()
		}
		row := []string{
			string(t.Kind()),
			strconv.FormatUint(uint64(t.Account()), 10),
			strconv.FormatUint(uint64(t.Tx()), 10),
			amount,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
