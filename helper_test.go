package payrun

import "testing"

// amt is a helper for tests to build an amount from its text form.
func amt(t *testing.T, s string) Amount {
	t.Helper()
	a, err := ParseAmount(s)
	if err != nil {
		t.Fatalf("invalid test amount %q: %v", s, err)
	}
	return a
}

// mustExecute applies a transaction and fails the test on rejection.
func mustExecute(t *testing.T, e *Engine, tx Transaction) {
	t.Helper()
	if err := e.Execute(tx); err != nil {
		t.Fatalf("Execute(%s %d) = %v, want success", tx.Kind(), tx.Tx(), err)
	}
}

// checkAccount asserts the full state of one account.
func checkAccount(t *testing.T, e *Engine, id AccountID, available, held, total string, locked bool) {
	t.Helper()
	account := e.Account(id)
	if account == nil {
		t.Fatalf("account %d does not exist", id)
	}
	if got, want := account.Available, amt(t, available); !got.Equal(want) {
		t.Errorf("account %d available = %s, want %s", id, got, want)
	}
	if got, want := account.Held, amt(t, held); !got.Equal(want) {
		t.Errorf("account %d held = %s, want %s", id, got, want)
	}
	if got, want := account.Total, amt(t, total); !got.Equal(want) {
		t.Errorf("account %d total = %s, want %s", id, got, want)
	}
	if account.Locked != locked {
		t.Errorf("account %d locked = %v, want %v", id, account.Locked, locked)
	}
	if !account.Balanced() {
		t.Errorf("account %d violates total = available + held", id)
	}
}
