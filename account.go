package payrun

// AccountID identifies an account in the input stream.
type AccountID uint16

// Account tracks the funds of a single account.
//
// Total is always Available plus Held. Once Locked is set (by a chargeback)
// the account permanently rejects deposits and withdrawals.
type Account struct {
	ID        AccountID
	Available Amount // funds usable for withdrawal
	Held      Amount // funds frozen pending dispute resolution
	Total     Amount // Available + Held
	Locked    bool
}

// NewAccount creates an account with zero balances and no lock.
func NewAccount(id AccountID) *Account {
	return &Account{ID: id}
}

// Balanced reports whether the Total == Available + Held invariant holds.
func (a *Account) Balanced() bool {
	return a.Total.Equal(a.Available.Add(a.Held))
}
