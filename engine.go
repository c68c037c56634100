package payrun

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Execution errors returned by Engine.Execute. A rejected transaction leaves
// every balance, history entry and dispute untouched.
var (
	// ErrInsufficientFunds rejects a withdrawal larger than the available funds.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountLocked rejects any settlement on an account locked by a chargeback.
	ErrAccountLocked = errors.New("account locked")
	// ErrTransactionNotFound rejects a dispute referencing an unknown settlement.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrIneligibleTransaction rejects a dispute on a settlement that is not a deposit.
	ErrIneligibleTransaction = errors.New("transaction is not disputable")
	// ErrNonDisputedTransaction rejects a resolve or chargeback on a transaction not under dispute.
	ErrNonDisputedTransaction = errors.New("transaction is not under dispute")
	// ErrAlreadyDisputedTransaction rejects a second dispute on the same transaction.
	ErrAlreadyDisputedTransaction = errors.New("transaction is already under dispute")
)

// Engine applies a transaction stream, one record at a time in arrival order,
// to a set of lazily created accounts.
//
// All three stores are owned by the engine value: the account ledger, the
// history of settled deposits and withdrawals (the source of truth for
// disputed amounts), and the set of transaction ids currently under dispute.
type Engine struct {
	accounts map[AccountID]*Account
	history  map[TxID]Transaction
	disputed map[TxID]struct{}
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		accounts: make(map[AccountID]*Account),
		history:  make(map[TxID]Transaction),
		disputed: make(map[TxID]struct{}),
	}
}

// Execute applies one transaction and returns nil, or one of the execution
// errors with no state change.
//
// A deposit reusing an already-seen transaction id silently overwrites the
// history entry, so a later dispute settles against the most recent amount.
// A dispute may drive the available balance negative when withdrawals already
// consumed the disputed funds; the held amount legitimately exceeds what
// remains liquid.
func (e *Engine) Execute(t Transaction) error {
	switch v := t.(type) {
	case Deposit:
		account, err := e.fetchOrCreate(v.Account())
		if err != nil {
			return err
		}
		account.Available = account.Available.Add(v.Amount)
		account.Total = account.Total.Add(v.Amount)
		// Only settlements are recorded in history.
		e.history[v.Tx()] = v
	case Withdrawal:
		account, err := e.fetchOrCreate(v.Account())
		if err != nil {
			return err
		}
		if account.Available.LessThan(v.Amount) {
			return ErrInsufficientFunds
		}
		account.Available = account.Available.Sub(v.Amount)
		account.Total = account.Total.Sub(v.Amount)
		// Only settlements are recorded in history.
		e.history[v.Tx()] = v
	case Dispute:
		if _, ok := e.disputed[v.Tx()]; ok {
			return ErrAlreadyDisputedTransaction
		}
		owner, amount, err := e.disputableSettlement(v.Tx())
		if err != nil {
			return err
		}
		account, err := e.fetchOrCreate(owner)
		if err != nil {
			return err
		}
		account.Available = account.Available.Sub(amount)
		account.Held = account.Held.Add(amount)
		e.disputed[v.Tx()] = struct{}{}
	case Resolve:
		if _, ok := e.disputed[v.Tx()]; !ok {
			return ErrNonDisputedTransaction
		}
		owner, amount, err := e.disputableSettlement(v.Tx())
		if err != nil {
			return err
		}
		account, err := e.fetchOrCreate(owner)
		if err != nil {
			return err
		}
		account.Available = account.Available.Add(amount)
		account.Held = account.Held.Sub(amount)
		delete(e.disputed, v.Tx())
	case Chargeback:
		if _, ok := e.disputed[v.Tx()]; !ok {
			return ErrNonDisputedTransaction
		}
		owner, amount, err := e.disputableSettlement(v.Tx())
		if err != nil {
			return err
		}
		account, err := e.fetchOrCreate(owner)
		if err != nil {
			return err
		}
		account.Held = account.Held.Sub(amount)
		account.Total = account.Total.Sub(amount)
		account.Locked = true
		delete(e.disputed, v.Tx())
	default:
		// Transaction is sealed, this cannot happen.
		return fmt.Errorf("unsupported transaction kind %q", t.Kind())
	}
	return nil
}

// fetchOrCreate resolves the account, creating it with zero balances the
// first time its id is referenced. Locked accounts reject the operation.
func (e *Engine) fetchOrCreate(id AccountID) (*Account, error) {
	account, ok := e.accounts[id]
	if !ok {
		account = NewAccount(id)
		e.accounts[id] = account
	}
	if account.Locked {
		return nil, ErrAccountLocked
	}
	return account, nil
}

// disputableSettlement fetches the account and amount of the settlement a
// dispute-family record refers to. Only deposits are disputable: a
// withdrawal's funds have already left the account and cannot be frozen.
func (e *Engine) disputableSettlement(tx TxID) (AccountID, Amount, error) {
	t, ok := e.history[tx]
	if !ok {
		return 0, Amount{}, ErrTransactionNotFound
	}
	deposit, ok := t.(Deposit)
	if !ok {
		return 0, Amount{}, ErrIneligibleTransaction
	}
	return deposit.Account(), deposit.Amount, nil
}

// Account returns the account with this id, or nil if the stream never
// referenced it.
func (e *Engine) Account(id AccountID) *Account {
	return e.accounts[id]
}

// Accounts yields every account ascending by id, so that reports are
// reproducible across runs for the same input.
func (e *Engine) Accounts() iter.Seq[*Account] {
	ids := slices.Sorted(maps.Keys(e.accounts))
	return func(yield func(*Account) bool) {
		for _, id := range ids {
			if !yield(e.accounts[id]) {
				return
			}
		}
	}
}
