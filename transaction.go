package payrun

import "fmt"

// TxID identifies a settlement transaction. Dispute, resolve and chargeback
// records reference the id of an existing settlement instead of carrying an
// identity of their own.
type TxID uint32

// Kind is a typed string identifying a transaction record kind.
type Kind string

// Kinds of transaction records accepted in the input stream.
const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
	KindDispute    Kind = "dispute"
	KindResolve    Kind = "resolve"
	KindChargeback Kind = "chargeback"
)

// ParseKind parses a kind from its input-stream spelling.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdrawal, KindDispute, KindResolve, KindChargeback:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// IsSettlement reports whether the kind moves funds and is recorded in the
// transaction history (deposit or withdrawal).
func (k Kind) IsSettlement() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is the common interface of the five record kinds.
//
// The set of implementations is closed: the engine dispatches exhaustively on
// the concrete type, so a new kind is a compile-time obligation on every
// switch site.
type Transaction interface {
	Kind() Kind          // Kind returns the record kind (e.g. "deposit").
	Account() AccountID  // Account returns the account the record names.
	Tx() TxID            // Tx returns the settlement transaction id.
	Equal(Transaction) bool

	sealed()
}

// baseTx carries the fields shared by every record kind.
type baseTx struct {
	account AccountID
	tx      TxID
}

func (t baseTx) Account() AccountID { return t.account }
func (t baseTx) Tx() TxID           { return t.tx }
func (t baseTx) sealed()            {}

// Deposit credits an account and records a history entry.
type Deposit struct {
	baseTx
	Amount Amount
}

// NewDeposit creates a new Deposit record.
func NewDeposit(account AccountID, tx TxID, amount Amount) Deposit {
	return Deposit{baseTx: baseTx{account: account, tx: tx}, Amount: amount}
}

func (Deposit) Kind() Kind { return KindDeposit }

func (t Deposit) Equal(other Transaction) bool {
	o, ok := other.(Deposit)
	return ok && t.baseTx == o.baseTx && t.Amount.Equal(o.Amount)
}

// Withdrawal debits an account and records a history entry.
type Withdrawal struct {
	baseTx
	Amount Amount
}

// NewWithdrawal creates a new Withdrawal record.
func NewWithdrawal(account AccountID, tx TxID, amount Amount) Withdrawal {
	return Withdrawal{baseTx: baseTx{account: account, tx: tx}, Amount: amount}
}

func (Withdrawal) Kind() Kind { return KindWithdrawal }

func (t Withdrawal) Equal(other Transaction) bool {
	o, ok := other.(Withdrawal)
	return ok && t.baseTx == o.baseTx && t.Amount.Equal(o.Amount)
}

// Dispute opens a dispute on a previously settled deposit, freezing its
// amount.
type Dispute struct {
	baseTx
}

// NewDispute creates a new Dispute record referencing settlement tx.
func NewDispute(account AccountID, tx TxID) Dispute {
	return Dispute{baseTx: baseTx{account: account, tx: tx}}
}

func (Dispute) Kind() Kind { return KindDispute }

func (t Dispute) Equal(other Transaction) bool {
	o, ok := other.(Dispute)
	return ok && t.baseTx == o.baseTx
}

// Resolve closes a dispute in the account holder's favor, releasing the held
// funds.
type Resolve struct {
	baseTx
}

// NewResolve creates a new Resolve record referencing settlement tx.
func NewResolve(account AccountID, tx TxID) Resolve {
	return Resolve{baseTx: baseTx{account: account, tx: tx}}
}

func (Resolve) Kind() Kind { return KindResolve }

func (t Resolve) Equal(other Transaction) bool {
	o, ok := other.(Resolve)
	return ok && t.baseTx == o.baseTx
}

// Chargeback closes a dispute in the disputer's favor, withdrawing the held
// funds and locking the account.
type Chargeback struct {
	baseTx
}

// NewChargeback creates a new Chargeback record referencing settlement tx.
func NewChargeback(account AccountID, tx TxID) Chargeback {
	return Chargeback{baseTx: baseTx{account: account, tx: tx}}
}

func (Chargeback) Kind() Kind { return KindChargeback }

func (t Chargeback) Equal(other Transaction) bool {
	o, ok := other.(Chargeback)
	return ok && t.baseTx == o.baseTx
}

// NewTransaction builds the record for a parsed row. The amount is ignored
// for dispute-family kinds.
func NewTransaction(kind Kind, account AccountID, tx TxID, amount Amount) (Transaction, error) {
	switch kind {
	case KindDeposit:
		return NewDeposit(account, tx, amount), nil
	case KindWithdrawal:
		return NewWithdrawal(account, tx, amount), nil
	case KindDispute:
		return NewDispute(account, tx), nil
	case KindResolve:
		return NewResolve(account, tx), nil
	case KindChargeback:
		return NewChargeback(account, tx), nil
	default:
		return nil, fmt.Errorf("unknown transaction type %q", kind)
	}
}
