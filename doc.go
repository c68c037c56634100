// Package payrun computes final per-account balances from an ordered stream
// of financial transaction records: deposits, withdrawals, disputes,
// resolutions and chargebacks.
//
// The core is the Engine: it owns the account ledger, the history of settled
// transactions, and the set of open disputes, and applies one record at a
// time under strict validity rules. Balances are fixed-point decimals with
// four fractional digits, and for every account the invariant
// total = available + held holds after every operation.
//
// Around the engine the package provides the plain I/O adapters:
//   - Reader decodes the CSV input stream into transaction records.
//   - WriteReport encodes the final account table as CSV, ascending by id.
//   - EncodeTransaction and JournalReader handle the JSONL journal form.
//   - ImportJSON lifts records out of provider JSON exports with a JSONPath.
//   - Sharded partitions a stream by account id over independent engines.
//
// This package serves as the foundational logic for the `prs` command-line
// tool.
package payrun
