package cmd

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/payrun/payrun"
)

func TestProcessCmd_Run(t *testing.T) {
	in := "type, client, tx, amount\n" +
		"deposit, 1, 100, 10.0\n" +
		"deposit, 2, 200, 3.0\n" +
		"withdrawal, 1, 101, 4.0\n" +
		"withdrawal, 2, 201, 9.0\n" + // rejected: insufficient funds
		"bogus, 2, 202, 1.0\n" + // rejected: decode failure
		"dispute, 2, 200,\n"

	c := &processCmd{shards: 1, format: "csv"}
	src := payrun.NewReader(strings.NewReader(in))
	var out strings.Builder
	if err := c.run(context.Background(), src, nil, &out, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	want := "client,available,held,total,locked\n" +
		"1,6,0,6,false\n" +
		"2,0,3,3,false\n"
	if got := out.String(); got != want {
		t.Fatalf("report =\n%s\nwant\n%s", got, want)
	}
}

func TestProcessCmd_RunSharded(t *testing.T) {
	in := "type,client,tx,amount\n" +
		"deposit,1,100,10.0\n" +
		"deposit,2,200,5.0\n" +
		"dispute,2,200,\n" +
		"chargeback,2,200,\n"

	c := &processCmd{shards: 4, format: "csv"}
	src := payrun.NewReader(strings.NewReader(in))
	var out strings.Builder
	if err := c.run(context.Background(), src, nil, &out, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	want := "client,available,held,total,locked\n" +
		"1,10,0,10,false\n" +
		"2,0,0,0,true\n"
	if got := out.String(); got != want {
		t.Fatalf("report =\n%s\nwant\n%s", got, want)
	}
}

func TestProcessCmd_JournalMirrorsAcceptedSettlements(t *testing.T) {
	in := "type,client,tx,amount\n" +
		"deposit,1,100,10.0\n" +
		"withdrawal,1,101,99.0\n" + // rejected, must not reach the journal
		"dispute,1,100,\n" // accepted, but not a settlement

	c := &processCmd{shards: 1, format: "csv"}
	src := payrun.NewReader(strings.NewReader(in))
	var out, journal strings.Builder
	if err := c.run(context.Background(), src, &journal, &out, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	want := `{"type":"deposit","client":1,"tx":100,"amount":10}` + "\n"
	if got := journal.String(); got != want {
		t.Fatalf("journal =\n%s\nwant\n%s", got, want)
	}
}
