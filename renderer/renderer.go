// Package renderer turns the final account table into a markdown statement.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/payrun/payrun"
)

//go:embed *.md
var templates embed.FS

// StatementOptions holds configuration for rendering a statement.
type StatementOptions struct {
	// Currency, when set, formats balances with the locale conventions of this
	// ISO 4217 code instead of raw decimal text.
	Currency string
	// Title overrides the default statement title.
	Title string
}

// statementData is the template payload.
type statementData struct {
	Title    string
	Currency string
	Accounts []accountLine
	Locked   int
}

// accountLine is one pre-formatted row of the statement table.
type accountLine struct {
	ID        payrun.AccountID
	Available string
	Held      string
	Total     string
	Locked    bool
}

// Statement renders the account table to a markdown string, one row per
// account in the order the sequence yields them.
func Statement(accounts []*payrun.Account, opts StatementOptions) string {
	data := statementData{
		Title:    opts.Title,
		Currency: opts.Currency,
	}
	if data.Title == "" {
		data.Title = "Account Statement"
	}
	for _, account := range accounts {
		if account.Locked {
			data.Locked++
		}
		data.Accounts = append(data.Accounts, accountLine{
			ID:        account.ID,
			Available: FormatAmount(account.Available, opts.Currency),
			Held:      FormatAmount(account.Held, opts.Currency),
			Total:     FormatAmount(account.Total, opts.Currency),
			Locked:    account.Locked,
		})
	}

	partials := map[string]string{
		"statement_accounts": "statement_accounts.md",
	}
	return renderTemplate("statement", "statement.md", partials, data)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
