package render

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	labelStyle   = color.New(color.Faint)
	valueStyle   = color.New(color.FgWhite)
	addressStyle = color.New(color.FgCyan)
	hashStyle    = color.New(color.FgHiBlack)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	okStyle      = color.New(color.FgGreen)
	warnStyle    = color.New(color.FgYellow)
	errStyle     = color.New(color.FgRed)
)

var titleCaser = cases.Title(language.English)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warnStyle.Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Keep only the innermost part of an error chain
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return errStyle.Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return okStyle.Sprintf("✅ %s", message)
}

// Title turns an identifier such as "base-sepolia" into "Base Sepolia"
func Title(s string) string {
	return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(s))
}

// FormatGwei renders a wei amount in gwei
func FormatGwei(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	gwei := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.GWei))
	return gwei.Text('f', -1) + " gwei"
}

// FormatWei renders a wei amount, falling back to "-" for nil
func FormatWei(wei *big.Int) string {
	if wei == nil {
		return "-"
	}
	return wei.String()
}

// kvTable is a borderless two-column table used for single results
type kvTable struct {
	t table.Writer
}

func newKVTable() *kvTable {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{PaddingLeft: "  ", PaddingRight: " "}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})
	return &kvTable{t: t}
}

func (k *kvTable) add(label string, value string) {
	k.t.AppendRow(table.Row{labelStyle.Sprint(label + ":"), value})
}

func (k *kvTable) render(out io.Writer) {
	fmt.Fprintln(out, k.t.Render())
}

// newListTable builds a table with a header row for lists of items
func newListTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Format.Header = text.FormatDefault
	t.Style().Box.PaddingRight = "   "
	t.AppendHeader(header)
	return t
}

// relativePath returns path relative to the current directory when possible
func relativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
