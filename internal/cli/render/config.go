package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
	"github.com/samber/lo"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// RenderConfig renders the config record with secrets masked, then the local preferences
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	fmt.Fprintln(r.out, "📋 Config record:")

	rec := result.Record
	kv := newKVTable()
	kv.add("provider", orUnset(rec.Provider))
	kv.add("owner_key", orUnset(rec.OwnerKey))
	kv.add("validator_key", orUnset(rec.ValidatorKey))
	kv.add("contract_name", orUnset(rec.ContractName))
	kv.add("default_admin", orUnset(rec.DefaultAdmin))
	kv.add("minter", orUnset(rec.Minter))
	kv.add("validator", orUnset(rec.Validator))

	if rec.Contracts.Single != "" {
		kv.add("contract_address", addressStyle.Sprint(rec.Contracts.Single))
	}
	for _, key := range rec.Contracts.Keys() {
		kv.add("contract_address."+key, addressStyle.Sprint(rec.Contracts.Named[key]))
	}

	symbols := lo.Keys(rec.Tokens)
	sort.Strings(symbols)
	for _, symbol := range symbols {
		kv.add(symbol, addressStyle.Sprint(rec.Tokens[symbol]))
	}

	extra := lo.Keys(rec.Extra)
	sort.Strings(extra)
	for _, key := range extra {
		kv.add(key, labelStyle.Sprint(string(rec.Extra[key])))
	}
	kv.render(r.out)
	fmt.Fprintf(r.out, "📁 config file: %s\n\n", relativePath(result.RecordPath))

	fmt.Fprintln(r.out, "⚙️  Local preferences:")
	local := newKVTable()
	local.add("network", orUnset(result.Local.Network))
	local.add("artifacts", orUnset(result.Local.Artifacts))
	local.render(r.out)
	fmt.Fprintf(r.out, "📁 local file: %s\n", relativePath(result.LocalPath))

	return nil
}

// RenderGet renders a single local preference
func (r *ConfigRenderer) RenderGet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "%s: %s\n", result.Key, orUnset(result.Value))
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Set %s to: %s", result.Key, result.Value)))
	if result.PreviousValue != "" && result.PreviousValue != result.Value {
		fmt.Fprintln(r.out, labelStyle.Sprintf("   was: %s", result.PreviousValue))
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.SetConfigResult) error {
	if result.PreviousValue == "" {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%s was not set", result.Key)))
	} else {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Removed %s (was: %s)", result.Key, result.PreviousValue)))
	}
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", relativePath(result.ConfigPath))
	return nil
}

func orUnset(v string) string {
	if v == "" {
		return labelStyle.Sprint("(not set)")
	}
	return v
}
