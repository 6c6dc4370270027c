package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultContractKey is the contract_address entry written by a contract deployment
const DefaultContractKey = "lp"

// legacyContractKey holds a string-form contract_address once the record is upgraded to object form
const legacyContractKey = "default"

// AuxiliaryTokenSymbols lists the token symbols persisted as top-level keys of the record
var AuxiliaryTokenSymbols = []string{"usdc"}

// ConfigRecord is the persisted configuration shared by every run.
// Keys it does not know about are carried through untouched in Extra.
type ConfigRecord struct {
	Provider     string
	OwnerKey     string
	ValidatorKey string

	// Deployment parameters
	ContractName string
	DefaultAdmin string
	Minter       string
	Validator    string

	Contracts ContractAddresses
	Tokens    map[string]string

	Extra map[string]json.RawMessage

	// blank holds the raw value of known keys present in the file as "" or null,
	// so they are written back while the field stays unset
	blank map[string]json.RawMessage
}

// ContractAddresses models contract_address, which is either a bare address
// string or an object mapping contract keys to addresses.
type ContractAddresses struct {
	Single string
	Named  map[string]string
}

// Lookup returns the address registered for key, falling back to the bare address form
func (c ContractAddresses) Lookup(key string) (string, bool) {
	if addr, ok := c.Named[key]; ok && addr != "" {
		return addr, true
	}
	if c.Single != "" {
		return c.Single, true
	}
	return "", false
}

// Set registers an address under key. A bare address is kept under "default".
func (c *ContractAddresses) Set(key, address string) {
	if c.Named == nil {
		c.Named = make(map[string]string)
	}
	if c.Single != "" {
		if _, taken := c.Named[legacyContractKey]; !taken {
			c.Named[legacyContractKey] = c.Single
		}
		c.Single = ""
	}
	c.Named[key] = address
}

// Keys returns the named contract keys in sorted order
func (c ContractAddresses) Keys() []string {
	keys := make([]string, 0, len(c.Named))
	for k := range c.Named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsZero reports whether no address is recorded at all
func (c ContractAddresses) IsZero() bool {
	return c.Single == "" && len(c.Named) == 0
}

func (c ContractAddresses) MarshalJSON() ([]byte, error) {
	if len(c.Named) > 0 {
		return json.Marshal(c.Named)
	}
	return json.Marshal(c.Single)
}

func (c *ContractAddresses) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = ContractAddresses{}
		return nil
	}
	if trimmed[0] == '"' {
		var single string
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return err
		}
		*c = ContractAddresses{Single: single}
		return nil
	}
	var named map[string]string
	if err := json.Unmarshal(trimmed, &named); err != nil {
		return fmt.Errorf("contract_address must be an address or an object of addresses: %w", err)
	}
	*c = ContractAddresses{Named: named}
	return nil
}

// Token returns the address recorded for an auxiliary token symbol
func (r *ConfigRecord) Token(symbol string) string {
	return r.Tokens[symbol]
}

// SetToken records the address of an auxiliary token
func (r *ConfigRecord) SetToken(symbol, address string) {
	if r.Tokens == nil {
		r.Tokens = make(map[string]string)
	}
	r.Tokens[symbol] = address
}

// Redacted returns a copy safe for display, with signing secrets masked
func (r *ConfigRecord) Redacted() *ConfigRecord {
	cp := *r
	cp.OwnerKey = redact(r.OwnerKey)
	cp.ValidatorKey = redact(r.ValidatorKey)
	return &cp
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 10 {
		return "****"
	}
	return secret[:6] + "…" + secret[len(secret)-4:]
}

type recordField struct {
	key string
	ptr *string
}

func (r *ConfigRecord) stringFields() []recordField {
	return []recordField{
		{"provider", &r.Provider},
		{"owner_key", &r.OwnerKey},
		{"validator_key", &r.ValidatorKey},
		{"contract_name", &r.ContractName},
		{"default_admin", &r.DefaultAdmin},
		{"minter", &r.Minter},
		{"validator", &r.Validator},
	}
}

func (r ConfigRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+10)
	for k, v := range r.Extra {
		out[k] = v
	}
	for k, v := range r.blank {
		out[k] = v
	}
	for _, f := range r.stringFields() {
		if *f.ptr != "" {
			out[f.key] = *f.ptr
		}
	}
	if !r.Contracts.IsZero() {
		out["contract_address"] = r.Contracts
	}
	for symbol, addr := range r.Tokens {
		if addr != "" {
			out[symbol] = addr
		}
	}
	return json.Marshal(out)
}

// MarshalYAML renders the record with the keys of its JSON form
func (r ConfigRecord) MarshalYAML() (any, error) {
	data, err := r.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfigRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("config must be a JSON object")
	}

	*r = ConfigRecord{}
	for _, f := range r.stringFields() {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		delete(raw, f.key)
		if err := json.Unmarshal(v, f.ptr); err != nil {
			return fmt.Errorf("field %s: %w", f.key, err)
		}
		if *f.ptr == "" {
			r.keepBlank(f.key, v)
		}
	}

	if v, ok := raw["contract_address"]; ok {
		delete(raw, "contract_address")
		if err := r.Contracts.UnmarshalJSON(v); err != nil {
			return fmt.Errorf("field contract_address: %w", err)
		}
	}

	for _, symbol := range AuxiliaryTokenSymbols {
		v, ok := raw[symbol]
		if !ok {
			continue
		}
		delete(raw, symbol)
		var addr string
		if err := json.Unmarshal(v, &addr); err != nil {
			return fmt.Errorf("field %s: %w", symbol, err)
		}
		if addr != "" {
			r.SetToken(symbol, addr)
		} else {
			r.keepBlank(symbol, v)
		}
	}

	if len(raw) > 0 {
		r.Extra = raw
	}

	return nil
}

func (r *ConfigRecord) keepBlank(key string, raw json.RawMessage) {
	if r.blank == nil {
		r.blank = make(map[string]json.RawMessage)
	}
	r.blank[key] = raw
}
