package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
)

// Option names understood by the pricing rules.
const (
	OptionSize        = "size"
	OptionExtraCheese = "extraCheese"
)

// ErrInvalidOptionValue is returned when an option is neither a string nor a boolean.
var ErrInvalidOptionValue = errors.New("option value must be a string or a boolean")

// OptionValue is a configured option: either a string or a boolean.
type OptionValue struct {
	text   string
	flag   bool
	isFlag bool
}

// Text builds a string option.
func Text(v string) OptionValue { return OptionValue{text: v} }

// Flag builds a boolean option.
func Flag(v bool) OptionValue { return OptionValue{flag: v, isFlag: true} }

// IsFlag reports whether the option is boolean.
func (v OptionValue) IsFlag() bool { return v.isFlag }

// Bool returns the boolean value; string options are never true.
func (v OptionValue) Bool() bool { return v.isFlag && v.flag }

// Text returns the string value; boolean options yield "".
func (v OptionValue) Text() string {
	if v.isFlag {
		return ""
	}
	return v.text
}

// String renders the value for human-readable summaries.
func (v OptionValue) String() string {
	if v.isFlag {
		return strconv.FormatBool(v.flag)
	}
	return v.text
}

func (v OptionValue) MarshalJSON() ([]byte, error) {
	if v.isFlag {
		return json.Marshal(v.flag)
	}
	return json.Marshal(v.text)
}

func (v *OptionValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*v = Flag(flag)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*v = Text(text)
		return nil
	}
	return ErrInvalidOptionValue
}

// Options maps option names to their configured values.
type Options map[string]OptionValue

// Clone returns an independent copy; nil stays nil.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	clone := make(Options, len(o))
	for k, v := range o {
		clone[k] = v
	}
	return clone
}

// Keys returns the option names in lexical order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Size returns the configured variant or "".
func (o Options) Size() string { return o[OptionSize].Text() }

// ExtraCheese reports whether the extra cheese add-on is selected.
func (o Options) ExtraCheese() bool { return o[OptionExtraCheese].Bool() }

// Equal compares the key-value sets of o and other. Nil and empty are equal.
func (o Options) Equal(other Options) bool {
	if len(o) != len(other) {
		return false
	}
	for k, v := range o {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

type optionEntry struct {
	Key   string `json:"k"`
	Kind  string `json:"t"`
	Value string `json:"v"`
}

// Fingerprint hashes the sorted key-value set, so equal option sets always share a fingerprint.
func (o Options) Fingerprint() string {
	entries := make([]optionEntry, 0, len(o))
	for _, k := range o.Keys() {
		v := o[k]
		kind := "s"
		if v.isFlag {
			kind = "b"
		}
		entries = append(entries, optionEntry{Key: k, Kind: kind, Value: v.String()})
	}
	payload, _ := json.Marshal(entries)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
