package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SettingKind tags the variant held by a SettingValue.
type SettingKind string

const (
	SettingNumber     SettingKind = "number"
	SettingBool       SettingKind = "bool"
	SettingText       SettingKind = "text"
	SettingStructured SettingKind = "structured"
)

// SettingValue is a typed server setting. Exactly one of the payload fields is
// meaningful, selected by Kind.
type SettingValue struct {
	Kind       SettingKind
	number     float64
	boolean    bool
	text       string
	structured json.RawMessage
}

// NumberValue builds a numeric setting.
func NumberValue(v float64) SettingValue { return SettingValue{Kind: SettingNumber, number: v} }

// BoolValue builds a boolean setting.
func BoolValue(v bool) SettingValue { return SettingValue{Kind: SettingBool, boolean: v} }

// TextValue builds a text setting.
func TextValue(v string) SettingValue { return SettingValue{Kind: SettingText, text: v} }

// StructuredValue builds a structured setting from any JSON-serializable value.
// The stored form is canonical: object keys are sorted and whitespace removed.
func StructuredValue(v any) (SettingValue, error) {
	raw, err := canonicalJSON(v)
	if err != nil {
		return SettingValue{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return SettingValue{Kind: SettingStructured, structured: raw}, nil
}

func canonicalJSON(v any) (json.RawMessage, error) {
	if raw, ok := v.(json.RawMessage); ok {
		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return nil, err
		}
		v = decoded
	}
	return json.Marshal(v)
}

// Number returns the numeric payload and whether the value is a number.
func (v SettingValue) Number() (float64, bool) { return v.number, v.Kind == SettingNumber }

// Bool returns the boolean payload and whether the value is a boolean.
func (v SettingValue) Bool() (bool, bool) { return v.boolean, v.Kind == SettingBool }

// Text returns the text payload and whether the value is text.
func (v SettingValue) Text() (string, bool) { return v.text, v.Kind == SettingText }

// Structured decodes the structured payload into dst.
func (v SettingValue) Structured(dst any) error {
	if v.Kind != SettingStructured {
		return fmt.Errorf("%w: setting is %s, not structured", ErrInvalidInput, v.Kind)
	}
	return json.Unmarshal(v.structured, dst)
}

// Encode returns the stored text form of the value.
func (v SettingValue) Encode() string {
	switch v.Kind {
	case SettingNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case SettingBool:
		return strconv.FormatBool(v.boolean)
	case SettingStructured:
		return string(v.structured)
	default:
		return v.text
	}
}

// DecodeSettingValue parses a stored text form according to its kind.
func DecodeSettingValue(kind SettingKind, raw string) (SettingValue, error) {
	switch kind {
	case SettingNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return SettingValue{}, fmt.Errorf("%w: number setting %q", ErrInvalidInput, raw)
		}
		return NumberValue(f), nil
	case SettingBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return SettingValue{}, fmt.Errorf("%w: bool setting %q", ErrInvalidInput, raw)
		}
		return BoolValue(b), nil
	case SettingText:
		return TextValue(raw), nil
	case SettingStructured:
		return StructuredValue(json.RawMessage(raw))
	default:
		return SettingValue{}, fmt.Errorf("%w: unknown setting kind %q", ErrInvalidInput, kind)
	}
}

// MarshalJSON renders the value as its natural JSON form.
func (v SettingValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case SettingNumber:
		return json.Marshal(v.number)
	case SettingBool:
		return json.Marshal(v.boolean)
	case SettingStructured:
		return v.structured, nil
	default:
		return json.Marshal(v.text)
	}
}

// UnmarshalJSON infers the variant from the JSON token type.
func (v *SettingValue) UnmarshalJSON(data []byte) error {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	switch t := decoded.(type) {
	case float64:
		*v = NumberValue(t)
	case bool:
		*v = BoolValue(t)
	case string:
		*v = TextValue(t)
	default:
		sv, err := StructuredValue(t)
		if err != nil {
			return err
		}
		*v = sv
	}
	return nil
}

// Setting is a named, typed server setting.
type Setting struct {
	Key       string       `json:"key"`
	Value     SettingValue `json:"value"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Setting keys known to the core.
const (
	SettingStartingMoney    = "starting_money"
	SettingStartingBank     = "starting_bank"
	SettingPaycheckAmount   = "paycheck_amount"
	SettingPaycheckInterval = "paycheck_interval"
	SettingTaxRate          = "tax_rate"
	SettingWeatherSync      = "weather_sync"
	SettingTimeSync         = "time_sync"

	// Structured keys validated against a JSON schema
	SettingSpawnPoints   = "spawn_points"
	SettingWhitelist     = "whitelist"
	SettingPaycheckTiers = "paycheck_tiers"
)

// DefaultSettings are seeded on first start when the key is absent.
func DefaultSettings() map[string]SettingValue {
	return map[string]SettingValue{
		SettingStartingMoney:    NumberValue(1000),
		SettingStartingBank:     NumberValue(5000),
		SettingPaycheckAmount:   NumberValue(500),
		SettingPaycheckInterval: NumberValue(60),
		SettingTaxRate:          NumberValue(0.05),
		SettingWeatherSync:      BoolValue(true),
		SettingTimeSync:         BoolValue(true),
	}
}
