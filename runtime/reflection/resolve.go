package reflection

import (
	"encoding/json"
	"math/big"
	"strings"

	"go.uber.org/zap"
)

// ResolveParameters returns the parameters of the member at memberIndex. The
// provider is queried on every call. Unknown classes and members yield an
// empty slice.
func (r *Registry) ResolveParameters(id ClassID, memberIndex int) []Parameter {
	data, ok := r.provider.ReflectionData(id)
	if !ok || data == nil {
		return []Parameter{}
	}

	member, ok := data.Member(memberIndex)
	if !ok {
		return []Parameter{}
	}

	params := make([]Parameter, len(member.Params))
	for i, raw := range member.Params {
		params[i] = Parameter{
			Index:           raw.Index,
			Name:            raw.Name,
			HasDefault:      raw.HasDefault,
			IsObjectPattern: raw.IsObjectPattern,
			IsArrayPattern:  raw.IsArrayPattern,
			IsRestElement:   raw.IsRestElement,
		}

		if raw.Default != nil {
			v, ok := materializeDefault(raw.Default)
			if !ok {
				r.logger.Debug("leaving default unset",
					zap.String("class_id", id.String()),
					zap.Int("member_index", memberIndex),
					zap.Int("parameter", raw.Index),
					zap.String("literal_kind", string(raw.Default.Kind)),
				)
			}
			params[i].Default, params[i].DefaultSet = v, ok
		}
	}
	return params
}

// ResolveDocblock returns the doc comment of the member at memberIndex,
// including its delimiters. It reports false when the provider, the member or
// the comment is missing.
func (r *Registry) ResolveDocblock(id ClassID, memberIndex int) (string, bool) {
	data, ok := r.provider.ReflectionData(id)
	if !ok || data == nil {
		return "", false
	}

	member, ok := data.Member(memberIndex)
	if !ok || member.Docblock == "" {
		return "", false
	}
	return member.Docblock, true
}

func (r *Registry) resolveClassDocblock(id ClassID) (string, bool) {
	data, ok := r.provider.ReflectionData(id)
	if !ok || data == nil || data.Docblock == "" {
		return "", false
	}
	return data.Docblock, true
}

// materializeDefault rebuilds a literal default value. Numbers are float64.
// Unknown kinds and malformed values report false.
func materializeDefault(d *LiteralDefault) (any, bool) {
	switch d.Kind {
	case LiteralString:
		s, ok := d.Value.(string)
		return s, ok

	case LiteralBoolean:
		b, ok := d.Value.(bool)
		return b, ok

	case LiteralNumber:
		return toFloat(d.Value)

	case LiteralNull:
		return nil, true

	case LiteralBigInt:
		var text string
		switch v := d.Value.(type) {
		case string:
			text = v
		case json.Number:
			text = v.String()
		default:
			return nil, false
		}

		n, ok := new(big.Int).SetString(strings.TrimSuffix(text, "n"), 0)
		if !ok {
			return nil, false
		}
		return n, true

	case LiteralRegExp:
		return Pattern{Source: d.Pattern, Flags: d.Flags}, true

	default:
		return nil, false
	}
}

func toFloat(v any) (any, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}
