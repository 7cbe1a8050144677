package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type Param struct {
	Key   string
	Value any
}

// Params is a string-keyed mapping that keeps insertion order, including
// when encoded to JSON. Setting an existing key replaces the value in place.
type Params struct {
	items []Param
}

func NewParams(kv ...any) Params {
	var p Params
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		p.Set(key, kv[i+1])
	}
	return p
}

func (p *Params) Set(key string, value any) {
	for i := range p.items {
		if p.items[i].Key == key {
			p.items[i].Value = value
			return
		}
	}
	p.items = append(p.items, Param{Key: key, Value: value})
}

func (p Params) Get(key string) (any, bool) {
	for _, item := range p.items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return nil, false
}

func (p Params) String(key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.items))
	for _, item := range p.items {
		keys = append(keys, item.Key)
	}
	return keys
}

func (p Params) Len() int {
	return len(p.items)
}

// Clone returns a Params that shares no storage with p. Values are copied
// shallowly.
func (p Params) Clone() Params {
	return Params{items: slices.Clone(p.items)}
}

// Items returns a copy of the ordered entries.
func (p Params) Items() []Param {
	out := make([]Param, len(p.items))
	copy(out, p.items)
	return out
}

func (p Params) Map() map[string]any {
	m := make(map[string]any, len(p.items))
	for _, item := range p.items {
		m[item.Key] = item.Value
	}
	return m
}

func (p Params) Format() string {
	parts := make([]string, 0, len(p.items))
	for _, item := range p.items {
		parts = append(parts, fmt.Sprintf("%s=%v", item.Key, item.Value))
	}
	return strings.Join(parts, " ")
}

func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range p.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(item.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal param %q: %w", item.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *Params) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("params: expected object, got %v", tok)
	}

	p.items = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("params: expected string key, got %v", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("params: decode %q: %w", key, err)
		}
		p.Set(key, value)
	}

	_, err = dec.Token()
	return err
}
