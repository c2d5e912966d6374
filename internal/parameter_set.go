package internal

import (
	"net/url"
	"strings"
)

// ParameterSet is an ordered set of outbound request fields. Empty values are
// never stored, so the set is always ready to be signed.
type ParameterSet struct {
	keys   []string
	values map[string]string
}

func NewParameterSet() *ParameterSet {
	return &ParameterSet{
		values: make(map[string]string),
	}
}

// Set stores value under key; an empty value is ignored. Setting an existing
// key keeps its original position.
func (p *ParameterSet) Set(key, value string) {
	if value == "" {
		return
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *ParameterSet) Get(key string) string {
	return p.values[key]
}

func (p *ParameterSet) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

func (p *ParameterSet) Len() int {
	return len(p.keys)
}

// Keys returns keys in insertion order.
func (p *ParameterSet) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

// Without returns a copy of the set with key removed.
func (p *ParameterSet) Without(key string) *ParameterSet {
	out := NewParameterSet()
	for _, k := range p.keys {
		if k != key {
			out.Set(k, p.values[k])
		}
	}
	return out
}

func (p *ParameterSet) Map() map[string]string {
	m := make(map[string]string, len(p.keys))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

func (p *ParameterSet) Values() url.Values {
	v := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		v.Set(k, p.values[k])
	}
	return v
}

// Encode renders the set as a query string in insertion order.
func (p *ParameterSet) Encode() string {
	var sb strings.Builder
	for i, k := range p.keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.values[k]))
	}
	return sb.String()
}
