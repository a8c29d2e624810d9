package usfm

import "strings"

// Attribute is one key/value pair from a marker's attribute list.
type Attribute struct {
	Key   string
	Value string
}

// Attributes is a marker's attribute list. Keys are unique; setting an
// existing key replaces its value.
type Attributes []Attribute

// Get returns the value for key.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// Set stores value under key.
func (a *Attributes) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attribute{Key: key, Value: value})
}

// Len returns the number of attributes.
func (a Attributes) Len() int {
	return len(a)
}

// unescapeValue resolves \" inside a quoted attribute value.
func unescapeValue(s string) string {
	if !strings.Contains(s, `\"`) {
		return s
	}
	return strings.ReplaceAll(s, `\"`, `"`)
}

// attributes parses an optional attribute list for tag:
//
//	| key="value" key2=bare default-value
//
// A bare value is stored under the tag's default key, if it has one.
func (p *Parser) attributes(tag Tag) (Attributes, error) {
	if p.tz.Peek().Kind != KindAttributeStart {
		return nil, nil
	}
	p.tz.Next()

	var attrs Attributes
	for {
		key := p.tz.Peek()
		if key.Kind != KindID {
			return attrs, nil
		}
		p.tz.Next()

		if p.tz.Peek().Kind != KindKVSep {
			if spec, ok := attributeSpecs[tag.Name]; ok && spec.defaultKey != "" {
				attrs.Set(spec.defaultKey, unescapeValue(p.tz.View(key)))
			}
			continue
		}
		p.tz.Next()

		value, err := p.expect(KindID, ExpectedAttributeValue)
		if err != nil {
			return attrs, err
		}
		attrs.Set(p.tz.View(key), unescapeValue(p.tz.View(value)))
	}
}
