// Package document holds the ordered key/literal document produced by a
// serialization and renders it as JSON-shaped text.
package document

import "strings"

const indent = "    "

type entry struct {
	key     string
	literal string
}

// Document is an ordered mapping from key to rendered literal. Setting an
// existing key replaces its literal and keeps its first position.
type Document struct {
	prettify bool
	entries  []entry
	index    map[string]int
}

// New returns an empty document rendered over several lines when prettify is
// set, or on a single line otherwise.
func New(prettify bool, capacity int) *Document {
	return &Document{
		prettify: prettify,
		entries:  make([]entry, 0, capacity),
		index:    make(map[string]int, capacity),
	}
}

// Set records literal under key. It reports whether an earlier entry was
// overwritten.
func (d *Document) Set(key, literal string) (replaced bool) {
	if i, ok := d.index[key]; ok {
		d.entries[i].literal = literal
		return true
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, entry{key: key, literal: literal})
	return false
}

func (d *Document) Get(key string) (string, bool) {
	i, ok := d.index[key]
	if !ok {
		return "", false
	}
	return d.entries[i].literal, true
}

func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}
	return keys
}

func (d *Document) Len() int { return len(d.entries) }

func (d *Document) Prettify() bool { return d.prettify }

// String renders the document. Pretty output puts each entry on its own
// indented line; compact output is the same text without newlines and
// indentation.
func (d *Document) String() string {
	return d.render(d.prettify)
}

// Stripped renders the pretty form and then removes every line break and
// every run of four spaces, literals included.
func (d *Document) Stripped() string {
	return strings.ReplaceAll(strings.ReplaceAll(d.render(true), "\n", ""), indent, "")
}

func (d *Document) render(prettify bool) string {
	var b strings.Builder
	b.WriteByte('{')
	if prettify {
		b.WriteByte('\n')
	}
	for i, e := range d.entries {
		if i > 0 {
			b.WriteByte(',')
			if prettify {
				b.WriteByte('\n')
			}
		}
		if prettify {
			b.WriteString(indent)
		}
		b.WriteByte('"')
		b.WriteString(e.key)
		b.WriteString(`":`)
		b.WriteString(e.literal)
	}
	if prettify {
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.String()
}
