package envfile

import (
	"strings"
)

// Pair is a key/value to upsert into a document.
type Pair struct {
	Key   string
	Value string
}

// Line is a single line of a document.
type Line struct {
	// Raw is the line text without its newline.
	Raw string

	// Key is set for entry lines only.
	Key string
}

// IsEntry reports whether the line is a key=value entry.
func (l Line) IsEntry() bool {
	return l.Key != ""
}

// Value returns the text after the first "=" of an entry line.
func (l Line) Value() string {
	if !l.IsEntry() {
		return ""
	}
	return l.Raw[len(l.Key)+1:]
}

// Document is an ordered dotenv document.
type Document struct {
	Lines []Line

	// trailingNewline records whether the source ended with a line break.
	trailingNewline bool

	// eol is the source's line break, "\r\n" for CRLF documents.
	eol string
}

// Parse splits text into a Document. An empty text yields zero lines. A
// text containing "\r\n" is treated as a CRLF document and rendered back
// with CRLF line breaks.
func Parse(text string) *Document {
	doc := &Document{eol: "\n"}
	if text == "" {
		doc.trailingNewline = true
		return doc
	}
	if strings.Contains(text, "\r\n") {
		doc.eol = "\r\n"
	}

	if strings.HasSuffix(text, "\n") {
		doc.trailingNewline = true
		text = strings.TrimSuffix(text, "\n")
	}

	for _, raw := range strings.Split(text, "\n") {
		if doc.eol == "\r\n" {
			raw = strings.TrimSuffix(raw, "\r")
		}
		doc.Lines = append(doc.Lines, parseLine(raw))
	}
	return doc
}

func parseLine(raw string) Line {
	if strings.HasPrefix(strings.TrimSpace(raw), "#") {
		return Line{Raw: raw}
	}
	idx := strings.IndexByte(raw, '=')
	if idx <= 0 {
		return Line{Raw: raw}
	}
	return Line{Raw: raw, Key: raw[:idx]}
}

// Get returns the raw value of the first entry with key.
func (d *Document) Get(key string) (string, bool) {
	for _, l := range d.Lines {
		if l.Key == key {
			return l.Value(), true
		}
	}
	return "", false
}

// Keys returns entry keys in document order, including duplicates.
func (d *Document) Keys() []string {
	var keys []string
	for _, l := range d.Lines {
		if l.IsEntry() {
			keys = append(keys, l.Key)
		}
	}
	return keys
}

// Set upserts a single pair. The first entry with the key is rewritten in
// place and any later entries with the same key are removed; if none exists
// the entry is appended.
func (d *Document) Set(key, value string) {
	entry := Line{Raw: key + "=" + value, Key: key}

	found := false
	kept := d.Lines[:0]
	for _, l := range d.Lines {
		if l.Key != key {
			kept = append(kept, l)
			continue
		}
		if found {
			continue
		}
		kept = append(kept, entry)
		found = true
	}
	d.Lines = kept

	if !found {
		d.Lines = append(d.Lines, entry)
	}
}

// Apply upserts pairs in order.
func (d *Document) Apply(pairs []Pair) {
	for _, p := range pairs {
		d.Set(p.Key, p.Value)
	}
}

// String renders the document.
func (d *Document) String() string {
	raws := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		raws[i] = l.Raw
	}
	eol := d.eol
	if eol == "" {
		eol = "\n"
	}
	out := strings.Join(raws, eol)
	if d.trailingNewline && len(raws) > 0 {
		out += eol
	}
	return out
}

// Merge upserts pairs into text and returns the new document text.
func Merge(text string, pairs []Pair) string {
	doc := Parse(text)
	doc.Apply(pairs)
	return doc.String()
}

// Quote returns value in a form safe to write after "=". Values containing
// whitespace, quotes or "#" are double-quoted with backslash escapes.
func Quote(value string) string {
	if !strings.ContainsAny(value, " \t\"'#\\") {
		return value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	return `"` + escaped + `"`
}
