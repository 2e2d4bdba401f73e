package sortjson

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FormatOptions controls the indentation style used by Format.
type FormatOptions struct {
	// Indent is the number of spaces per nesting level. Values below 1
	// fall back to the default of 2.
	Indent int
	// Tabs switches to one tab per nesting level; Indent is then ignored.
	Tabs bool
}

// Format renders v as pretty-printed JSON text with exactly one trailing
// newline, for every document shape including empty containers and bare
// scalars. Object members are emitted in the order they appear in v; Format
// never sorts — ordering is entirely the sorter's responsibility, which is
// what lets check mode compare an unsorted and a sorted rendering byte for
// byte.
func Format(v Value, opts FormatOptions) string {
	unit := "  "
	if opts.Tabs {
		unit = "\t"
	} else if opts.Indent >= 1 {
		unit = strings.Repeat(" ", opts.Indent)
	}

	var out strings.Builder
	writeValue(&out, v, unit, "")
	out.WriteByte('\n')
	return out.String()
}

func writeValue(out *strings.Builder, v Value, unit, prefix string) {
	switch t := v.(type) {
	case Null:
		out.WriteString("null")
	case Bool:
		if t {
			out.WriteString("true")
		} else {
			out.WriteString("false")
		}
	case Number:
		out.WriteString(string(t))
	case String:
		out.WriteString(encodeString(string(t)))
	case Array:
		if len(t) == 0 {
			out.WriteString("[]")
			return
		}
		inner := prefix + unit
		out.WriteString("[\n")
		for i, e := range t {
			out.WriteString(inner)
			writeValue(out, e, unit, inner)
			if i < len(t)-1 {
				out.WriteByte(',')
			}
			out.WriteByte('\n')
		}
		out.WriteString(prefix)
		out.WriteByte(']')
	case Object:
		if len(t) == 0 {
			out.WriteString("{}")
			return
		}
		inner := prefix + unit
		out.WriteString("{\n")
		for i, m := range t {
			out.WriteString(inner)
			out.WriteString(encodeString(m.Key))
			out.WriteString(": ")
			writeValue(out, m.Value, unit, inner)
			if i < len(t)-1 {
				out.WriteByte(',')
			}
			out.WriteByte('\n')
		}
		out.WriteString(prefix)
		out.WriteByte('}')
	}
}

// encodeString renders s as a JSON string literal. A json.Encoder is used
// instead of json.Marshal so that <, > and & stay literal instead of being
// HTML-escaped.
func encodeString(s string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		// Encoding a plain string never fails.
		return `"` + s + `"`
	}
	// Encode appends a newline after the literal.
	return strings.TrimSuffix(buf.String(), "\n")
}
