package utils

import (
	"net/url"
	"strings"
)

func hexVal(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// tolerantUnescape percent-decodes a band math value. Expressions may
// legally contain '%' and '+' where a strict decoder errors out or
// substitutes a space, so invalid escapes pass through unchanged.
func tolerantUnescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := hexVal(s[i+1])
			lo, okLo := hexVal(s[i+2])
			if okHi && okLo {
				b.WriteByte(hi<<4 | lo)
				i += 3
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// splitQueryField cuts the next field off a raw query string, treating
// backslash-escaped '&' as part of the field.
func splitQueryField(query string) (string, string) {
	for i := 0; i < len(query); i++ {
		if query[i] == '&' && (i == 0 || query[i-1] != '\\') {
			return query[:i], query[i+1:]
		}
	}
	return query, ""
}

// ParseQuery is a variant of url.ParseQuery for requests carrying band
// math: escaped '&' survives inside values and the rangesubset value
// goes through the tolerant decoder. Keys are lowercased. The first
// decoding error is reported; later fields are still parsed.
func ParseQuery(query string) (url.Values, error) {
	m := make(url.Values)
	var firstErr error

	for len(query) > 0 {
		var field string
		field, query = splitQueryField(query)
		if len(field) == 0 {
			continue
		}

		rawKey, value := field, ""
		if i := strings.Index(field, "="); i >= 0 {
			rawKey, value = field[:i], field[i+1:]
			value = strings.ReplaceAll(value, `\&`, "&")
		}

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		key = strings.ToLower(key)

		if key == "rangesubset" {
			value = tolerantUnescape(value)
		} else {
			value, err = url.QueryUnescape(value)
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
		}

		m[key] = append(m[key], value)
	}

	return m, firstErr
}
