// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frontmatter

import (
	"errors"
	"strconv"
	"strings"
)

// inlineKind tags an inlineValue.
type inlineKind int

const (
	inlineString inlineKind = iota
	inlineNumber
	inlineBool
	inlineNull
)

// inlineValue is one element of an inline array before it is flattened to
// a hint string. text holds the string contents or the raw number.
type inlineValue struct {
	kind inlineKind
	text string
	flag bool
}

// String returns the hint text of v: strings and numbers trimmed, booleans
// as "true"/"false", null as "".
func (v inlineValue) String() string {
	switch v.kind {
	case inlineString, inlineNumber:
		return strings.TrimSpace(v.text)
	case inlineBool:
		return strconv.FormatBool(v.flag)
	}
	return ""
}

// compact flattens values to hints, dropping nulls and empty strings.
func compact(values []inlineValue) []string {
	var hints []string
	for _, v := range values {
		if s := v.String(); s != "" {
			hints = append(hints, s)
		}
	}
	return hints
}

// parseInlineArray parses "[a, 'b', 3]". ok is false when text is not a
// bracketed list or any element is malformed; the whole list is then
// discarded.
func parseInlineArray(text string) (values []inlineValue, ok bool) {
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, false
	}
	items, ok := splitInlineItems(text[1 : len(text)-1])
	if !ok {
		return nil, false
	}

	values = make([]inlineValue, 0, len(items))
	for _, item := range items {
		v, ok := parseInlineValue(item)
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// splitInlineItems splits input on commas that are outside quotes. Inside
// a quoted run a backslash escapes the next character. Items are returned
// trimmed; an empty item, an unterminated quote or a trailing escape makes
// the input invalid. Blank input is an empty list.
func splitInlineItems(input string) ([]string, bool) {
	if strings.TrimSpace(input) == "" {
		return nil, true
	}

	var (
		items   []string
		current strings.Builder
		quote   rune
		escaped bool
	)

	for _, ch := range input {
		if quote != 0 {
			current.WriteRune(ch)
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == quote:
				quote = 0
			}
			continue
		}

		switch ch {
		case '\'', '"':
			quote = ch
			current.WriteRune(ch)
		case ',':
			items = append(items, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	if quote != 0 || escaped {
		return nil, false
	}
	items = append(items, strings.TrimSpace(current.String()))

	for _, item := range items {
		if item == "" {
			return nil, false
		}
	}
	return items, true
}

// parseInlineValue classifies a single trimmed array element.
func parseInlineValue(item string) (inlineValue, bool) {
	switch item {
	case "null":
		return inlineValue{kind: inlineNull}, true
	case "true":
		return inlineValue{kind: inlineBool, flag: true}, true
	case "false":
		return inlineValue{kind: inlineBool, flag: false}, true
	}

	if isQuoted(item, '"') || isQuoted(item, '\'') {
		text := ""
		if len(item) >= 2 {
			text = item[1 : len(item)-1]
		}
		return inlineValue{kind: inlineString, text: text}, true
	}

	if isNumber(item) {
		return inlineValue{kind: inlineNumber, text: item}, true
	}
	return inlineValue{}, false
}

func isQuoted(s string, q byte) bool {
	return len(s) > 0 && s[0] == q && s[len(s)-1] == q
}

// isNumber reports whether s is a decimal floating-point literal such as
// "42", "-1.5e3", ".5", "inf", "NaN" or "-nan". Magnitudes that overflow are
// still numbers. Hex literals and digit separators are not accepted.
func isNumber(s string) bool {
	if strings.ContainsAny(s, "_xXpP") {
		return false
	}
	// ParseFloat rejects a sign in front of NaN.
	if strings.EqualFold(strings.TrimLeft(s, "+-"), "nan") && len(s) <= 4 {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}
