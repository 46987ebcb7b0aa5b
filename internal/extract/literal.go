// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package extract

import (
	"errors"
	"strings"
	"unicode"
)

// =============================================================================
// TOLERANT DICTIONARY-LITERAL PARSER
// =============================================================================
//
// The backend prints result rows with Python's repr(), so a row line looks
// like {'deal_num': 1001, 'pymt': None, 'active': True}. An earlier revision
// of this client regexp-replaced quotes and the None/True/False tokens into
// JSON before parsing, which corrupted any string value that contained one
// of those substrings or an apostrophe. This parser reads the literal
// directly instead: single- or double-quoted strings, bare numbers, the
// Python and SQL null/bool spellings, and nested containers captured
// verbatim. Values are produced in display form, with null mapped to the
// NULL sentinel used throughout the table renderer.

// errBadLiteral is the generic parse failure for a malformed literal line.
var errBadLiteral = errors.New("malformed dictionary literal")

// NullSentinel is the display value for null/missing cells.
const NullSentinel = "NULL"

// wordValues maps bare-word tokens to display values. Both the Python
// spellings (None/True/False) and the JSON/SQL ones are accepted.
var wordValues = map[string]string{
	"None":  NullSentinel,
	"NULL":  NullSentinel,
	"null":  NullSentinel,
	"True":  "true",
	"true":  "true",
	"False": "false",
	"false": "false",
}

// parseObjectLiteral parses one dictionary literal into a Row plus the key
// order in which fields appeared. The input must start with '{'; trailing
// text after the closing brace is ignored.
func parseObjectLiteral(src string) (Row, []string, error) {
	lx := &literalLexer{input: []rune(src)}

	lx.skipSpace()
	if !lx.consume('{') {
		return nil, nil, errBadLiteral
	}

	row := Row{}
	var keys []string

	lx.skipSpace()
	if lx.consume('}') {
		return row, keys, nil
	}

	for {
		key, err := lx.parseKey()
		if err != nil {
			return nil, nil, err
		}

		lx.skipSpace()
		if !lx.consume(':') {
			return nil, nil, errBadLiteral
		}

		value, err := lx.parseValue()
		if err != nil {
			return nil, nil, err
		}

		if _, exists := row[key]; !exists {
			keys = append(keys, key)
		}
		row[key] = value

		lx.skipSpace()
		if lx.consume(',') {
			lx.skipSpace()
			continue
		}
		if lx.consume('}') {
			return row, keys, nil
		}
		return nil, nil, errBadLiteral
	}
}

// =============================================================================
// LEXER
// =============================================================================

type literalLexer struct {
	input []rune
	pos   int
}

func (lx *literalLexer) eof() bool {
	return lx.pos >= len(lx.input)
}

func (lx *literalLexer) peek() rune {
	if lx.eof() {
		return 0
	}
	return lx.input[lx.pos]
}

// consume advances past r if it is next, reporting whether it did.
func (lx *literalLexer) consume(r rune) bool {
	if !lx.eof() && lx.input[lx.pos] == r {
		lx.pos++
		return true
	}
	return false
}

func (lx *literalLexer) skipSpace() {
	for !lx.eof() && unicode.IsSpace(lx.input[lx.pos]) {
		lx.pos++
	}
}

// parseKey reads a quoted or bare-word field name.
func (lx *literalLexer) parseKey() (string, error) {
	lx.skipSpace()
	if r := lx.peek(); r == '\'' || r == '"' {
		return lx.parseQuoted()
	}
	word := lx.parseWord()
	if word == "" {
		return "", errBadLiteral
	}
	return word, nil
}

// parseValue reads one value and renders it in display form.
func (lx *literalLexer) parseValue() (string, error) {
	lx.skipSpace()
	switch r := lx.peek(); {
	case r == '\'' || r == '"':
		return lx.parseQuoted()
	case r == '{' || r == '[':
		// Nested containers are rare in practice (the backend flattens
		// rows before printing) and are displayed verbatim.
		return lx.parseBalanced()
	case r == '-' || r == '+' || unicode.IsDigit(r):
		return lx.parseNumber()
	default:
		word := lx.parseWord()
		if display, ok := wordValues[word]; ok {
			return display, nil
		}
		return "", errBadLiteral
	}
}

// parseQuoted reads a single- or double-quoted string, handling backslash
// escapes. The opening quote style determines the closing quote, so an
// apostrophe inside a double-quoted value (or a None substring inside any
// string) passes through untouched.
func (lx *literalLexer) parseQuoted() (string, error) {
	quote := lx.input[lx.pos]
	lx.pos++

	var sb strings.Builder
	for !lx.eof() {
		r := lx.input[lx.pos]
		lx.pos++

		switch r {
		case quote:
			return sb.String(), nil
		case '\\':
			if lx.eof() {
				return "", errBadLiteral
			}
			esc := lx.input[lx.pos]
			lx.pos++
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return "", errBadLiteral
}

// parseNumber reads a numeric token verbatim. The text form is already the
// display form, so no numeric conversion happens here.
func (lx *literalLexer) parseNumber() (string, error) {
	start := lx.pos
	if r := lx.peek(); r == '-' || r == '+' {
		lx.pos++
	}
	for !lx.eof() {
		r := lx.input[lx.pos]
		if unicode.IsDigit(r) || r == '.' || r == 'e' || r == 'E' || r == '-' || r == '+' {
			lx.pos++
			continue
		}
		break
	}
	if lx.pos == start {
		return "", errBadLiteral
	}
	return string(lx.input[start:lx.pos]), nil
}

// parseWord reads a bare identifier token.
func (lx *literalLexer) parseWord() string {
	start := lx.pos
	for !lx.eof() {
		r := lx.input[lx.pos]
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			lx.pos++
			continue
		}
		break
	}
	return string(lx.input[start:lx.pos])
}

// parseBalanced captures a brace- or bracket-balanced region verbatim,
// respecting quoted strings so delimiters inside values do not count.
func (lx *literalLexer) parseBalanced() (string, error) {
	open := lx.input[lx.pos]
	var close rune
	if open == '{' {
		close = '}'
	} else {
		close = ']'
	}

	start := lx.pos
	depth := 0
	for !lx.eof() {
		r := lx.input[lx.pos]
		switch r {
		case open:
			depth++
			lx.pos++
		case close:
			depth--
			lx.pos++
			if depth == 0 {
				return string(lx.input[start:lx.pos]), nil
			}
		case '\'', '"':
			if _, err := lx.parseQuoted(); err != nil {
				return "", err
			}
		default:
			lx.pos++
		}
	}
	return "", errBadLiteral
}
