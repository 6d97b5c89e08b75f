package introspect

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	// nl is set when at least one line break precedes the token.
	nl bool
}

func (t token) is(text string) bool { return t.kind == tokPunct && t.text == text }

func (t token) isIdent(text string) bool { return t.kind == tokIdent && t.text == text }

// lexTypeScript splits src into the tokens needed to find declarations.
// Comments are dropped and string literals are reduced to their contents.
func lexTypeScript(src string) []token {
	var toks []token
	nl := false
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\n':
			nl = true
			i++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			i++
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return toks
			}
			if strings.Contains(src[i:i+2+end], "\n") {
				nl = true
			}
			i += end + 4
		case c == '"' || c == '\'' || c == '`':
			text, n := scanString(src[i:])
			toks = append(toks, token{kind: tokString, text: text, nl: nl})
			nl = false
			i += n
		case c >= '0' && c <= '9':
			j := i
			for j < len(src) && (isIdentPart(rune(src[j])) || src[j] == '.') {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: src[i:j], nl: nl})
			nl = false
			i = j
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if isIdentStart(r) {
				j := i + size
				for j < len(src) {
					r, size := utf8.DecodeRuneInString(src[j:])
					if !isIdentPart(r) {
						break
					}
					j += size
				}
				toks = append(toks, token{kind: tokIdent, text: src[i:j], nl: nl})
				nl = false
				i = j
				continue
			}
			text := src[i : i+size]
			for _, p := range []string{"=>", "..."} {
				if strings.HasPrefix(src[i:], p) {
					text = p
					break
				}
			}
			toks = append(toks, token{kind: tokPunct, text: text, nl: nl})
			nl = false
			i += len(text)
		}
	}
	return toks
}

// scanString reads a quoted literal at the start of s and returns its
// unescaped-enough contents and the number of bytes consumed.
func scanString(s string) (string, int) {
	quote := s[0]
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			b.WriteByte(s[i+1])
			i += 2
		case c == quote:
			return b.String(), i + 1
		case c == '\n' && quote != '`':
			return b.String(), i
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), i
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// ParseTypeScript extracts interface declarations and object type aliases
// from TypeScript source. Repeated interfaces with the same name are merged
// the way the compiler merges them.
func ParseTypeScript(src string) []Declaration {
	toks := lexTypeScript(src)
	var decls []Declaration
	for i := 0; i < len(toks); i++ {
		if toks[i].kind != tokIdent {
			continue
		}
		if i > 0 && toks[i-1].is(".") {
			continue
		}
		switch toks[i].text {
		case "interface":
			if d, next, ok := parseInterface(toks, i+1); ok {
				decls = mergeDeclaration(decls, d)
				i = next - 1
			}
		case "type":
			if d, next, ok := parseTypeAlias(toks, i+1); ok {
				decls = mergeDeclaration(decls, d)
				i = next - 1
			}
		}
	}
	return decls
}

// parseInterface parses `Name<...> extends ... { body }` starting at the name.
func parseInterface(toks []token, i int) (Declaration, int, bool) {
	if i >= len(toks) || toks[i].kind != tokIdent {
		return Declaration{}, i, false
	}
	name := toks[i].text
	depth := 0
	for j := i + 1; j < len(toks); j++ {
		t := toks[j]
		switch {
		case t.is("<") || t.is("(") || t.is("["):
			depth++
		case t.is(">") || t.is(")") || t.is("]"):
			depth--
		case t.is("{") && depth == 0:
			body, end := blockBody(toks, j)
			return Declaration{Name: name, Members: parseMembers(body)}, end, true
		case t.is("{"):
			_, end := blockBody(toks, j)
			j = end - 1
		case t.is(";") || t.is("}"):
			return Declaration{}, j, false
		}
	}
	return Declaration{}, len(toks), false
}

// parseTypeAlias parses `Name<...> = { body }`. Aliases of anything other than
// an object literal type are not declarations with members.
func parseTypeAlias(toks []token, i int) (Declaration, int, bool) {
	if i >= len(toks) || toks[i].kind != tokIdent {
		return Declaration{}, i, false
	}
	name := toks[i].text
	j := i + 1
	if j < len(toks) && toks[j].is("<") {
		depth := 0
		for ; j < len(toks); j++ {
			if toks[j].is("<") {
				depth++
			} else if toks[j].is(">") {
				depth--
				if depth == 0 {
					j++
					break
				}
			}
		}
	}
	if j+1 >= len(toks) || !toks[j].is("=") || !toks[j+1].is("{") {
		return Declaration{}, j, false
	}
	body, end := blockBody(toks, j+1)
	if end < len(toks) && (toks[end].is("&") || toks[end].is("|") || toks[end].is("[")) {
		return Declaration{}, end, false
	}
	return Declaration{Name: name, Members: parseMembers(body)}, end, true
}

// blockBody returns the tokens between the brace at open and its match, and
// the index just past the closing brace.
func blockBody(toks []token, open int) ([]token, int) {
	depth := 0
	for j := open; j < len(toks); j++ {
		if toks[j].is("{") {
			depth++
		} else if toks[j].is("}") {
			depth--
			if depth == 0 {
				return toks[open+1 : j], j + 1
			}
		}
	}
	return toks[open+1:], len(toks)
}

// parseMembers splits an interface body into members and keeps property
// signatures. Method, index, call and construct signatures are dropped.
func parseMembers(body []token) []Member {
	var members []Member
	for _, part := range splitMembers(body) {
		if m, ok := parseProperty(part); ok && !hasMember(members, m.Name) {
			members = append(members, m)
		}
	}
	return members
}

func splitMembers(body []token) [][]token {
	var parts [][]token
	start := 0
	depth := 0
	for j := 0; j < len(body); j++ {
		t := body[j]
		switch {
		case t.is("{") || t.is("(") || t.is("[") || t.is("<"):
			if depth == 0 && t.nl && j > start && startsMember(body, j, body[j-1]) {
				parts = append(parts, body[start:j])
				start = j
			}
			depth++
		case t.is("}") || t.is(")") || t.is("]") || t.is(">"):
			depth--
		case depth == 0 && (t.is(";") || t.is(",")):
			parts = append(parts, body[start:j])
			start = j + 1
		case depth == 0 && t.nl && j > start && startsMember(body, j, body[j-1]):
			parts = append(parts, body[start:j])
			start = j
		}
	}
	if start < len(body) {
		parts = append(parts, body[start:])
	}
	return parts
}

// startsMember reports whether a new member begins at body[j], which follows
// a line break. prev is the last token of the member in progress.
func startsMember(body []token, j int, prev token) bool {
	for _, p := range []string{":", "|", "&", "=>", "?", ".", "<", ","} {
		if prev.is(p) {
			return false
		}
	}
	if prev.isIdent("keyof") || prev.isIdent("typeof") || prev.isIdent("readonly") {
		return false
	}
	t := body[j]
	switch {
	case t.is("[") || t.is("("):
		return true
	case t.kind == tokIdent && (t.text == "readonly" || t.text == "new" || t.text == "get" || t.text == "set"):
		return true
	case t.kind == tokIdent || t.kind == tokString || t.kind == tokNumber:
		if j+1 >= len(body) {
			return true
		}
		n := body[j+1]
		return n.is(":") || n.is("?") || n.is("(") || n.is("<") || n.is(";") || n.is(",") || n.nl
	}
	return false
}

func parseProperty(part []token) (Member, bool) {
	for len(part) > 0 && part[0].kind == tokIdent && len(part) > 1 && isModifier(part[0].text) && isMemberName(part[1]) {
		part = part[1:]
	}
	if len(part) == 0 || !isMemberName(part[0]) {
		return Member{}, false
	}
	if part[0].kind == tokIdent && (part[0].text == "get" || part[0].text == "set") && len(part) > 1 && isMemberName(part[1]) {
		return Member{}, false
	}
	m := Member{Name: part[0].text}
	rest := part[1:]
	if len(rest) > 0 && rest[0].is("?") {
		m.Optional = true
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0].is(":") {
		return m, true
	}
	return Member{}, false
}

func isModifier(s string) bool {
	switch s {
	case "readonly", "public", "private", "protected", "declare":
		return true
	}
	return false
}

func isMemberName(t token) bool {
	return t.kind == tokIdent || t.kind == tokString || t.kind == tokNumber
}
