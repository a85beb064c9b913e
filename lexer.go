package godbc

import "strings"

// location of a token in the source SQL text
type location struct {
	line uint
	col  uint
}

type tokenKind uint

const (
	fragmentKind tokenKind = iota
	stringKind
	quotedIdentifierKind
	lineCommentKind
	blockCommentKind
	placeholderKind
	namedPlaceholderKind
)

// token is one lexical unit of SQL text. text holds the raw source slice,
// so concatenating the texts of a token stream reproduces the input
// byte-for-byte.
type token struct {
	text string
	kind tokenKind
	loc  location
	name string // named placeholder only, without the leading colon
}

// cursor indicates the current position of the lexer
type cursor struct {
	pointer uint
	loc     location
}

func (c *cursor) advance(b byte) {
	c.pointer++
	if b == '\n' {
		c.loc.line++
		c.loc.col = 0
	} else {
		c.loc.col++
	}
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// lexDelimited scans a token enclosed by the given delimiter. The
// delimiter is escaped by doubling it, not with a backslash. The returned
// token keeps the raw text including delimiters and escapes.
func lexDelimited(source string, ic cursor, delimiter byte, kind tokenKind, what string) (*token, cursor, error) {
	cur := ic
	cur.advance(delimiter)

	for cur.pointer < uint(len(source)) {
		c := source[cur.pointer]
		cur.advance(c)

		if c == delimiter {
			if cur.pointer < uint(len(source)) && source[cur.pointer] == delimiter {
				cur.advance(delimiter)
				continue
			}
			return &token{
				text: source[ic.pointer:cur.pointer],
				kind: kind,
				loc:  ic.loc,
			}, cur, nil
		}
	}

	return nil, ic, NewError(ErrTokenize, "unterminated %s at %d:%d", what, ic.loc.line, ic.loc.col)
}

func lexLineComment(source string, ic cursor) (*token, cursor) {
	if !strings.HasPrefix(source[ic.pointer:], "--") {
		return nil, ic
	}

	cur := ic
	for cur.pointer < uint(len(source)) && source[cur.pointer] != '\n' {
		cur.advance(source[cur.pointer])
	}

	// The trailing newline, if any, belongs to the next fragment.
	return &token{
		text: source[ic.pointer:cur.pointer],
		kind: lineCommentKind,
		loc:  ic.loc,
	}, cur
}

func lexBlockComment(source string, ic cursor) (*token, cursor, error) {
	if !strings.HasPrefix(source[ic.pointer:], "/*") {
		return nil, ic, nil
	}

	cur := ic
	cur.advance('/')
	cur.advance('*')

	for cur.pointer < uint(len(source)) {
		if strings.HasPrefix(source[cur.pointer:], "*/") {
			cur.advance('*')
			cur.advance('/')
			return &token{
				text: source[ic.pointer:cur.pointer],
				kind: blockCommentKind,
				loc:  ic.loc,
			}, cur, nil
		}
		cur.advance(source[cur.pointer])
	}

	return nil, ic, NewError(ErrTokenize, "unterminated block comment at %d:%d", ic.loc.line, ic.loc.col)
}

func lexPlaceholder(source string, ic cursor) (*token, cursor) {
	cur := ic
	cur.advance('?')
	return &token{
		text: source[ic.pointer:cur.pointer],
		kind: placeholderKind,
		loc:  ic.loc,
	}, cur
}

// lexNamedPlaceholder scans a `:name` token. A colon not followed by an
// identifier start, including the `::` cast syntax, is not a placeholder.
func lexNamedPlaceholder(source string, ic cursor) (*token, cursor) {
	if ic.pointer > 0 && source[ic.pointer-1] == ':' {
		return nil, ic
	}
	if ic.pointer+1 >= uint(len(source)) || !isIdentStart(source[ic.pointer+1]) {
		return nil, ic
	}

	cur := ic
	cur.advance(':')
	for cur.pointer < uint(len(source)) && isIdentChar(source[cur.pointer]) {
		cur.advance(source[cur.pointer])
	}

	return &token{
		text: source[ic.pointer:cur.pointer],
		kind: namedPlaceholderKind,
		loc:  ic.loc,
		name: source[ic.pointer+1 : cur.pointer],
	}, cur
}

// startsSpecial reports whether a non-fragment token begins at the cursor.
func startsSpecial(source string, cur cursor, d Dialect) bool {
	c := source[cur.pointer]
	rest := source[cur.pointer:]
	switch c {
	case '\'', '"', '?':
		return true
	case '`':
		return d.BacktickIdentifiers
	case '-':
		return strings.HasPrefix(rest, "--")
	case '/':
		return strings.HasPrefix(rest, "/*")
	case ':':
		if cur.pointer > 0 && source[cur.pointer-1] == ':' {
			return false
		}
		return len(rest) > 1 && isIdentStart(rest[1])
	}
	return false
}

// lexFragment accumulates a maximal run of ordinary SQL text, whitespace
// included, up to the start of the next special token. It always consumes
// at least one byte.
func lexFragment(source string, ic cursor, d Dialect) (*token, cursor) {
	cur := ic
	for cur.pointer < uint(len(source)) {
		if cur.pointer > ic.pointer && startsSpecial(source, cur, d) {
			break
		}
		cur.advance(source[cur.pointer])
	}

	return &token{
		text: source[ic.pointer:cur.pointer],
		kind: fragmentKind,
		loc:  ic.loc,
	}, cur
}

// tokenize splits SQL text into a token stream. String literals, quoted
// identifiers and comments come out as atomic tokens, so later passes
// never see placeholder-like characters inside them. Malformed input, such
// as an unterminated literal or comment, is an ErrTokenize error.
func tokenize(source string, d Dialect) ([]token, error) {
	var tokens []token
	cur := cursor{}

	for cur.pointer < uint(len(source)) {
		var tok *token
		var next cursor
		var err error

		switch c := source[cur.pointer]; {
		case c == '\'':
			tok, next, err = lexDelimited(source, cur, '\'', stringKind, "string literal")
		case c == '"':
			tok, next, err = lexDelimited(source, cur, '"', quotedIdentifierKind, "quoted identifier")
		case c == '`' && d.BacktickIdentifiers:
			tok, next, err = lexDelimited(source, cur, '`', quotedIdentifierKind, "quoted identifier")
		case c == '-':
			tok, next = lexLineComment(source, cur)
		case c == '/':
			tok, next, err = lexBlockComment(source, cur)
		case c == '?':
			tok, next = lexPlaceholder(source, cur)
		case c == ':':
			tok, next = lexNamedPlaceholder(source, cur)
		}
		if err != nil {
			return nil, err
		}
		if tok == nil {
			tok, next = lexFragment(source, cur, d)
		}

		tokens = append(tokens, *tok)
		cur = next
	}

	return tokens, nil
}

func countPlaceholders(tokens []token) int {
	n := 0
	for _, t := range tokens {
		if t.kind == placeholderKind {
			n++
		}
	}
	return n
}
