package godbc

import (
	"fmt"
	"sort"
	"strings"
)

// PlaceholderStyle selects how a backend expects bound parameters to be
// written.
type PlaceholderStyle uint

const (
	// Question passes the canonical `?` sentinel through unchanged; the
	// backend binds parameters positionally against it.
	Question PlaceholderStyle = iota
	// DollarNumbered rewrites the nth sentinel, left to right, into `$n`.
	DollarNumbered
	// Substitution splices the canonical literal rendering of each value
	// in place of its sentinel. Used only for backends without a native
	// bind API; this path is not safe against adversarial input.
	Substitution
)

// Dialect describes the placeholder and quoting conventions of one backend
// family. Adapters export their own Dialect values.
type Dialect struct {
	Name                string
	Placeholders        PlaceholderStyle
	BacktickIdentifiers bool
}

// GenericDialect tokenizes standard SQL and keeps the canonical sentinel.
var GenericDialect = Dialect{Name: "generic", Placeholders: Question}

// RewritePositional converts the canonical `?` placeholder syntax in sql
// into the dialect's native bound-parameter form and returns the rewritten
// text along with the number of placeholders found. Sentinels inside
// string literals, quoted identifiers and comments are never rewritten;
// every other token passes through verbatim.
//
// Substitution-style dialects defer the actual splice to RewriteLiteral at
// execution time, once values are known; here they count placeholders only.
func RewritePositional(d Dialect, sql string) (string, int, error) {
	tokens, err := tokenize(sql, d)
	if err != nil {
		return "", 0, err
	}

	var out strings.Builder
	n := 0
	for _, t := range tokens {
		if t.kind == placeholderKind && d.Placeholders == DollarNumbered {
			n++
			fmt.Fprintf(&out, "$%d", n)
			continue
		}
		if t.kind == placeholderKind {
			n++
		}
		out.WriteString(t.text)
	}

	return out.String(), n, nil
}

// RewriteLiteral splices the canonical rendering of each value in place of
// its sentinel, for backends with no native parameter binding.
//
// This is textual substitution and is NOT safe against adversarial input;
// callers must not pass untrusted text through it.
func RewriteLiteral(d Dialect, sql string, params []Value) (string, error) {
	tokens, err := tokenize(sql, d)
	if err != nil {
		return "", err
	}

	if want := countPlaceholders(tokens); want != len(params) {
		return "", NewError(ErrParameterCount, "statement has %d placeholders but %d values were supplied", want, len(params))
	}

	var out strings.Builder
	next := 0
	for _, t := range tokens {
		if t.kind == placeholderKind {
			out.WriteString(params[next].String())
			next++
			continue
		}
		out.WriteString(t.text)
	}

	return out.String(), nil
}

// RewriteNamed substitutes each `:name` placeholder with the canonical
// rendering of the named value. A name referenced in sql but missing from
// params is an error, and so is a supplied value no placeholder refers to.
//
// Like RewriteLiteral this is textual substitution, documented unsafe for
// untrusted input; it exists for trusted, internally generated SQL.
func RewriteNamed(sql string, params map[string]Value) (string, error) {
	tokens, err := tokenize(sql, GenericDialect)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	used := make(map[string]bool, len(params))
	for _, t := range tokens {
		if t.kind != namedPlaceholderKind {
			out.WriteString(t.text)
			continue
		}

		v, ok := params[t.name]
		if !ok {
			return "", NewError(ErrParameterCount, "no value supplied for parameter :%s", t.name)
		}
		used[t.name] = true
		out.WriteString(v.String())
	}

	var unused []string
	for name := range params {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return "", NewError(ErrParameterCount, "supplied parameters not referenced by the statement: %s", strings.Join(unused, ", "))
	}

	return out.String(), nil
}

// CheckParamCount verifies that the number of supplied values matches the
// number of placeholders in a statement. Called by adapters before any
// native call is attempted.
func CheckParamCount(placeholders, supplied int) error {
	if placeholders != supplied {
		return NewError(ErrParameterCount, "statement has %d placeholders but %d values were supplied", placeholders, supplied)
	}
	return nil
}
