package vlist

import (
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Query is a parsed fzf-style search query. Matching and scoring are done
// by junegunn/fzf's algo package.
//
//	foo      fuzzy subsequence
//	'foo     exact substring
//	^foo     prefix
//	foo$     suffix
//	!term    negation of any of the above
//	a b      all terms must match
//	a | b    either group may match
//
// A term containing an upper-case letter matches case-sensitively.
type Query struct {
	groups [][]queryTerm
}

type termKind uint8

const (
	termFuzzy termKind = iota
	termExact
	termPrefix
	termSuffix
)

type queryTerm struct {
	pattern       []rune
	kind          termKind
	negated       bool
	caseSensitive bool
}

func init() {
	algo.Init("default")
}

// matching runs on the caller's goroutine only; one slab is enough.
var querySlab = util.MakeSlab(100*1024, 2048)

// ParseQuery parses raw into a reusable Query.
func ParseQuery(raw string) Query {
	var q Query
	for _, part := range strings.Split(strings.TrimSpace(raw), " | ") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		group := make([]queryTerm, 0, len(fields))
		for _, f := range fields {
			group = append(group, parseTerm(f))
		}
		q.groups = append(q.groups, group)
	}
	return q
}

func parseTerm(tok string) queryTerm {
	var t queryTerm
	if len(tok) > 1 && tok[0] == '!' {
		t.negated = true
		tok = tok[1:]
	}
	switch {
	case len(tok) > 1 && tok[0] == '\'':
		t.kind, tok = termExact, tok[1:]
	case len(tok) > 1 && tok[0] == '^':
		t.kind, tok = termPrefix, tok[1:]
	case len(tok) > 1 && tok[len(tok)-1] == '$':
		t.kind, tok = termSuffix, tok[:len(tok)-1]
	}
	t.caseSensitive = strings.IndexFunc(tok, unicode.IsUpper) >= 0
	if !t.caseSensitive {
		tok = strings.ToLower(tok)
	}
	t.pattern = []rune(tok)
	return t
}

// Empty reports whether the query has no terms. An empty query matches
// everything.
func (q Query) Empty() bool { return len(q.groups) == 0 }

// Score matches candidate against the query and returns the best group
// score. Higher is better.
func (q Query) Score(candidate string) (int, bool) {
	if q.Empty() {
		return 0, true
	}
	chars := util.ToChars([]byte(candidate))
	best, matched := 0, false
	for _, group := range q.groups {
		score, ok := scoreGroup(group, &chars)
		if ok && (!matched || score > best) {
			best, matched = score, true
		}
	}
	return best, matched
}

func scoreGroup(group []queryTerm, chars *util.Chars) (int, bool) {
	total := 0
	for i := range group {
		score, ok := group[i].score(chars)
		if !ok {
			return 0, false
		}
		total += score
	}
	return total, true
}

func (t *queryTerm) score(chars *util.Chars) (int, bool) {
	match := algo.FuzzyMatchV2
	switch t.kind {
	case termExact:
		match = algo.ExactMatchNaive
	case termPrefix:
		match = algo.PrefixMatch
	case termSuffix:
		match = algo.SuffixMatch
	}
	res, _ := match(t.caseSensitive, false, true, chars, t.pattern, false, querySlab)
	found := res.Start >= 0
	if t.negated {
		return 0, !found
	}
	if !found {
		return 0, false
	}
	return res.Score, true
}
