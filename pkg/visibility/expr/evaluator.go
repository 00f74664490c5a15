package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formdialog/pkg/visibility"
)

// Evaluator is a small, dependency-free rule evaluator for field visibility
// and enablement.
//
// Supported forms:
//   - truthiness: `Token`, `!Token`
//   - comparisons: `Environment == "Production"`, `Port != 22`
//   - list membership: `Regions has "EU"`
//   - mode tags: `modes.locked`
//   - caller facts: `extras.beta == true`
//   - composition: `a && (b || !c)`
//
// Identifiers are field labels. Labels containing spaces or operator
// characters are written between backticks, as in `Log level` == "debug".
type Evaluator struct{}

func New() *Evaluator { return &Evaluator{} }

func (e *Evaluator) Eval(label, rule string, ctx visibility.Context) (bool, error) {
	_ = label
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return false, err
	}
	if len(tokens) == 0 {
		return true, nil
	}

	node, err := parseExpression(tokens)
	if err != nil {
		return false, err
	}
	return node.eval(ctx)
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenHas
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDelimiter(c byte) bool {
	return isSpace(c) || c == '(' || c == ')' || c == '!' || c == '=' || c == '&' || c == '|'
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	peek := func(offset int) byte {
		if i+offset >= len(input) {
			return 0
		}
		return input[i+offset]
	}

	for i < len(input) {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		switch ch {
		case '(':
			i++
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
		case ')':
			i++
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
		case '!':
			if peek(1) == '=' {
				i += 2
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				continue
			}
			i++
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
		case '=':
			if peek(1) != '=' {
				return nil, errors.New("visibility/expr: unexpected '='; use '=='")
			}
			i += 2
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
		case '&':
			if peek(1) != '&' {
				return nil, errors.New("visibility/expr: unexpected '&'; use '&&'")
			}
			i += 2
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
		case '|':
			if peek(1) != '|' {
				return nil, errors.New("visibility/expr: unexpected '|'; use '||'")
			}
			i += 2
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
		case '`':
			end := strings.IndexByte(input[i+1:], '`')
			if end < 0 {
				return nil, errors.New("visibility/expr: unterminated quoted identifier")
			}
			tokens = append(tokens, token{kind: tokenIdentifier, raw: input[i+1 : i+1+end]})
			i += end + 2
		case '"', '\'':
			value, n, err := readString(input[i:])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
			i += n
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			tokens = append(tokens, classifyWord(input[start:i]))
		}
	}

	return tokens, nil
}

// readString consumes a quoted literal at the start of input and returns its
// unquoted value and the number of bytes consumed.
func readString(input string) (string, int, error) {
	quote := input[0]
	escaped := false
	for j := 1; j < len(input); j++ {
		c := input[j]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c != quote {
			continue
		}
		body := input[1:j]
		if quote == '\'' {
			body = strings.ReplaceAll(body, `\'`, `'`)
			body = strings.ReplaceAll(body, `"`, `\"`)
		}
		value, err := strconv.Unquote(`"` + body + `"`)
		if err != nil {
			return "", 0, fmt.Errorf("visibility/expr: invalid string literal: %w", err)
		}
		return value, j + 1, nil
	}
	return "", 0, errors.New("visibility/expr: unterminated string literal")
}

func classifyWord(raw string) token {
	switch strings.ToLower(raw) {
	case "true", "false":
		return token{kind: tokenBool, raw: strings.ToLower(raw)}
	case "null", "nil":
		return token{kind: tokenNull, raw: "null"}
	case "has":
		return token{kind: tokenHas, raw: "has"}
	}
	if looksLikeNumber(raw) {
		return token{kind: tokenNumber, raw: raw}
	}
	return token{kind: tokenIdentifier, raw: raw}
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}

type exprNode interface {
	eval(ctx visibility.Context) (bool, error)
}

type exprOr struct {
	left  exprNode
	right exprNode
}

func (n exprOr) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(ctx)
}

type exprAnd struct {
	left  exprNode
	right exprNode
}

func (n exprAnd) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.left.eval(ctx)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(ctx)
}

type exprNot struct {
	inner exprNode
}

func (n exprNot) eval(ctx visibility.Context) (bool, error) {
	ok, err := n.inner.eval(ctx)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind literalKind
	raw  string
}

type exprCompare struct {
	identifier string
	negate     bool
	literal    literal
}

func (n exprCompare) eval(ctx visibility.Context) (bool, error) {
	value, _ := lookup(ctx, n.identifier)

	var equal bool
	switch n.literal.kind {
	case litNull:
		equal = value == nil || isEmptyList(value)
	case litBool:
		got, _ := coerceBool(value)
		equal = got == (n.literal.raw == "true")
	case litNumber:
		want, err := strconv.ParseFloat(n.literal.raw, 64)
		if err != nil {
			return false, fmt.Errorf("visibility/expr: invalid number literal %q", n.literal.raw)
		}
		got, ok := coerceNumber(value)
		equal = ok && got == want
	case litString:
		equal = coerceString(value) == n.literal.raw
	default:
		return false, errors.New("visibility/expr: unsupported literal")
	}

	if n.negate {
		return !equal, nil
	}
	return equal, nil
}

type exprHas struct {
	identifier string
	literal    literal
}

func (n exprHas) eval(ctx visibility.Context) (bool, error) {
	value, ok := lookup(ctx, n.identifier)
	if !ok {
		return false, nil
	}
	for _, item := range listItems(value) {
		if coerceString(item) == n.literal.raw {
			return true, nil
		}
	}
	return false, nil
}

type exprTruthy struct {
	identifier string
}

func (n exprTruthy) eval(ctx visibility.Context) (bool, error) {
	value, ok := lookup(ctx, n.identifier)
	if !ok {
		return false, nil
	}
	return truthy(value), nil
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (exprNode, error) {
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("visibility/expr: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, nil
}

func parseOr(stream *tokenStream) (exprNode, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (exprNode, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("visibility/expr: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("visibility/expr: empty expression")
		}
		return nil, fmt.Errorf("visibility/expr: expected identifier, got %q", stream.tokens[stream.pos].raw)
	}

	switch {
	case stream.match(tokenEq):
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		return exprCompare{identifier: ident.raw, literal: lit}, nil
	case stream.match(tokenNeq):
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		return exprCompare{identifier: ident.raw, negate: true, literal: lit}, nil
	case stream.match(tokenHas):
		lit, err := stream.consumeLiteral()
		if err != nil {
			return nil, err
		}
		return exprHas{identifier: ident.raw, literal: lit}, nil
	}

	return exprTruthy{identifier: ident.raw}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) consumeLiteral() (literal, error) {
	if s.pos >= len(s.tokens) {
		return literal{}, errors.New("visibility/expr: missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString:
		return literal{kind: litString, raw: tok.raw}, nil
	case tokenNumber:
		return literal{kind: litNumber, raw: tok.raw}, nil
	case tokenBool:
		return literal{kind: litBool, raw: tok.raw}, nil
	case tokenNull:
		return literal{kind: litNull, raw: "null"}, nil
	case tokenIdentifier:
		// Bare words compare as strings so `Mode == Advanced` reads naturally.
		return literal{kind: litString, raw: tok.raw}, nil
	default:
		return literal{}, fmt.Errorf("visibility/expr: expected literal, got %q", tok.raw)
	}
}

func lookup(ctx visibility.Context, key string) (any, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}

	if v, ok := ctx.Values[key]; ok {
		return v, true
	}

	lower := strings.ToLower(key)
	switch {
	case strings.HasPrefix(lower, "modes."):
		return ctx.Modes[strings.TrimSpace(key[len("modes."):])], true
	case strings.HasPrefix(lower, "extras."):
		v, ok := ctx.Extras[strings.TrimSpace(key[len("extras."):])]
		return v, ok
	}
	return nil, false
}

func listItems(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case nil:
		return nil
	default:
		return []any{v}
	}
}

func isEmptyList(value any) bool {
	switch v := value.(type) {
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func truthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case []string:
		return len(v) > 0
	default:
		return true
	}
}

func coerceBool(value any) (bool, bool) {
	if value == nil {
		return false, false
	}
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ",")
	default:
		return fmt.Sprint(value)
	}
}
