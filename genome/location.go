package genome

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseLocation converts an INSDC location string into spans.
// Coordinates become 0-based and half-open. Parts referring to other
// records (ACC:1..10) are dropped.
func ParseLocation(s string) ([]Span, error) {
	p := &locParser{s: strings.Join(strings.Fields(s), "")}
	if p.s == "" {
		return nil, fmt.Errorf("empty location")
	}
	parts, err := p.location()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("unexpected %q in location %q", p.s[p.pos:], p.s)
	}
	return parts, nil
}

type locParser struct {
	s   string
	pos int
}

func (p *locParser) consume(prefix string) bool {
	if strings.HasPrefix(p.s[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *locParser) expect(c byte) error {
	if p.pos >= len(p.s) || p.s[p.pos] != c {
		return fmt.Errorf("expected %q at offset %d in location %q", c, p.pos, p.s)
	}
	p.pos++
	return nil
}

func (p *locParser) location() ([]Span, error) {
	switch {
	case p.consume("complement("):
		parts, err := p.location()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return complement(parts), nil
	case p.consume("join("), p.consume("order("):
		var parts []Span
		for {
			sub, err := p.location()
			if err != nil {
				return nil, err
			}
			parts = append(parts, sub...)
			if p.consume(",") {
				continue
			}
			if err := p.expect(')'); err != nil {
				return nil, err
			}
			return parts, nil
		}
	}
	return p.span()
}

// span parses 1..10, <1..>10, 5, 5^6 and 1.10.
func (p *locParser) span() ([]Span, error) {
	remote := false
	start := p.pos
	for p.pos < len(p.s) && !strings.ContainsRune(",()", rune(p.s[p.pos])) {
		if p.s[p.pos] == ':' {
			remote = true
		}
		p.pos++
	}
	token := p.s[start:p.pos]
	if token == "" {
		return nil, fmt.Errorf("missing range at offset %d in location %q", start, p.s)
	}
	if remote {
		return nil, nil
	}

	var from, to string
	switch {
	case strings.Contains(token, ".."):
		i := strings.Index(token, "..")
		from, to = token[:i], token[i+2:]
	case strings.Contains(token, "^"):
		i := strings.Index(token, "^")
		from, to = token[:i], token[i+1:]
	case strings.Contains(token, "."):
		i := strings.Index(token, ".")
		from, to = token[:i], token[i+1:]
	default:
		from, to = token, token
	}

	a, err := strconv.Atoi(strings.TrimLeft(from, "<>"))
	if err != nil {
		return nil, fmt.Errorf("bad position %q in location %q", from, p.s)
	}
	b, err := strconv.Atoi(strings.TrimLeft(to, "<>"))
	if err != nil {
		return nil, fmt.Errorf("bad position %q in location %q", to, p.s)
	}
	if b < a {
		a, b = b, a
	}
	return []Span{{Start: a - 1, End: b, Strand: Forward}}, nil
}

func complement(parts []Span) []Span {
	out := make([]Span, len(parts))
	for i, p := range parts {
		p.Strand = -p.Strand
		out[len(parts)-1-i] = p
	}
	return out
}
