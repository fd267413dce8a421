package serviceimpl

import (
	"strings"

	"github.com/PayRam/go-search/models"
	"github.com/PayRam/go-search/service"
)

type termParser struct {
	fixQuirks bool
}

var _ service.TermParser = &termParser{}

// NewTermParser returns the free-text tokenizer. With fixQuirks false it keeps the
// historical handling of "quoted":field names (two plain terms) and of field:""
// (the field moves on to the next term), so saved searches keep their meaning.
func NewTermParser(fixQuirks bool) *termParser {
	return &termParser{fixQuirks: fixQuirks}
}

// normalizeWhitespace maps tab, LF and CR to spaces, trims, and collapses runs of spaces.
func normalizeWhitespace(raw string) string {
	raw = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		}
		return r
	}, raw)
	var b strings.Builder
	b.Grow(len(raw))
	space := false
	for _, r := range strings.Trim(raw, " ") {
		if r == ' ' {
			if space {
				continue
			}
			space = true
		} else {
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// scanState is the working state of one Parse call.
type scanState struct {
	input   []rune
	buf     strings.Builder
	field   string
	pending bool // a field name is waiting for its term
	carry   bool // the pending field survives the next space
	quoted  bool // inside a "phrase"
	terms   []models.SearchTerm
}

// emit appends buf as a term, attaching the pending field. An empty term emits
// nothing and drops the field.
func (s *scanState) emit() {
	term := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	field := s.field
	s.field, s.pending, s.carry = "", false, false
	if term == "" {
		return
	}
	s.terms = append(s.terms, models.NewSearchTerm(field, term))
}

func (s *scanState) quoteRun(i int) int {
	n := 0
	for i+n < len(s.input) && s.input[i+n] == '"' {
		n++
	}
	return n
}

func (p *termParser) Parse(raw string) []models.SearchTerm {
	s := &scanState{input: []rune(normalizeWhitespace(raw))}
	last := len(s.input) - 1

	for i := 0; i <= last; i++ {
		c := s.input[i]
		switch {
		case c == ':' && !s.quoted && !s.pending:
			// bare colons are dropped
			if s.buf.Len() > 0 {
				s.field = strings.ToLower(s.buf.String())
				s.pending = true
				s.buf.Reset()
			}

		case c == '"' && !s.quoted:
			if p.fixQuirks && s.buf.Len() == 0 && s.quoteRun(i) == 2 {
				// field:"" is an explicit empty term
				s.field, s.pending = "", false
				i++
				continue
			}
			if s.buf.Len() > 0 {
				s.emit()
			}
			s.quoted = true

		case c == '"' && i < last && s.input[i+1] == '"':
			// "" inside a phrase is a literal quote. When the pair ends the input
			// the phrase is left unterminated and is emitted after the loop.
			s.buf.WriteRune('"')
			i++

		case c == '"':
			s.quoted = false
			name := strings.TrimSpace(s.buf.String())
			if p.fixQuirks && !s.pending && name != "" && i < last && s.input[i+1] == ':' {
				s.field = strings.ToLower(name)
				s.pending = true
				s.buf.Reset()
				i++
				continue
			}
			if name == "" && s.pending && !p.fixQuirks {
				// an empty phrase keeps its field, which then lands on the next term
				s.buf.Reset()
				s.carry = true
				continue
			}
			s.emit()

		case c == ' ' && !s.quoted:
			switch {
			case s.buf.Len() > 0:
				s.emit()
			case s.carry:
				s.carry = false
			default:
				// "name:" followed by nothing
				s.field, s.pending = "", false
			}

		default:
			s.buf.WriteRune(c)
		}
	}

	s.emit()
	if s.terms == nil {
		return []models.SearchTerm{}
	}
	return s.terms
}
