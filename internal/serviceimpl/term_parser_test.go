package serviceimpl_test

import (
	"strings"
	"testing"

	"github.com/PayRam/go-search/internal/serviceimpl"
	"github.com/PayRam/go-search/models"
	"github.com/stretchr/testify/assert"
)

type parsedTerm struct {
	Field string
	Term  string
}

func parse(fixQuirks bool, raw string) []parsedTerm {
	out := []parsedTerm{}
	for _, term := range serviceimpl.NewTermParser(fixQuirks).Parse(raw) {
		out = append(out, parsedTerm{term.Field(), term.Term()})
	}
	return out
}

func TestParseTerms(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []parsedTerm
	}{
		{"empty", "", []parsedTerm{}},
		{"whitespace only", " \t\r\n ", []parsedTerm{}},
		{"single word", "cool", []parsedTerm{{"", "cool"}}},
		{"words", "cool story", []parsedTerm{{"", "cool"}, {"", "story"}}},
		{"field isolation", "name:cool email:coolemail", []parsedTerm{{"name", "cool"}, {"email", "coolemail"}}},
		{"field name lower-cased", "NaMe:Cool", []parsedTerm{{"name", "Cool"}}},
		{"empty field discard", "name: email: abc", []parsedTerm{{"", "abc"}}},
		{"trailing empty field", "abc name:", []parsedTerm{{"", "abc"}}},
		{"unterminated quote", `cool "story bro`, []parsedTerm{{"", "cool"}, {"", "story bro"}}},
		{"multi-space collapse", `cool    "   story   bro "`, []parsedTerm{{"", "cool"}, {"", "story bro"}}},
		{"control whitespace", "cool\t\"story\nbro\"", []parsedTerm{{"", "cool"}, {"", "story bro"}}},
		{"phrase with field", `name:"John Smith" x`, []parsedTerm{{"name", "John Smith"}, {"", "x"}}},
		{"phrase ends accumulation", `abc"def ghi"`, []parsedTerm{{"", "abc"}, {"", "def ghi"}}},
		{"field applied to text before phrase", `name:abc"def"`, []parsedTerm{{"name", "abc"}, {"", "def"}}},
		{"bare colon dropped", ": abc :", []parsedTerm{{"", "abc"}}},
		{"second colon is text", "url:http://x", []parsedTerm{{"url", "http://x"}}},
		{"colon inside phrase", `"a:b" c`, []parsedTerm{{"", "a:b"}, {"", "c"}}},
		{"escaped quote in phrase", `"say ""hi"" now"`, []parsedTerm{{"", `say "hi" now`}}},
		{"doubled quote at end of input", `"abc""`, []parsedTerm{{"", `abc"`}}},
		{"four quotes", `""""`, []parsedTerm{{"", `"`}}},
		{"quote run between words", `a""""b`, []parsedTerm{{"", "a"}, {"", `"`}, {"", "b"}}},
		{"empty phrase", `a "" b`, []parsedTerm{{"", "a"}, {"", "b"}}},
		{"wildcards kept raw", "50%_off", []parsedTerm{{"", "50%_off"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(false, tt.in))
		})
	}
}

func TestParseKeepsHistoricalQuirks(t *testing.T) {
	// a quoted field name is two unscoped terms
	assert.Equal(t, []parsedTerm{{"", "name"}, {"", "value"}}, parse(false, `"name":"value"`))
	// field:"" hands its field to the next term
	assert.Equal(t, []parsedTerm{{"name", "abc"}}, parse(false, `name:"" abc`))
}

func TestParseWithQuirksFixed(t *testing.T) {
	assert.Equal(t, []parsedTerm{{"first name", "john"}}, parse(true, `"First Name":john`))
	assert.Equal(t, []parsedTerm{{"name", "value"}}, parse(true, `"name":"value"`))
	assert.Equal(t, []parsedTerm{{"", "abc"}}, parse(true, `name:"" abc`))
	assert.Equal(t, []parsedTerm{{"", "x"}}, parse(true, `x name:""`))
	// everything else behaves as before
	assert.Equal(t, parse(false, `cool "story bro`), parse(true, `cool "story bro`))
	assert.Equal(t, parse(false, `name:cool email:coolemail`), parse(true, `name:cool email:coolemail`))
}

func TestParseOddQuoteRuns(t *testing.T) {
	// the first quote opens a phrase and each following pair is a literal quote,
	// with or without the quirk fixes
	tests := []struct {
		in   string
		want []parsedTerm
	}{
		{`a"""b`, []parsedTerm{{"", "a"}, {"", `"b`}}},
		{`a"""""b`, []parsedTerm{{"", "a"}, {"", `""b`}}},
		{`"""`, []parsedTerm{{"", `"`}}},
		{`x"""`, []parsedTerm{{"", "x"}, {"", `"`}}},
		{`name:"""ann`, []parsedTerm{{"name", `"ann`}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(false, tt.in))
			assert.Equal(t, tt.want, parse(true, tt.in))
		})
	}
}

func TestParseRoundTripsDoubledQuotes(t *testing.T) {
	terms := []string{
		`"`,
		`""`,
		`he said "hi"`,
		`"leading`,
		`trailing"`,
		`a"b"c`,
		`x: "y"`,
		`100% "pure"_cotton`,
	}
	for _, fix := range []bool{false, true} {
		for _, term := range terms {
			quoted := `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
			got := serviceimpl.NewTermParser(fix).Parse(quoted)
			if assert.Len(t, got, 1, quoted) {
				assert.Equal(t, term, got[0].Term(), quoted)
				assert.Equal(t, "", got[0].Field(), quoted)
			}
		}
	}
}

func TestParsedTermsCarryEscapedForm(t *testing.T) {
	got := serviceimpl.NewTermParser(false).Parse(`code:50%_off`)
	assert.Equal(t, []models.SearchTerm{models.NewSearchTerm("code", "50%_off")}, got)
	assert.Equal(t, "50!%!_off", got[0].EscapedTerm())
}
