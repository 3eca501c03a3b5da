package styles

import (
	"io"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Stylesheet is compiled CSS that passed token-level validation. Both the
// unminified and the minified output are printed from the same parsed
// sheet.
type Stylesheet struct {
	source string
}

// ParseStylesheet validates cssText by lexing it to completion. Dart Sass
// already normalizes its output, so the unminified print is the validated
// text itself.
func ParseStylesheet(cssText string) (*Stylesheet, error) {
	lexer := css.NewLexer(parse.NewInputString(cssText))
	for {
		tt, _ := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			break
		}
	}
	return &Stylesheet{source: cssText}, nil
}

// Print renders the stylesheet, minified or not.
func (s *Stylesheet) Print(minified bool) (string, error) {
	if !minified {
		return s.source, nil
	}
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	return m.String("text/css", s.source)
}
