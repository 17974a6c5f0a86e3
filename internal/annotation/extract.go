package annotation

import (
	"fmt"
	"go/scanner"
	"go/token"

	"builder-generator/internal/analyze"
	"builder-generator/internal/common"
	"builder-generator/internal/diagnostic"
	"builder-generator/internal/match"
)

const (
	// Name is the struct tag key holding builder annotations.
	Name = "builder"
	// KeyEach requests an append-one-element setter on a slice field.
	KeyEach = "each"
)

const maxKeyDistance = 2

// Extract returns the identifier bound to key in the field's annotation
// called annotation. A field without the annotation yields ("", false, nil).
// Any other token sequence than `key = Ident` is an ErrMalformedAnnotation
// naming the offending token.
func Extract(field *analyze.FieldInfo, annotation, key string) (string, bool, error) {
	raw, ok := field.Annotation(annotation)
	if !ok {
		return "", false, nil
	}

	toks, err := tokenize(raw)
	if err != nil {
		return "", true, malformed(field, "%s", err.Error())
	}

	next := func() item {
		it, ok := common.First(toks)
		if !ok {
			return item{tok: token.EOF}
		}

		toks = toks[1:]

		return it
	}

	k := next()
	if k.tok != token.IDENT || k.lit != key {
		err := malformed(field, "expected `%s` but got %s", key, k)
		if k.tok == token.IDENT {
			err.Suggest(match.Suggest(k.lit, []string{key}, maxKeyDistance)...)
		}

		return "", true, err
	}

	if eq := next(); eq.tok != token.ASSIGN {
		return "", true, malformed(field, "expected `=` but got %s", eq)
	}

	v := next()
	if v.tok != token.IDENT {
		return "", true, malformed(field, "expected identifier but got %s", v)
	}

	if rest := next(); !rest.end() {
		return "", true, malformed(field, "unexpected %s after `%s=%s`", rest, key, v.lit)
	}

	return v.lit, true, nil
}

type item struct {
	tok token.Token
	lit string
}

// end reports the end of input, including the semicolon the scanner
// inserts after a trailing identifier.
func (it item) end() bool {
	return it.tok == token.EOF || (it.tok == token.SEMICOLON && it.lit == "\n")
}

func (it item) String() string {
	switch {
	case it.end():
		return "end of annotation"
	case it.tok == token.IDENT:
		return "`" + it.lit + "`"
	case it.tok.IsLiteral():
		return fmt.Sprintf("%s %s", it.tok, it.lit)
	default:
		return "`" + it.tok.String() + "`"
	}
}

func tokenize(src string) ([]item, error) {
	fset := token.NewFileSet()
	file := fset.AddFile(Name, fset.Base(), len(src))

	var errs scanner.ErrorList

	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, 0)

	var toks []item
	for {
		_, tok, lit := s.Scan()
		toks = append(toks, item{tok: tok, lit: lit})

		if tok == token.EOF {
			break
		}
	}

	if first, ok := common.First(errs); ok {
		return nil, first
	}

	return toks, nil
}

func malformed(field *analyze.FieldInfo, format string, args ...any) *diagnostic.Error {
	return diagnostic.Errorf(diagnostic.ErrMalformedAnnotation, "", field.Name, format, args...).At(field.Pos)
}
