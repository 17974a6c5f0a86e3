// Package annotation reads the `builder` struct tag of a record field.
//
// The tag value is tokenized with go/scanner and must read exactly
//
//	each = Ident
//
// where Ident becomes the name of the append-one-element setter.
package annotation
