// Package gen provides deterministic Go code generation for builders.
//
// Generation uses github.com/dave/jennifer/jen, which manages imports and
// gofmts the result.
//
// Emitted declarations, in order:
//   - The builder struct, one slot per record field
//   - The factory returning an empty builder
//   - One setter per field, plus an append setter per repeated field
//   - Build, which checks required slots in field order and returns the record
package gen
