// Package analyze provides package loading and record extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to build a
// structural description of every named struct type (a record) in the
// loaded packages: its ordered fields, their type descriptors and their raw
// struct tags.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: type descriptor; pointer and slice are the optional and
//     sequence wrappers, everything else is opaque to classification
//   - FieldInfo: field name, type, tags, embedding and position
//   - RecordInfo: a named struct with its fields
package analyze
