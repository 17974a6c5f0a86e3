// Package match provides edit-distance helpers used to suggest the intended
// name when a user misspells an annotation key or a type name.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks candidate names close to a misspelled one
package match
