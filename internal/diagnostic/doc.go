// Package diagnostic provides structured warnings and definition-time errors
// for the builder generator.
//
// Key capabilities:
//   - Error kinds for malformed annotations, unsupported record shapes and
//     identifier collisions, usable with errors.Is
//   - Source positions and "did you mean" suggestions on errors
//   - Warning collection for annotations that were accepted but had no effect
package diagnostic
