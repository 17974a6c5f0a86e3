// Package plan turns a record description into a BuilderPlan consumed by
// code generation.
//
// Planning pipeline:
//  1. Classify every field as plain, optional (*T) or repeated ([]T tagged
//     with `builder:"each=Name"`)
//  2. Lay out one builder slot per field, in field order
//  3. Name the builder type, factory, slots, setters and setter parameters
//  4. Reject generic records and clashes among the generated identifiers
//
// Warnings, such as an `each` annotation on a non-slice field, are collected
// in the plan's Diagnostics.
package plan
