// Package inventory defines the flat record model shared by collectors and
// exporters.
//
// Records are insertion-ordered mappings of field name to a scalar, list,
// or explicit absent value. Field order is load-bearing: the tabular
// exporter infers column headers from the first record of a set, in the
// order its fields were set. Records are transient, constructed fresh per
// run, and have no identity beyond their field values.
package inventory
