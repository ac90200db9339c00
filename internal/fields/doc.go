// Package fields parses field-selection expressions into rule records.
package fields
