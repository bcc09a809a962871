// Package dataset loads the medical-examination table and enriches it with
// the derived BMI, overweight and normalized lab-value columns.
//
// A Table is built once and treated as read-only afterwards. Callers that need
// a filtered or reshaped view derive their own copies.
package dataset
