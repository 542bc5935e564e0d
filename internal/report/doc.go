// Package report renders evaluation reports for human and machine
// consumption.
//
// It provides a colored checklist formatter keyed by severity and a JSON
// formatter emitting one document entry per standard code.
package report
