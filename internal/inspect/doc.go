// Package inspect implements the standards evaluation engine.
//
// It owns the ordered registry of standards, applies include/exclude
// filtering by code, runs each standard against a repository source with
// per-standard error containment, and aggregates the results into a Report
// whose order always mirrors registry order.
package inspect
