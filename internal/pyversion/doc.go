// Package pyversion parses Python version specifiers and compares them
// against minimum requirements.
//
// It exposes Specifier for operator-aware comparisons and an ordered set of
// DetectionRule values used to extract version requirements from project
// files such as pyproject.toml, setup.py, Dockerfiles, and shell scripts.
package pyversion
