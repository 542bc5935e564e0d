// Package check wires the standards check Cobra command: flag parsing,
// environment fallbacks for GitLab credentials, repository source
// construction, and report rendering.
package check
