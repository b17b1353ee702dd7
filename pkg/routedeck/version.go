// Package routedeck exposes build metadata shared by the CLI and tooling.
package routedeck

// Version is the current routedeck release version.
const Version = "0.3.0"
