// Package cli provides the command-line interface for nativefy.
//
// Commands:
//   - nativefy <url>: infer a name and icon, then write a bundle
//   - nativefy icon <url>: infer the icon only, optionally saving it as PNG
//
// Inference events go to the error writer, coloured by level. Results
// go to the standard writer. Invoked bare on a terminal, the root
// command starts the interactive TUI instead.
package cli
