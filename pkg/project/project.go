package project

// Project metadata, reported to the language server and the CLI.
const (
	Name    = "symline"
	Version = "0.2.0"
)
