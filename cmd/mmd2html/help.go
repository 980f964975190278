package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mmd2html [flags] [filename.md]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown document to HTML. Reads stdin when no file is given")
	fmt.Fprintln(w, "and writes stdout unless -o is set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>   Write output to file instead of stdout")
	fmt.Fprintln(w, "      --only-body       Only output body content")
	fmt.Fprintln(w, "      --title <s>       Page title (overrides metadata)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --css <value>     Stylesheet name, file path, or CSS content")
	fmt.Fprintln(w, "      --highlight <s>   Highlight code blocks with the named style")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parsing:")
	fmt.Fprintln(w, "      --no-metadata     Treat a leading metadata block as content")
	fmt.Fprintln(w, "      --no-tables       Disable table parsing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -v, --verbose         Report progress on stderr")
	fmt.Fprintln(w, "      --version         Show version information")
	fmt.Fprintln(w, "  -h, --help            Show this help")
}
