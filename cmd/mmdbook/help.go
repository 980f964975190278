package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mmdbook [flags] [config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a book from the chapters listed in a YAML config. The config is")
	fmt.Fprintln(w, "a file path or a name searched in the current directory and the user")
	fmt.Fprintln(w, "config directory (default \"book\").")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -c, --config <value>    Config file name or path")
	fmt.Fprintln(w, "  -o, --output <path>     Output file or directory")
	fmt.Fprintln(w, "      --pdf               Render to PDF instead of HTML")
	fmt.Fprintln(w, "      --html              With --pdf, also write the HTML")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <value>     CSS style name, file path, or raw CSS")
	fmt.Fprintln(w, "      --highlight <s>     Highlight code blocks with the named style")
	fmt.Fprintln(w, "      --asset-path <dir>  Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -t, --timeout <d>       PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --no-cover          Disable cover page")
	fmt.Fprintln(w, "      --no-toc            Disable table of contents")
	fmt.Fprintln(w, "      --no-footer         Disable page footer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -q, --quiet             Only show errors")
	fmt.Fprintln(w, "  -v, --verbose           Show detailed timing")
	fmt.Fprintln(w, "      --version           Show version information")
	fmt.Fprintln(w, "  -h, --help              Show this help")
}
