package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// bookFlags holds config and output selection flags.
type bookFlags struct {
	config string
	output string
	pdf    bool
	html   bool
}

// styleFlags holds appearance override flags.
type styleFlags struct {
	style     string
	highlight string
	assetPath string
}

// buildFlags holds build behavior flags.
type buildFlags struct {
	timeout  string
	noCover  bool
	noTOC    bool
	noFooter bool
}

// cliFlags holds all flags for mmdbook.
type cliFlags struct {
	book    bookFlags
	style   styleFlags
	build   buildFlags
	quiet   bool
	verbose bool
	help    bool
	version bool
}

// addBookFlags adds config and output flags to a FlagSet.
func addBookFlags(fs *flag.FlagSet, f *bookFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path (default \"book\")")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVar(&f.pdf, "pdf", false, "render the book to PDF instead of HTML")
	fs.BoolVar(&f.html, "html", false, "with --pdf, also write the HTML")
}

// addStyleFlags adds appearance flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or raw CSS")
	fs.StringVar(&f.highlight, "highlight", "", "syntax highlighting style for code blocks")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addBuildFlags adds build behavior flags to a FlagSet.
func addBuildFlags(fs *flag.FlagSet, f *buildFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.noCover, "no-cover", false, "disable cover page")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable table of contents")
	fs.BoolVar(&f.noFooter, "no-footer", false, "disable page footer")
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mmdbook", flag.ContinueOnError)
	f := &cliFlags{}

	addBookFlags(fs, &f.book)
	addStyleFlags(fs, &f.style)
	addBuildFlags(fs, &f.build)

	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
