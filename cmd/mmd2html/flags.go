package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// renderFlags holds HTML output flags.
type renderFlags struct {
	onlyBody  bool
	css       string
	title     string
	highlight string
}

// parserFlags holds parser feature toggles.
type parserFlags struct {
	noMetadata bool
	noTables   bool
}

// cliFlags holds all flags for mmd2html.
type cliFlags struct {
	output  string
	help    bool
	version bool
	verbose bool
	render  renderFlags
	parser  parserFlags
}

// addRenderFlags adds HTML output flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.onlyBody, "only-body", false, "only output body content")
	fs.StringVar(&f.css, "css", "", "stylesheet name, file path, or CSS content")
	fs.StringVar(&f.title, "title", "", "page title (overrides metadata)")
	fs.StringVar(&f.highlight, "highlight", "", "highlight code blocks with the named style")
}

// addParserFlags adds parser feature toggles to a FlagSet.
func addParserFlags(fs *flag.FlagSet, f *parserFlags) {
	fs.BoolVar(&f.noMetadata, "no-metadata", false, "treat a leading metadata block as content")
	fs.BoolVar(&f.noTables, "no-tables", false, "disable table parsing")
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mmd2html", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write output to file instead of stdout")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "report progress on stderr")

	addRenderFlags(fs, &f.render)
	addParserFlags(fs, &f.parser)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
