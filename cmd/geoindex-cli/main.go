// Command geoindex-cli is the offline collaborator for engine ingest and
// export: point it at a CSV file, export the current index back out in
// either flavor, or drop into an interactive search REPL.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/freeeve/geoindex/internal/engine"
	"github.com/freeeve/geoindex/internal/geo"
	"github.com/freeeve/geoindex/internal/importexport"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("geoindex-cli", flag.ContinueOnError)
	importPath := fs.String("import", "", "path to a CSV file to ingest (denormalized or tree, auto-detected)")
	exportTree := fs.String("export-tree", "", "path to write the current index as tree-format CSV")
	exportDenorm := fs.String("export-denorm", "", "path to write the current index as denormalized CSV")
	repl := fs.Bool("repl", false, "start an interactive search REPL after import")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *importPath == "" {
		fmt.Fprintln(os.Stderr, "geoindex-cli: -import is required")
		return 2
	}

	eng := engine.New()
	if err := importFile(eng, *importPath); err != nil {
		fmt.Fprintf(os.Stderr, "geoindex-cli: import failed: %v\n", err)
		return 2
	}

	if *exportTree != "" {
		if err := exportFile(*exportTree, eng.Registry().All(), importexport.WriteTree); err != nil {
			fmt.Fprintf(os.Stderr, "geoindex-cli: export-tree failed: %v\n", err)
			return 2
		}
	}
	if *exportDenorm != "" {
		if err := exportFile(*exportDenorm, eng.Registry().All(), importexport.WriteDenormalized); err != nil {
			fmt.Fprintf(os.Stderr, "geoindex-cli: export-denorm failed: %v\n", err)
			return 2
		}
	}

	if *repl {
		interactive(eng, os.Stdin, os.Stdout)
	}

	return 0
}

func importFile(eng *engine.Engine, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, _, err = importexport.Import(f, eng)
	return err
}

func exportFile(path string, records []*geo.Record, write func(io.Writer, []*geo.Record) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f, records)
}

func interactive(eng *engine.Engine, in *os.File, out *os.File) {
	r := bufio.NewScanner(in)
	fmt.Fprintln(out, "Enter query (empty to exit):")
	for {
		fmt.Fprint(out, "> ")
		if !r.Scan() {
			break
		}
		query := r.Text()
		if query == "" {
			break
		}

		result := eng.Search(query, engine.DefaultResultLimit)
		if result.Matched > 0 && result.Query != query {
			fmt.Fprintf(out, "Did you mean _%s_?\n", result.Query)
		}

		printResult(out, result)
	}
	fmt.Fprintln(out, "Bye!")
}

func printResult(out *os.File, result engine.Result) {
	if result.Matched == 0 {
		fmt.Fprintln(out, "{}")
		return
	}
	for _, hit := range result.Hits {
		fmt.Fprintf(out, "%d: %s\n", hit.ID, hit.Names[0].Self)
	}
	if result.Hidden > 0 {
		fmt.Fprintf(out, "... and %d more\n", result.Hidden)
	}
}
