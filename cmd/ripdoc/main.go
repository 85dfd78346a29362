/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

/*
 * ripdoc is a thin CLI over the document package: per-page text, CSV table,
 * or JSON primitive dump.
 *
 * Run as: ripdoc -mode text|csv|json -page N input.pdf
 */
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackburrus/ripdoc/document"
	"github.com/jackburrus/ripdoc/page"
	"github.com/jackburrus/ripdoc/table"
)

func main() {
	mode := flag.String("mode", "text", "output mode: text, csv, or json")
	pageNum := flag.Int("page", 1, "1-based page number")
	layout := flag.Bool("layout", false, "use layout-preserving text extraction")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: ripdoc -mode text|csv|json -page N input.pdf")
		os.Exit(1)
	}

	doc, err := document.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ripdoc: %v\n", err)
		os.Exit(1)
	}

	switch *mode {
	case "text":
		err = runText(doc, *pageNum, *layout)
	case "csv":
		err = runCSV(doc, *pageNum)
	case "json":
		err = runJSON(doc, *pageNum)
	default:
		fmt.Fprintf(os.Stderr, "ripdoc: unknown mode %q\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ripdoc: %v\n", err)
		os.Exit(1)
	}
}

func runText(doc *document.Document, pageNum int, layout bool) error {
	opts := page.DefaultTextOptions()
	opts.Layout = layout
	text, err := doc.ExtractText(pageNum, opts)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func runCSV(doc *document.Document, pageNum int) error {
	tables, err := doc.FindTables(pageNum, table.DefaultSettings())
	if err != nil {
		return err
	}
	for i, t := range tables {
		if i > 0 {
			fmt.Println()
		}
		csv, err := t.ToCSV()
		if err != nil {
			return err
		}
		fmt.Print(csv)
	}
	return nil
}

type jsonPage struct {
	Number int           `json:"number"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Chars  int           `json:"num_chars"`
	Lines  int           `json:"num_lines"`
	Rects  int           `json:"num_rects"`
	Curves int           `json:"num_curves"`
	Words  []page.Word   `json:"words"`
}

func runJSON(doc *document.Document, pageNum int) error {
	p, err := doc.GetPage(pageNum)
	if err != nil {
		return err
	}
	out := jsonPage{
		Number: p.Number,
		Width:  p.Width,
		Height: p.Height,
		Chars:  len(p.Chars),
		Lines:  len(p.Lines),
		Rects:  len(p.Rects),
		Curves: len(p.Curves),
		Words:  p.Words(0, 0),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
