package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"

	"github.com/consensys/qnark/internal/stats"
)

var (
	fSave   = flag.Bool("s", false, "save new stats in file ")
	fFilter = flag.String("run", "", "filter runs with regexp; example 'Lookahead*'")
)

func main() {
	flag.Parse()

	var r *regexp.Regexp
	if *fFilter != "" {
		r = regexp.MustCompile(*fFilter)
	}

	s := stats.NewGlobalStats()

	// for each snippet, on each width, compile and collect synthesis stats
	snippets := stats.GetSnippets()
	for name, c := range snippets {
		if r != nil && !r.MatchString(name) {
			continue
		}
		for _, width := range c.Widths {
			cs, err := stats.NewSnippetStats(c.Make(width))
			if err != nil {
				log.Fatalf("building stats for circuit %s %v", name, err)
			}
			s.Add(name, width, cs)
		}
	}

	// write csv to buffer
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		log.Fatal(err)
	}

	// print csv
	fmt.Println(buf.String())

	if *fSave {
		const refPath = "../latest.stats"
		// write buffer to file

		if err := os.WriteFile(refPath, buf.Bytes(), 0600); err != nil {
			log.Fatal(err)
		}

		log.Println("successfully saved new reference stats file", refPath)
	}

}
