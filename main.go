// Command pdf-verzahnen interleaves a two-pass scan (all fronts, then all
// backs) into a duplex-ready PDF. The second half is reversed by default,
// matching the usual flip-the-stack scanning pattern.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"pdf-verzahnen/config"
	"pdf-verzahnen/logging"
	"pdf-verzahnen/pdfio"
	"pdf-verzahnen/plan"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	_ = logging.Init(logging.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Pretty,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
	})
	os.Exit(run(os.Args[1:], cfg, os.Stdout, os.Stderr))
}

// Exit codes: 0 success, 1 read/write failure, 2 usage or validation
// failure.
func run(args []string, cfg config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pdf-verzahnen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		output    string
		split     int
		reverse   bool
		noReverse bool
		padBlank  bool
		dryRun    bool
		workDir   string
		keepWork  bool
	)
	fs.StringVar(&output, "o", "", "output PDF path (default: <input>.interleaved.pdf)")
	fs.StringVar(&output, "output", "", "output PDF path (default: <input>.interleaved.pdf)")
	fs.IntVar(&split, "s", 0, "1-based page where the second half starts (default: midpoint)")
	fs.IntVar(&split, "split", 0, "1-based page where the second half starts (default: midpoint)")
	fs.BoolVar(&reverse, "r", false, "reverse the second half before interleaving (default)")
	fs.BoolVar(&reverse, "reverse-second", false, "reverse the second half before interleaving (default)")
	fs.BoolVar(&noReverse, "no-reverse-second", false, "force not reversing the second half")
	fs.BoolVar(&padBlank, "pad-blank", false, "pad the shorter half with blank pages sized like page 1")
	fs.BoolVar(&dryRun, "dry-run", false, "print the page mapping instead of writing a file")
	fs.StringVar(&workDir, "work", cfg.WorkDir, "work directory for page files (default: temp dir)")
	fs.BoolVar(&keepWork, "keep-work", cfg.KeepWork, "keep the work directory (debug)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: pdf-verzahnen [options] <input.pdf>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	input := fs.Arg(0)

	// An unset -s means midpoint; an explicit -s 0 is a usage error, so the
	// two cases have to be told apart.
	splitAt := plan.AutoSplit
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "s" || f.Name == "split" {
			splitAt = split
		}
	})

	// Conflicting reverse flags fail before anything is read.
	reverseSecond, err := plan.ResolveReverse(reverse, noReverse)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if info, err := os.Stat(input); err != nil || info.IsDir() {
		fmt.Fprintf(stderr, "Error: input file not found: %s\n", input)
		return 2
	}

	src, err := pdfio.OpenSource(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading PDF: %v\n", err)
		return 1
	}

	first, second, err := plan.Split(src.PageCount(), splitAt)
	if err != nil {
		fmt.Fprintf(stderr, "Error preparing halves: %v\n", err)
		return 2
	}

	mapping := plan.BuildMapping(first, second, reverseSecond, padBlank)

	if dryRun {
		printMapping(stdout, src.PageCount(), len(first), mapping)
		return 0
	}

	outPath := output
	if outPath == "" {
		outPath = defaultOutputPath(input)
	}

	madeTemp := false
	if workDir == "" {
		workDir, err = os.MkdirTemp("", "pdfverzahnen_*")
		if err != nil {
			fmt.Fprintf(stderr, "Error: work dir: %v\n", err)
			return 1
		}
		madeTemp = true
	} else if err := os.MkdirAll(workDir, 0o755); err != nil {
		fmt.Fprintf(stderr, "Error: work dir: %v\n", err)
		return 1
	}
	// Only remove what we created; a user-supplied work dir stays.
	defer func() {
		if !madeTemp || keepWork {
			if keepWork {
				log.Info().Str("dir", workDir).Msg("keeping work directory")
			}
			return
		}
		os.RemoveAll(workDir)
	}()

	if code := materialize(src, mapping, workDir, outPath, stderr); code != 0 {
		return code
	}
	fmt.Fprintf(stdout, "Wrote interleaved PDF: %s\n", outPath)
	return 0
}

// materialize copies source pages (and generated blanks) into the output
// document in mapping order.
func materialize(src *pdfio.Source, mapping plan.Mapping, workDir, outPath string, stderr io.Writer) int {
	pages, err := src.ExtractPages(workDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading PDF: %v\n", err)
		return 1
	}

	sink := pdfio.NewSink(workDir)
	width, height, haveDims := src.Dimensions()
	for _, ref := range mapping.Flatten() {
		if ref.Blank {
			if !haveDims {
				fmt.Fprintln(stderr, "Error writing output: cannot add blank page: unknown page size")
				return 1
			}
			if err := sink.AppendBlankPage(width, height); err != nil {
				fmt.Fprintf(stderr, "Error writing output: %v\n", err)
				return 1
			}
			continue
		}
		sink.AppendPage(pages[ref.Page])
	}

	if err := sink.Finalize(outPath); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

// printMapping reports the plan: one line per output page with its 1-based
// running index and origin. Half-local indices are 0-based; generated
// blanks occupy an output page and are counted like any other.
func printMapping(w io.Writer, total, firstLen int, mapping plan.Mapping) {
	secondLen := total - firstLen
	fmt.Fprintf(w, "Input pages: %d | first half: %d | second half: %d\n", total, firstLen, secondLen)
	fmt.Fprintln(w, "Output order:")
	out := 0
	emit := func(r plan.Ref, half string, base int) {
		out++
		if r.Blank {
			fmt.Fprintf(w, "%4d: blank -> output\n", out)
			return
		}
		fmt.Fprintf(w, "%4d: %s[%d] -> output\n", out, half, r.Page-base)
	}
	for _, slot := range mapping {
		if slot.First != nil {
			emit(*slot.First, "first", 0)
		}
		if slot.Second != nil {
			emit(*slot.Second, "second", firstLen)
		}
	}
}

func defaultOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".interleaved.pdf"
}
