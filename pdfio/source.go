// Package pdfio reads and writes the scanned documents. All PDF parsing and
// serialization is delegated to pdfcpu; this package only shuttles whole
// pages around by index and never inspects page content.
package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	model "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// Source is an opened scan. Opening reads the page count and the first
// page's dimensions; page files are only materialized by ExtractPages.
type Source struct {
	path   string
	count  int
	width  float64
	height float64
	dimsOK bool
	conf   *model.Configuration
}

// OpenSource sniffs the file by magic bytes and reads its page geometry.
// A file that is not actually a PDF fails here rather than deep inside the
// parser.
func OpenSource(path string) (*Source, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect file type: %w", err)
	}
	if !mtype.Is("application/pdf") {
		return nil, fmt.Errorf("%s is not a PDF (detected %s)", path, mtype.String())
	}

	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	s := &Source{path: path, count: count, conf: model.NewDefaultConfiguration()}

	if dims, err := api.PageDimsFile(path); err == nil && len(dims) > 0 {
		s.width = dims[0].Width
		s.height = dims[0].Height
		s.dimsOK = true
	}

	log.Debug().Str("file", path).Int("pages", count).Msg("opened source PDF")
	return s, nil
}

// PageCount returns the total number of pages.
func (s *Source) PageCount() int { return s.count }

// Dimensions returns the first page's media box size in points, used as the
// template for generated blanks. ok is false when the size is unknown.
func (s *Source) Dimensions() (width, height float64, ok bool) {
	return s.width, s.height, s.dimsOK
}

// ExtractPages splits the source into single-page files under workDir and
// returns their paths ordered by source page index (0-based).
func (s *Source) ExtractPages(workDir string) ([]string, error) {
	if err := api.SplitFile(s.path, workDir, 1, s.conf); err != nil {
		return nil, fmt.Errorf("split: %w", err)
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, fmt.Errorf("read work dir: %w", err)
	}

	type pageFile struct {
		path string
		num  int
	}
	var pfiles []pageFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		// Split output is named <base>_<n>.pdf. Extraction runs before any
		// blanks are generated, so every numbered file is a source page;
		// the count check below catches anything unexpected.
		num, ok := pageNumber(e.Name())
		if !ok {
			continue
		}
		pfiles = append(pfiles, pageFile{path: filepath.Join(workDir, e.Name()), num: num})
	}
	if len(pfiles) != s.count {
		return nil, fmt.Errorf("split produced %d page files, expected %d", len(pfiles), s.count)
	}

	sort.Slice(pfiles, func(i, j int) bool { return pfiles[i].num < pfiles[j].num })

	pages := make([]string, len(pfiles))
	for i, pf := range pfiles {
		pages[i] = pf.path
	}
	return pages, nil
}

var pageNumRe = regexp.MustCompile(`_(\d+)\.pdf$`)

// pageNumber extracts the 1-based page number from a split file name like
// scan_0007.pdf.
func pageNumber(name string) (int, bool) {
	m := pageNumRe.FindStringSubmatch(strings.ToLower(name))
	if len(m) != 2 {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(m[1], "%d", &n); err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
