package pdfio

import (
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	model "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// Sink collects page files in output order and merges them into the final
// document. Blank pages are materialized as single-page files in the work
// dir so the whole output can go through one merge.
type Sink struct {
	workDir string
	files   []string
	blanks  int
	conf    *model.Configuration
}

// NewSink returns a Sink writing intermediate files to workDir.
func NewSink(workDir string) *Sink {
	return &Sink{workDir: workDir, conf: model.NewDefaultConfiguration()}
}

// AppendPage appends an existing single-page file to the output order.
func (s *Sink) AppendPage(file string) {
	s.files = append(s.files, file)
}

// AppendBlankPage appends a generated empty page of the given size in
// points.
func (s *Sink) AppendBlankPage(width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cannot add blank page: unknown page size")
	}
	s.blanks++
	path := filepath.Join(s.workDir, fmt.Sprintf("zz_blank_%04d.pdf", s.blanks))
	if err := WriteBlankPage(path, width, height); err != nil {
		return fmt.Errorf("blank page: %w", err)
	}
	s.files = append(s.files, path)
	return nil
}

// Finalize merges all appended pages, in order, into dest.
func (s *Sink) Finalize(dest string) error {
	if len(s.files) == 0 {
		return fmt.Errorf("nothing to write")
	}
	if err := api.MergeCreateFile(s.files, dest, false, s.conf); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	log.Debug().Str("file", dest).Int("pages", len(s.files)).Int("blanks", s.blanks).Msg("wrote output PDF")
	return nil
}
