package pdfio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	model "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// makeScan builds a PDF whose page identities are encoded in the page
// height (200 + id points), so order survives any reshuffling.
func makeScan(t *testing.T, dir string, ids []int) string {
	t.Helper()
	var files []string
	for i, id := range ids {
		f := filepath.Join(dir, fmt.Sprintf("src_%02d.pdf", i))
		if err := WriteBlankPage(f, 200, float64(200+id)); err != nil {
			t.Fatalf("write page %d: %v", i, err)
		}
		files = append(files, f)
	}
	out := filepath.Join(dir, "scan.pdf")
	if err := api.MergeCreateFile(files, out, false, model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("merge fixture: %v", err)
	}
	return out
}

func readIDs(t *testing.T, path string) []int {
	t.Helper()
	dims, err := api.PageDimsFile(path)
	if err != nil {
		t.Fatalf("page dims of %s: %v", path, err)
	}
	ids := make([]int, len(dims))
	for i, d := range dims {
		ids[i] = int(math.Round(d.Height - 200))
	}
	return ids
}

func TestWriteBlankPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.pdf")
	if err := WriteBlankPage(path, 595.28, 841.89); err != nil {
		t.Fatalf("WriteBlankPage: %v", err)
	}
	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("generated blank page does not validate: %v", err)
	}
	dims, err := api.PageDimsFile(path)
	if err != nil {
		t.Fatalf("page dims: %v", err)
	}
	if len(dims) != 1 {
		t.Fatalf("expected 1 page, got %d", len(dims))
	}
	if math.Abs(dims[0].Width-595.28) > 0.01 || math.Abs(dims[0].Height-841.89) > 0.01 {
		t.Fatalf("unexpected dims: %+v", dims[0])
	}
}

func TestOpenSource(t *testing.T) {
	dir := t.TempDir()
	scan := makeScan(t, dir, []int{1, 2, 3, 4})

	src, err := OpenSource(scan)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	if src.PageCount() != 4 {
		t.Fatalf("page count = %d, want 4", src.PageCount())
	}
	w, h, ok := src.Dimensions()
	if !ok {
		t.Fatal("expected known dimensions")
	}
	if math.Abs(w-200) > 0.01 || math.Abs(h-201) > 0.01 {
		t.Fatalf("unexpected template dims: %v x %v", w, h)
	}
}

func TestOpenSource_RejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(path, []byte("plain text, despite the extension"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenSource(path); err == nil {
		t.Fatal("expected error for non-PDF input")
	}
}

func TestExtractPages_Order(t *testing.T) {
	dir := t.TempDir()
	scan := makeScan(t, dir, []int{7, 5, 9})

	src, err := OpenSource(scan)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	workDir := t.TempDir()
	pages, err := src.ExtractPages(workDir)
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 page files, got %d", len(pages))
	}
	for i, want := range []int{7, 5, 9} {
		got := readIDs(t, pages[i])
		if len(got) != 1 || got[0] != want {
			t.Fatalf("page file %d holds %v, want [%d]", i, got, want)
		}
	}
}

func TestSink_MergeOrderWithBlanks(t *testing.T) {
	dir := t.TempDir()
	scan := makeScan(t, dir, []int{1, 2, 3})

	src, err := OpenSource(scan)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	workDir := t.TempDir()
	pages, err := src.ExtractPages(workDir)
	if err != nil {
		t.Fatalf("ExtractPages: %v", err)
	}

	sink := NewSink(workDir)
	sink.AppendPage(pages[2])
	if err := sink.AppendBlankPage(200, 250); err != nil {
		t.Fatalf("AppendBlankPage: %v", err)
	}
	sink.AppendPage(pages[0])

	out := filepath.Join(dir, "out.pdf")
	if err := sink.Finalize(out); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got, want := readIDs(t, out), []int{3, 50, 1}; len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("output order %v, want %v", got, want)
	}
}

func TestSink_BlankNeedsSize(t *testing.T) {
	sink := NewSink(t.TempDir())
	if err := sink.AppendBlankPage(0, 0); err == nil {
		t.Fatal("expected error for unknown page size")
	}
}

func TestSink_EmptyFinalize(t *testing.T) {
	sink := NewSink(t.TempDir())
	if err := sink.Finalize(filepath.Join(t.TempDir(), "out.pdf")); err == nil {
		t.Fatal("expected error for empty sink")
	}
}

func TestPageNumber(t *testing.T) {
	cases := []struct {
		name string
		num  int
		ok   bool
	}{
		{"scan_0001.pdf", 1, true},
		{"scan_12.pdf", 12, true},
		{"SCAN_3.PDF", 3, true},
		{"zz_blank_0001.pdf", 1, true},
		{"scan.pdf", 0, false},
		{"scan_x.pdf", 0, false},
	}
	for _, c := range cases {
		num, ok := pageNumber(c.name)
		if ok != c.ok || (ok && num != c.num) {
			t.Fatalf("pageNumber(%q) = (%d, %v), want (%d, %v)", c.name, num, ok, c.num, c.ok)
		}
	}
}
