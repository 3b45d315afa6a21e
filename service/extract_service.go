package service

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/convoai/convo-be/types"
)

// Extractor converts a source document into its ordered sequence of pages.
type Extractor interface {
	Extract(ctx context.Context, filePath string) ([]types.Page, error)
}

// PDFExtractService extracts page text with the poppler utilities: pdfinfo
// for the page count, pdftotext for per-page text. A page without extractable
// text stays in the output as an empty string so page numbering remains
// contiguous and matches the source's own pagination.
type PDFExtractService struct {
	timeout time.Duration
}

func NewPDFExtractService(timeout time.Duration) *PDFExtractService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PDFExtractService{timeout: timeout}
}

func (s *PDFExtractService) Extract(ctx context.Context, filePath string) ([]types.Page, error) {
	totalPages, err := s.pageCount(ctx, filePath)
	if err != nil {
		return nil, &types.ExtractionError{Source: filePath, Err: err}
	}

	pages := make([]types.Page, 0, totalPages)
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		text, err := s.pageText(ctx, filePath, pageNum)
		if err != nil {
			return nil, &types.ExtractionError{Source: filePath, Err: fmt.Errorf("page %d: %w", pageNum, err)}
		}
		pages = append(pages, types.Page{Number: pageNum, Text: cleanText(text)})
	}
	return pages, nil
}

func (s *PDFExtractService) pageCount(ctx context.Context, filePath string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdfinfo", filePath)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running pdfinfo: %w", err)
	}
	return parsePageCount(&out)
}

func (s *PDFExtractService) pageText(ctx context.Context, filePath string, pageNumber int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "pdftotext",
		"-f", strconv.Itoa(pageNumber),
		"-l", strconv.Itoa(pageNumber),
		"-enc", "UTF-8", "-nopgbrk",
		filePath, "-")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}
	return out.String(), nil
}

var pagesRe = regexp.MustCompile(`Pages:\s+(\d+)`)

func parsePageCount(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if matches := pagesRe.FindStringSubmatch(scanner.Text()); len(matches) == 2 {
			return strconv.Atoi(matches[1])
		}
	}
	return 0, fmt.Errorf("unable to determine page count from pdfinfo")
}

func cleanText(text string) string {
	cleaned := strings.NewReplacer(
		"\x00", "",
		"\ufffd", "",
		"\x1b", "",
		"\r", "",
		"\f", "\n",
	).Replace(text)
	return strings.TrimSpace(cleaned)
}
