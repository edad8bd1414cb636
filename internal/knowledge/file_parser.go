package knowledge

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	apperrors "github.com/aihub/rag-go/internal/errors"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// FileParser extracts a single text blob from an uploaded document.
type FileParser interface {
	Parse(reader io.Reader, filename string) (string, error)
	Supports(filename string) bool
}

// ParserRegistry dispatches uploads to the parser for their extension.
type ParserRegistry struct {
	parsers []FileParser
}

// NewParserRegistry returns a registry with the default parsers: PDF, Word
// and plain text/markdown.
func NewParserRegistry() *ParserRegistry {
	return &ParserRegistry{
		parsers: []FileParser{
			&PDFParser{},
			&WordParser{},
			&TextParser{},
		},
	}
}

// ParserFor returns the parser that supports filename, or nil.
func (r *ParserRegistry) ParserFor(filename string) FileParser {
	for _, parser := range r.parsers {
		if parser.Supports(filename) {
			return parser
		}
	}
	return nil
}

// TextParser handles plain text and markdown files.
type TextParser struct{}

func (p *TextParser) Supports(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".txt" || ext == ".md" || ext == ".markdown"
}

func (p *TextParser) Parse(reader io.Reader, filename string) (string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return "", apperrors.NewExtractionError(filename, err)
	}
	return string(content), nil
}

// PDFParser extracts text from PDF files page by page.
type PDFParser struct{}

func (p *PDFParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}

func (p *PDFParser) Parse(reader io.Reader, filename string) (string, error) {
	pdfBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", apperrors.NewExtractionError(filename, err)
	}

	pdfReader, err := model.NewPdfReader(bytes.NewReader(pdfBytes))
	if err != nil {
		return "", apperrors.NewExtractionError(filename, err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", apperrors.NewExtractionError(filename, err)
	}

	// Pages that fail to extract are skipped rather than failing the whole
	// document; scanned or malformed pages are common in real PDFs.
	var textBuilder strings.Builder
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		text, err := ex.ExtractText()
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

// WordParser extracts text from .docx files.
type WordParser struct{}

func (p *WordParser) Supports(filename string) bool {
	return strings.ToLower(filepath.Ext(filename)) == ".docx"
}

func (p *WordParser) Parse(reader io.Reader, filename string) (string, error) {
	docBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", apperrors.NewExtractionError(filename, err)
	}

	doc, err := document.Read(bytes.NewReader(docBytes), int64(len(docBytes)))
	if err != nil {
		return "", apperrors.NewExtractionError(filename, err)
	}
	defer doc.Close()

	var textBuilder strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			textBuilder.WriteString(run.Text())
		}
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}
