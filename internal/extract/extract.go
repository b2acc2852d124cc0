package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrUnsupportedFormat is returned for file extensions outside {pdf, docx, txt}.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrExtractionFailed wraps decoder failures on otherwise supported formats.
	ErrExtractionFailed = errors.New("failed to extract text")
)

// Metadata describes the extracted document.
type Metadata struct {
	FileSizeBytes int64  `json:"fileSize"`
	FileType      string `json:"fileType"`
	PageCount     int    `json:"pageCount"`
	WordCount     int    `json:"wordCount"`
}

// Result carries the extracted plain text and its metadata.
type Result struct {
	Text     string
	Metadata Metadata
}

// Extract pulls plain text from an uploaded document. The format is determined
// by the file name's extension. PDF extraction also reports a page count;
// other formats report 0. Libraries used: github.com/ledongthuc/pdf (PDF);
// DOCX is decoded directly from its zip package.
func Extract(data []byte, fileName string) (Result, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	var (
		text      string
		pageCount int
		err       error
	)
	switch ext {
	case ".pdf":
		text, pageCount, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".txt":
		text = string(data)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	return Result{
		Text: text,
		Metadata: Metadata{
			FileSizeBytes: int64(len(data)),
			FileType:      ext,
			PageCount:     pageCount,
			// strings.Fields reports 0 for empty or whitespace-only input,
			// unlike a naive split which would report 1.
			WordCount: len(strings.Fields(text)),
		},
	}, nil
}

func extractPDF(data []byte) (string, int, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", 0, err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", 0, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", 0, err
	}
	return buf.String(), pdfReader.NumPage(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

// stripDocxXML reduces word/document.xml to its character data, inserting line
// breaks at paragraph boundaries. Malformed markup past the readable prefix is
// tolerated rather than failed.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
