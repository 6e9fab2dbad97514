package ingest

import (
	"errors"
	"fmt"
	"strings"

	"jobmarket-engine/internal/domain"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatTXT Format = "txt"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type, expected .txt or .csv")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrNoRecords       = errors.New("no valid job data found in the file")
)

// CheckUpload enforces the upload preconditions before any parsing happens.
// Size and type problems are the caller's single user-facing error; parse
// problems later never throw, they just drop records.
func CheckUpload(filename, contentType string, size, maxBytes int64) error {
	if maxBytes > 0 && size > maxBytes {
		return fmt.Errorf("%w (%d > %d bytes)", ErrFileTooLarge, size, maxBytes)
	}

	name := strings.ToLower(filename)
	if strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".csv") {
		return nil
	}
	switch baseMIME(contentType) {
	case "text/plain", "text/csv":
		return nil
	}
	return ErrUnsupportedFile
}

// DetectFormat picks the parser for an uploaded file: extension first, then
// MIME type, then a comma-in-first-line sniff for the ambiguous rest.
func DetectFormat(filename, contentType, content string) Format {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".txt"):
		return FormatTXT
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV
	}

	switch baseMIME(contentType) {
	case "text/csv":
		return FormatCSV
	case "text/plain":
		return FormatTXT
	}

	firstLine, _, _ := strings.Cut(content, "\n")
	if strings.Contains(content, ",") && strings.Contains(firstLine, ",") {
		return FormatCSV
	}
	return FormatTXT
}

// ParseUpload routes uploaded content to the matching parser. CSV uploads go
// through the naive splitter, TXT through the LinkedIn block parser.
func ParseUpload(filename, contentType, content string) ([]domain.JobRecord, Format) {
	format := DetectFormat(filename, contentType, content)
	if format == FormatCSV {
		return ParseUploadCSV(content), format
	}
	return ParseLinkedInTXT(content), format
}

func baseMIME(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(strings.ToLower(mt))
}
