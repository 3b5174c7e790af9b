package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

type (
	FileFormat      uint8
	CompressionType uint8
	LoadingState    uint8
)

const (
	Binary FileFormat = 0x1 // Binary represents the cell-budget record format.
	Text   FileFormat = 0x2 // Text represents the fixed-width stream-network output format.

	CompressionNone CompressionType = 0x1 // CompressionNone represents a plain file.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents a Zstandard stream.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents an S2 stream.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents an LZ4 frame stream.
	CompressionGzip CompressionType = 0x5 // CompressionGzip represents a gzip stream.

	Normal     LoadingState = 0x1 // Normal means the load completed.
	Warning    LoadingState = 0x2 // Warning means partial or degraded data was loaded.
	FatalError LoadingState = 0x3 // FatalError means nothing usable was loaded.
)

func (f FileFormat) String() string {
	switch f {
	case Binary:
		return "Binary"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Valid reports whether f is one of the supported formats.
func (f FileFormat) Valid() bool {
	return f == Binary || f == Text
}

// ParseFileFormat parses a case-insensitive format name.
func ParseFileFormat(s string) (FileFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary", "cbc":
		return Binary, nil
	case "text", "sfr":
		return Text, nil
	default:
		return 0, fmt.Errorf("unknown file format: %q", s)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionGzip:
		return "Gzip"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a case-insensitive compression name. The empty
// string maps to CompressionNone.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	default:
		return 0, fmt.Errorf("unknown compression: %q", s)
	}
}

// CompressionFromExtension maps the outer extension of a result file name to
// its compression container. Unrecognized extensions are treated as plain files.
func CompressionFromExtension(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	case ".gz":
		return CompressionGzip
	default:
		return CompressionNone
	}
}

func (s LoadingState) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Warning:
		return "Warning"
	case FatalError:
		return "FatalError"
	default:
		return "Unknown"
	}
}
