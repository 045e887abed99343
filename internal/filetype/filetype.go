// Package filetype classifies observation files by content, not by
// extension. Directory scans use it to decide which candidates are worth
// decoding and which to skip.
package filetype

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies a recognized file type.
type Kind string

const (
	KindFITS     Kind = "fits"
	KindJPEG2000 Kind = "jp2"
)

// ErrUnrecognizedFileType reports a file whose content matches no known
// observation format.
var ErrUnrecognizedFileType = errors.New("unrecognized file type")

// ErrInvalidJPEG2000Extension reports a file with JPEG2000 content but a
// filename extension that contradicts it.
var ErrInvalidJPEG2000Extension = errors.New("invalid JPEG2000 file extension")

// fitsMagic is the start of the mandatory first card of a FITS primary header.
var fitsMagic = []byte("SIMPLE  =")

// jp2Signature is the JPEG2000 signature box that opens a JP2 stream.
var jp2Signature = []byte{0x00, 0x00, 0x00, 0x0c, 0x6a, 0x50, 0x20, 0x20, 0x0d, 0x0a, 0x87, 0x0a}

var jp2Extensions = map[string]struct{}{
	".jp2": {},
	".j2k": {},
	".jpc": {},
	".jpf": {},
	".jpx": {},
}

// Detect sniffs the leading bytes of the file at path and reports its
// kind. Content that matches no known format yields
// ErrUnrecognizedFileType; JPEG2000 content behind a non-JP2 extension
// yields ErrInvalidJPEG2000Extension.
func Detect(path string) (Kind, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	head := make([]byte, 32)
	n, err := file.Read(head)
	if err != nil && n == 0 {
		return "", ErrUnrecognizedFileType
	}
	head = head[:n]

	if bytes.HasPrefix(head, fitsMagic) {
		return KindFITS, nil
	}
	if bytes.HasPrefix(head, jp2Signature) {
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := jp2Extensions[ext]; !ok {
			return "", ErrInvalidJPEG2000Extension
		}
		return KindJPEG2000, nil
	}
	return "", ErrUnrecognizedFileType
}
