package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// enough for both zip signature and xml declaration with BOM
const sniffLen = 262

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return head[:n], nil
}

// isArchiveFile reports whether file is zip archive (Jahia site export).
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isExportFile reports whether file looks like XML document. Jahia export
// naming is checked by callers, single file given on command line does not
// have to follow it.
func isExportFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xml") {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return looksLikeXML(head), nil
}

var boms = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFE, 0xFF},
	{0xFF, 0xFE},
}

func looksLikeXML(head []byte) bool {
	for _, bom := range boms {
		if bytes.HasPrefix(head, bom) {
			// charset reader sorts out the rest
			return true
		}
	}
	head = bytes.TrimLeft(head, " \t\r\n")
	return len(head) > 0 && head[0] == '<'
}
