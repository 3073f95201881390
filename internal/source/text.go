package source

import "bytes"

func stripBOM(b []byte) ([]byte, bool) {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:], true
	}
	return b, false
}

// foldCRLF rewrites "\r\n" as "\n"; lone '\r' bytes survive.
func foldCRLF(b []byte) ([]byte, bool) {
	if !bytes.Contains(b, []byte("\r\n")) {
		return b, false
	}
	return bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n")), true
}

func lineIndex(b []byte) []uint32 {
	var idx []uint32
	for i, c := range b {
		if c == '\n' {
			idx = append(idx, uint32(i)) // #nosec G115 -- bounded by Add
		}
	}
	return idx
}
