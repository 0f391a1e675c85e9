package analyzer

// binarySniffLen caps how much of a file the binary check inspects.
const binarySniffLen = 8192

// IsBinary reports whether content looks like binary data: a NUL byte
// or more than 30% non-text bytes in the first 8 KiB.
func IsBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}

	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}

	nonText := 0
	for _, b := range sniff {
		if b == 0 {
			return true
		}
		if b < 0x08 || (b > 0x0d && b < 0x20) || b == 0x7f {
			nonText++
		}
	}
	return float64(nonText) > float64(len(sniff))*0.30
}
