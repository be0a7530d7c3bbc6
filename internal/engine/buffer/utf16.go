package buffer

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	count := 0
	for _, r := range s {
		if r >= 0x10000 {
			count += 2 // Surrogate pair
		} else {
			count++
		}
	}
	return count
}

// utf16ToByteOffset converts a UTF-16 offset to a byte offset within s.
// ok is false when the offset lies past the end of s.
func utf16ToByteOffset(s string, utf16Off int) (int, bool) {
	if utf16Off <= 0 {
		return 0, true
	}

	utf16Count := 0
	for i, r := range s {
		if utf16Count >= utf16Off {
			return i, true
		}
		if r >= 0x10000 {
			utf16Count += 2
		} else {
			utf16Count++
		}
	}
	return len(s), utf16Count >= utf16Off
}
