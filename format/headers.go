package format

import "bytes"

// matchesMagic checks for the DICM marker after the 128-byte preamble
func matchesMagic(data []byte) bool {
	if len(data) < PreambleSize+len(MagicWord) {
		return false
	}
	return bytes.Equal(data[PreambleSize:PreambleSize+len(MagicWord)], MagicWord)
}
