package utils

import (
	"bytes"
	"encoding/binary"
	"unicode/utf8"

	"github.com/mogaika/anmstrm2anm/config"

	"github.com/pkg/errors"
	"golang.org/x/text/transform"
)

// DecodeText returns utf-8 text as is and transcodes anything else
// from the configured charmap.
func DecodeText(bs []byte) (string, error) {
	if utf8.Valid(bs) {
		return string(bs), nil
	}

	s, _, err := transform.Bytes(config.GetEncoding().NewDecoder(), bs)
	if err != nil {
		return "", errors.Wrapf(err, "Failed to decode text using %v", config.GetEncoding())
	}
	return string(s), nil
}

// AsBytes encodes data big-endian, both assets formats use it
func AsBytes(data interface{}) []byte {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, data); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func PaddingZeroes(count int) []byte {
	return make([]byte, count)
}
