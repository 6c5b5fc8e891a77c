package utils

import (
	"fmt"
	"strings"
)

// Short links encode the recipe id itself, so the mapping needs no
// lookup table and survives restarts. Base62 keeps codes compact and
// URL-safe; the encoding is injective, so decode(encode(id)) == id.

const base62Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func EncodeShortCode(id uint64) string {
	if id == 0 {
		return string(base62Alphabet[0])
	}
	var buf [11]byte // 62^11 > 2^64
	i := len(buf)
	for id > 0 {
		i--
		buf[i] = base62Alphabet[id%62]
		id /= 62
	}
	return string(buf[i:])
}

func DecodeShortCode(code string) (uint64, error) {
	if code == "" || len(code) > 11 {
		return 0, fmt.Errorf("invalid short code %q", code)
	}
	var id uint64
	for _, c := range code {
		idx := strings.IndexRune(base62Alphabet, c)
		if idx < 0 {
			return 0, fmt.Errorf("invalid short code %q", code)
		}
		next := id*62 + uint64(idx)
		if next < id {
			return 0, fmt.Errorf("short code %q overflows", code)
		}
		id = next
	}
	return id, nil
}
