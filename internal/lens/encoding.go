package lens

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// decodeInput converts file bytes to UTF-8 text and reports the encoding so
// render can restore it. Input without a BOM is taken as-is (no copy).
func decodeInput(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, UTF8BOM):
		return data[len(UTF8BOM):], EncodingUTF8BOM, nil
	case bytes.HasPrefix(data, UTF16LEBOM):
		out, err := utf16Encoding(unicode.LittleEndian).NewDecoder().Bytes(data)
		return out, EncodingUTF16LE, err
	case bytes.HasPrefix(data, UTF16BEBOM):
		out, err := utf16Encoding(unicode.BigEndian).NewDecoder().Bytes(data)
		return out, EncodingUTF16BE, err
	default:
		return data, EncodingUTF8, nil
	}
}

// encodeOutput converts rendered UTF-8 text back to enc.
func encodeOutput(text []byte, enc string) []byte {
	switch enc {
	case EncodingUTF8BOM:
		out := make([]byte, 0, len(UTF8BOM)+len(text))
		return append(append(out, UTF8BOM...), text...)
	case EncodingUTF16LE, EncodingUTF16BE:
		order := unicode.LittleEndian
		if enc == EncodingUTF16BE {
			order = unicode.BigEndian
		}
		out, err := utf16Encoding(order).NewEncoder().Bytes(text)
		if err != nil {
			// The UTF-16 encoder substitutes invalid input, so this does
			// not happen in practice; keep the text rather than lose it.
			return text
		}
		return out
	default:
		return text
	}
}

// utf16Encoding strips the BOM on decode and writes it on encode.
func utf16Encoding(order unicode.Endianness) encoding.Encoding {
	return unicode.UTF16(order, unicode.UseBOM)
}
