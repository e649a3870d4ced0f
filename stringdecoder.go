package jsonvalue

// String decoder (component C4), grounded on the ASCII/DQUOTE/C0/C1/
// BACKSLASH/UTF8_2/UTF8_3/UTF8_4/UTF8_3_E0/UTF8_3_ED/UTF8_4_F0/EVILUTF8/
// BADUTF8 switch of original_source/json.cpp's string-decoding loop.
// decodeString is entered with data[start] the byte right after the
// opening '"' and scans to (and past) the closing '"', validating and
// copying bytes into a scratch buffer obtained from alloc.

// decodeString decodes a JSON string body. On success end is the offset
// one byte past the closing '"'; on failure it is an offset inside the
// failing token (the offending byte, or just past it for some escape
// errors), so the caller can build a ParseError from it directly.
func decodeString(data []byte, start int, alloc Allocator) (value Value, end int, status Status) {
	buf := alloc.Get(16)
	i := start
	for {
		if i >= len(data) {
			return Value{}, i, StatusUnexpectedEndOfString
		}
		b := data[i]
		switch charClass[b] {
		case classDQuote:
			return newOwnedString(buf, alloc), i + 1, StatusSuccess
		case classASCII:
			buf = append(buf, b)
			i++
		case classBackslash:
			var decoded Status
			buf, i, decoded = decodeEscape(data, i+1, buf)
			if decoded != StatusSuccess {
				return Value{}, i, decoded
			}
		case classC0:
			if b == 0x7F {
				buf = append(buf, b)
				i++
				continue
			}
			return Value{}, i, StatusNonDelC0ControlCodeInString
		case classC1:
			return Value{}, i, StatusC1ControlCodeInString
		case classEvilUTF8:
			return Value{}, i, StatusOverlongASCII
		case classBadUTF8:
			return Value{}, i, StatusMalformedUTF8
		case classUTF8_3_ED:
			var decoded Status
			buf, i, decoded = decodeRawSurrogateRun(data, i, buf)
			if decoded != StatusSuccess {
				return Value{}, i, decoded
			}
		case classUTF8_2, classUTF8_3, classUTF8_3_E0, classUTF8_4, classUTF8_4_F0:
			r, size, rstatus := decodeRune(data[i:])
			if rstatus != StatusSuccess {
				return Value{}, i, rstatus
			}
			_ = r
			buf = append(buf, data[i:i+size]...)
			i += size
		default:
			return Value{}, i, StatusMalformedUTF8
		}
	}
}

// decodeEscape decodes one escape sequence starting right after the '\',
// appending its decoded bytes to buf. It returns the advanced buffer, the
// offset just past the escape, and a status.
func decodeEscape(data []byte, i int, buf []byte) ([]byte, int, Status) {
	if i >= len(data) {
		return buf, i, StatusUnexpectedEndOfString
	}
	c := data[i]
	if c >= 0x80 {
		return buf, i, StatusInvalidEscapeCharacter
	}
	switch escapeClass[c] {
	case escapeDQuote:
		return append(buf, '"'), i + 1, StatusSuccess
	case escapeBackslash:
		return append(buf, '\\'), i + 1, StatusSuccess
	case escapeSlash:
		return append(buf, '/'), i + 1, StatusSuccess
	case escapeBackspace:
		return append(buf, '\b'), i + 1, StatusSuccess
	case escapeFormFeed:
		return append(buf, '\f'), i + 1, StatusSuccess
	case escapeNewline:
		return append(buf, '\n'), i + 1, StatusSuccess
	case escapeCR:
		return append(buf, '\r'), i + 1, StatusSuccess
	case escapeTab:
		return append(buf, '\t'), i + 1, StatusSuccess
	case escapeXHex:
		return decodeHexByteEscape(data, i+1, buf)
	case escapeUHex:
		return decodeUnicodeEscape(data, i+1, buf)
	default:
		return buf, i, StatusInvalidEscapeCharacter
	}
}

// decodeHexByteEscape decodes the two hex digits of a non-standard \xHH
// escape (kept from original_source's kEscapeLiteral table) into a single
// byte, rejecting values that aren't printable ASCII.
func decodeHexByteEscape(data []byte, i int, buf []byte) ([]byte, int, Status) {
	if i+2 > len(data) {
		return buf, len(data), StatusUnexpectedEndOfString
	}
	hi, lo := hexDigit(data[i]), hexDigit(data[i+1])
	if hi < 0 || lo < 0 {
		return buf, i, StatusInvalidHexEscape
	}
	v := byte(hi<<4 | lo)
	if v < 0x20 || v >= 0x7F {
		return buf, i + 2, StatusHexEscapeNotPrintable
	}
	return append(buf, v), i + 2, StatusSuccess
}

// decodeUnicodeEscape decodes a \uXXXX escape, pairing surrogates and
// tolerating an unpaired one by echoing the literal two bytes "\u" and
// leaving the four hex digits themselves unconsumed, to be re-scanned as
// plain string bytes on the next iteration of decodeString's loop. This
// is BadUnicode() in original_source/json.cpp: on every lone/invalid
// surrogate path it appends "\u" without ever advancing p past the
// digits, so the digits fall through to the ASCII case. A caller is
// entered with i pointing at the first of the four hex digits (the '\'
// and 'u' have already been consumed by decodeEscape).
func decodeUnicodeEscape(data []byte, i int, buf []byte) ([]byte, int, Status) {
	r1, next, status := decodeHex4(data, i)
	if status != StatusSuccess {
		return buf, next, status
	}
	if !isSurrogate(rune(r1)) {
		var tmp [4]byte
		n := encodeRune(tmp[:], rune(r1))
		return append(buf, tmp[:n]...), next, StatusSuccess
	}
	if r1 < 0xDC00 { // high surrogate: look for a following \uXXXX low surrogate
		if next+1 < len(data) && data[next] == '\\' && data[next+1] == 'u' {
			r2, next2, status2 := decodeHex4(data, next+2)
			if status2 == StatusSuccess && r2 >= 0xDC00 && r2 <= 0xDFFF {
				combined := 0x10000 + (r1-0xD800)<<10 + (r2 - 0xDC00)
				var tmp [4]byte
				n := encodeRune(tmp[:], rune(combined))
				return append(buf, tmp[:n]...), next2, StatusSuccess
			}
		}
	}
	// Lone high surrogate (no valid pair follows) or a low surrogate seen
	// on its own: echo "\u" and leave the digits at i unconsumed.
	return append(buf, '\\', 'u'), i, StatusSuccess
}

func decodeHex4(data []byte, i int) (uint32, int, Status) {
	if i+4 > len(data) {
		return 0, len(data), StatusUnexpectedEndOfString
	}
	var v uint32
	for k := 0; k < 4; k++ {
		d := hexDigit(data[i+k])
		if d < 0 {
			return 0, i + k, StatusInvalidUnicodeEscape
		}
		v = v<<4 | uint32(d)
	}
	return v, i + 4, StatusSuccess
}

func hexDigit(b byte) int {
	return int(hexToInt[b])
}

// decodeRawSurrogateRun handles a raw (non-escaped) UTF-8 sequence whose
// leading byte is 0xED, classified classUTF8_3_ED. That leader's 3-byte
// range spans U+D000..U+DFFF: the lower half (D000..D7FF) is ordinary
// text, the upper half is the UTF-16 surrogate range, which raw UTF-8
// must never encode directly. A high surrogate immediately followed by
// another 0xED-led sequence encoding its low half is the CESU-8
// compatibility form spec §4.4 calls out; it is merged into the single
// supplementary code point it represents. Any other surrogate encoding
// fails. data[i] is the 0xED byte itself.
func decodeRawSurrogateRun(data []byte, i int, buf []byte) ([]byte, int, Status) {
	r1, ok := decode3ByteRun(data, i)
	if !ok {
		return buf, i, StatusMalformedUTF8
	}
	if !isSurrogate(r1) {
		return append(buf, data[i:i+3]...), i + 3, StatusSuccess
	}
	if r1 < 0xDC00 && i+6 <= len(data) && data[i+3] == 0xED {
		if r2, ok2 := decode3ByteRun(data, i+3); ok2 && r2 >= 0xDC00 && r2 <= 0xDFFF {
			combined := 0x10000 + (r1-0xD800)<<10 + (r2 - 0xDC00)
			var tmp [4]byte
			n := encodeRune(tmp[:], combined)
			return append(buf, tmp[:n]...), i + 6, StatusSuccess
		}
	}
	return buf, i + 3, StatusUTF16SurrogateInUTF8
}

// decode3ByteRun decodes the raw (unchecked-for-surrogate) 3-byte UTF-8
// sequence at data[i:i+3], returning false if the continuation bytes are
// missing or malformed.
func decode3ByteRun(data []byte, i int) (rune, bool) {
	if i+3 > len(data) || !isContinuation(data[i+1]) || !isContinuation(data[i+2]) {
		return 0, false
	}
	r := rune(data[i]&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
	return r, true
}
