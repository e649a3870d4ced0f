package jsonvalue

import "io"

// Public entry points, adapted from the teacher's api.go (which stubbed
// Valid/Marshal/Unmarshal against its channel-based parser).

// ParseReader reads r to completion and parses the result, the way the
// teacher's NewJSON(io.Reader) did against its streaming lexer. The
// parser itself works over a byte slice rather than a stream, so this is
// a ReadAll followed by Parse rather than genuine incremental decoding.
func ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, err
	}
	return Parse(data)
}

// Parse parses data as a single JSON document using DefaultConfig.
func Parse(data []byte) (Value, error) {
	return parseDocument(DefaultConfig(), data)
}

// ParseWithConfig parses data using cfg, after filling in any zero-valued
// fields via ValidateConfig.
func ParseWithConfig(cfg Config, data []byte) (Value, error) {
	if err := ValidateConfig(&cfg); err != nil {
		return Value{}, err
	}
	return parseDocument(cfg, data)
}

// Valid reports whether data is a single valid JSON document.
func Valid(data []byte) bool {
	_, err := Parse(data)
	return err == nil
}

// Marshal converts a Go value to its JSON encoding via NewJSONGo, the
// jsonvalue equivalent of encoding/json.Marshal.
func Marshal(v interface{}) ([]byte, error) {
	val, err := NewJSONGo(v)
	if err != nil {
		return nil, err
	}
	return AppendCompact(nil, val), nil
}

// MarshalIndent is Marshal with AppendIndent's pretty formatting.
func MarshalIndent(v interface{}, indent string) ([]byte, error) {
	val, err := NewJSONGo(v)
	if err != nil {
		return nil, err
	}
	return AppendIndent(nil, val, indent), nil
}

// Unmarshal parses data and writes the result into v, the jsonvalue
// equivalent of encoding/json.Unmarshal.
func Unmarshal(data []byte, v interface{}) error {
	val, err := Parse(data)
	if err != nil {
		return err
	}
	return val.JSON2Go(v)
}
