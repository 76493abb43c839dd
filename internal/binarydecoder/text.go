package binarydecoder

import "bytes"

// decodeText splits tag 0's body on NUL bytes, returning each segment as a
// separate string (the original returns one token per NUL-separated run,
// not one joined blob — a behavior this module keeps per SPEC_FULL.md §6).
func decodeText(body []byte, _ *BinaryDecoder) (Payload, error) {
	if len(body) == 0 {
		return Payload{Kind: PayloadText, Text: nil}, nil
	}

	var trimmed = body
	if trimmed[len(trimmed)-1] == 0 {
		trimmed = trimmed[:len(trimmed)-1]
	}

	var parts = bytes.Split(trimmed, []byte{0})
	var out = make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}

	return Payload{Kind: PayloadText, Text: out}, nil
}

// decodeBytes returns tag 2's body verbatim as an opaque byte blob.
func decodeBytes(body []byte, _ *BinaryDecoder) (Payload, error) {
	var out = make([]byte, len(body))
	copy(out, body)
	return Payload{Kind: PayloadBytes, Bytes: out}, nil
}
