package binarydecoder

// ElementKind names the scalar wire type a registry entry decodes before any
// arity grouping or scale is applied.
type ElementKind int

const (
	ElementU8 ElementKind = iota
	ElementI8
	ElementU16
	ElementI16
	ElementU32
	ElementI32
	ElementU64
	ElementI64
	ElementF32
	ElementF64
	ElementBool
	ElementNibble // packed ADPCM nibbles, arity-less
)

// PayloadKind discriminates the Payload variants a typed decoder can
// produce, replacing the source's dict-of-heterogeneous-arrays with an
// explicit Go sum type (see spec.md §9's "dynamic typing to sum types").
type PayloadKind int

const (
	PayloadScalar PayloadKind = iota
	PayloadVector
	PayloadMatrix
	PayloadText
	PayloadBytes
	PayloadImageGray8
	PayloadImageRgb8
	PayloadImageRgba8
	PayloadAudioMono16
	PayloadAudioStereo16
)

// Payload is the decoded body of one Sample. Exactly the fields relevant to
// Kind are populated; callers switch on Kind before reading them.
type Payload struct {
	Kind PayloadKind

	Scalar float64
	Vector []float64

	Matrix     []float64
	MatrixRows int
	MatrixCols int

	Text  []string
	Bytes []byte

	ImageWidth, ImageHeight int
	ImageGray               []byte
	ImageRgb                []byte // interleaved R,G,B
	ImageRgba               []byte // interleaved R,G,B,A

	AudioChannels int
	AudioSamples  []int16 // interleaved when AudioChannels == 2
}
