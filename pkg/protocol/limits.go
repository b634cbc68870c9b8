package protocol

const (
	// MaxFrameSize bounds an incoming event frame in bytes.
	MaxFrameSize = 4 << 10

	// MaxTargetLength bounds the length of an event target id.
	MaxTargetLength = 128

	// MaxKeyLength bounds the length of a keyboard key value.
	MaxKeyLength = 32
)
