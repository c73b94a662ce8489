package video

import "errors"

// Sentinel errors for the video package.
var (
	// ErrNoVideoStream is returned when the input has no video stream.
	ErrNoVideoStream = errors.New("video: no video stream")

	// ErrShortFrame is returned when the decoder output ends inside a frame.
	ErrShortFrame = errors.New("video: short frame")

	// ErrFrameSize is returned when a frame does not match the stream size.
	ErrFrameSize = errors.New("video: frame size mismatch")

	// ErrTimestampOrder is returned when frame timestamps do not increase.
	ErrTimestampOrder = errors.New("video: non-increasing timestamp")

	// ErrInvalidRate is returned for a missing or non-positive frame rate.
	ErrInvalidRate = errors.New("video: invalid frame rate")

	// ErrVariableFrameRate is returned for a stream whose frames are not
	// evenly spaced. Frames are re-timed at a single output rate, so such a
	// stream cannot keep its original timestamps.
	ErrVariableFrameRate = errors.New("video: variable frame rate")

	// ErrClosed is returned when writing to a closed encoder.
	ErrClosed = errors.New("video: closed")
)
