// Package video bridges bitfx frame streams to ffmpeg.
//
// Key types:
//   - Info: stream geometry and frame rate reported by ffprobe
//   - Decoder: an ffmpeg child process emitting rgb24 frames, exposed as a
//     bitfx.FrameStream
//   - Encoder: an ffmpeg child process consuming rgb24 frames and writing
//     H.264 (yuv420p), exposed as a bitfx.FrameSink
//
// FrameReader and FrameWriter hold the raw-video framing logic and work on
// any io.Reader or io.Writer, so they can be tested without ffmpeg.
//
// Primary entry points:
//   - Probe: executes ffprobe and returns Info for the first video stream
//   - NewDecoder, NewEncoder: start the ffmpeg processes
package video
