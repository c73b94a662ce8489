// Package main hosts the bitfx command.
//
// "bitfx image" and "bitfx video" run the same overlay pipeline over a still
// image or an ffmpeg-decoded video. Configuration comes from a TOML file
// (see "bitfx config init") with command-line flags taking precedence.
package main
