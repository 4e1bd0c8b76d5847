// Package ffmpeg wraps the external ffmpeg binary behind a small Runner
// interface. It builds argument lists for the supported operations
// (timelapse resampling and MP4 remuxing), runs the process with captured
// stderr, and performs a free-space preflight on the output directory
// before encoding.
package ffmpeg
