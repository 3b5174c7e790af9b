// Package compress opens result files stored inside a compression container.
//
// Model runs producing multi-gigabyte budget files are routinely archived as
// zstd, s2, lz4 or gzip streams. The codecs here wrap an io.Reader so decoders
// stream straight out of the compressed file without an intermediate copy.
// Compressed streams are not seekable; readers fall back to discarding bytes
// when they skip records.
//
// The zstd codec uses github.com/klauspost/compress by default. Building with
// the "gozstd" tag (and cgo) switches it to github.com/valyala/gozstd.
package compress
