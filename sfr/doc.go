// Package sfr decodes the fixed-width stream-network output written by the
// stream routing package.
//
// The file is a sequence of blocks, one per output time step. Every block
// holds HeaderLines lines of boilerplate followed by one line per reach, in
// network order:
//
//	LAYER ROW COL SEG RCH  FLOW-IN  LOSS  FLOW-OUT ...
//	    1   3   7   1   1  12.5     0.1   12.4     ...
//
// The first SkipColumns tokens of a data line identify the reach and are
// discarded; the rest are the variables listed in Variables.
//
// A leading steady-state block is usually present and skipped with
// WithSkippedSteps. In aggregated mode only the outlet reach of every river
// is decoded, so the spatial axis has one unit per river.
package sfr
