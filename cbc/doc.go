// Package cbc decodes binary cell-budget result files.
//
// A file is a flat sequence of records. Each record carries a 32-byte header
// followed by NVAL single precision values, one per active cell:
//
//	offset  size  field
//	0       4     KSTP   time step within the stress period (>= 1)
//	4       4     KPER   stress period (>= 1)
//	8       16    TEXT   variable name, space padded
//	24      4     ILAY   layer (1-based)
//	28      4     NVAL   value count
//	32      4*N   values
//
// Consecutive records sharing (KPER, KSTP) belong to the same output time
// step. The byte order is not recorded in the file; it defaults to little
// endian and is selected with WithByteOrder.
//
// Reader.Scan walks headers only and seeks over payloads. Reader.Decode
// streams payloads into a cube.DataCube, stopping at the first malformed or
// truncated record and keeping everything decoded before it.
package cbc
