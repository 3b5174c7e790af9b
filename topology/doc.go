// Package topology describes the spatial collaborators a data package reads
// from: the active-cell grid behind cell-budget results and the river network
// behind stream-routing output.
//
// The types are plain data supplied by the caller. Packages borrow them for
// the duration of a load and never mutate them.
package topology
