// Package datapkg drives the loading of one result file into a data cube.
//
// A Package moves through a small state machine:
//
//	Standby --Initialize--> Ready --Load--> Loading --> Loaded | Error
//	   ^                                                   |
//	   +---------------------------Clear-------------------+
//
// Initialize binds the owning model (grid and river network) and a calendar
// snapshot. Scan probes the file for variables and step count without
// allocating the cube. Load and LoadVariable stream the file through the
// decoder selected by Format and report one terminal format.LoadingState.
//
// Decode problems never surface as errors: a truncated, malformed or short
// file loads its valid prefix and reports Warning. A missing file reports
// FatalError, as does a read failure while decoding, which also moves the
// package to Error. Errors are returned only for misuse, such as loading while
// a load is in progress or before Initialize.
package datapkg
