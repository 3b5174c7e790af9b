// Package format holds the small closed enumerations shared across hydrocube:
// result file formats, compression containers and terminal loading states.
package format
