// Package timeline carries the simulation calendar into the loading code and
// derives daily series from results stored at other time units.
//
// A Calendar is a value snapshot. Packages receive it when they are
// initialized and get a fresh one through an explicit resync when the model
// calendar changes; nothing in this package keeps listeners.
package timeline
