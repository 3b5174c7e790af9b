package cbc

// DefaultVariables are the budget terms written by a typical model run, in
// the order they appear in a cell-budget file.
var DefaultVariables = []string{
	"FLOW RIGHT FACE",
	"FLOW FRONT FACE",
	"FLOW LOWER FACE",
	"STREAM LEAKAGE",
	"UZF RECHARGE",
	"SURFACE LEAKAGE",
	"GW ET",
	"CONSTANT HEAD",
}
