package sfr

// Variable describes one value column of a data line.
type Variable struct {
	Abbr string
	Name string
}

// Variables lists the value columns in file order.
var Variables = []Variable{
	{"FlowIn", "Flow into stream"},
	{"FlowLoss", "Stream loss"},
	{"FlowOut", "Flow out of stream"},
	{"Runoff", "Overland runoff"},
	{"RiverRain", "Direct precipitation"},
	{"RiverET", "Stream ET"},
	{"RiverHead", "Stream head"},
	{"RiverDepth", "Stream depth"},
	{"RiverWidth", "Stream width"},
	{"RivConduct", "Stream conductance"},
	{"FlowToGW", "Flow to water table"},
	{"UnsatStor", "Change of unsat. stor."},
	{"GWHead", "Groundwater head"},
}

// VariableNames returns the abbreviations of Variables.
func VariableNames() []string {
	names := make([]string, len(Variables))
	for i, v := range Variables {
		names[i] = v.Abbr
	}

	return names
}
