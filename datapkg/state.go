package datapkg

import "github.com/arloliu/hydrocube/topology"

// State is the lifecycle state of a Package.
type State uint8

const (
	Standby State = iota
	Ready
	Loading
	Loaded
	Error
)

func (s State) String() string {
	switch s {
	case Standby:
		return "Standby"
	case Ready:
		return "Ready"
	case Loading:
		return "Loading"
	case Loaded:
		return "Loaded"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// Owner supplies the spatial collaborators of a package. The package only
// borrows them and drops the reference on Clear.
type Owner interface {
	// Grid returns the model grid, or nil when the model has none.
	Grid() *topology.Grid
	// Network returns the river network, or nil when the model has none.
	Network() *topology.Network
}

// StaticOwner is an Owner over fixed collaborators.
type StaticOwner struct {
	G *topology.Grid
	N *topology.Network
}

func (o StaticOwner) Grid() *topology.Grid       { return o.G }
func (o StaticOwner) Network() *topology.Network { return o.N }
