package datapkg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arloliu/hydrocube/cbc"
	"github.com/arloliu/hydrocube/compress"
	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/progress"
	"github.com/arloliu/hydrocube/sfr"
	"github.com/arloliu/hydrocube/timeline"
	"github.com/arloliu/hydrocube/topology"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	budgetVar = []string{"FLOW RIGHT FACE", "STREAM LEAKAGE"}
)

func writeCBC(t *testing.T, path string, vars []string, steps, cells int, val func(s, v, c int) float32) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := cbc.NewWriter(f, nil)
	for s := range steps {
		for v, name := range vars {
			values := make([]float32, cells)
			for c := range values {
				values[c] = val(s, v, c)
			}
			hdr := cbc.Header{Step: int32(s + 1), Period: 1, Text: name, Layer: 1} //nolint: gosec
			require.NoError(t, w.WriteRecord(hdr, values))
		}
	}
}

// writeSFR renders blocks blocks, the first being the steady-state block.
func writeSFR(t *testing.T, path string, network *topology.Network, blocks int, val func(b, serial, v int) float64) {
	t.Helper()

	var sb strings.Builder
	for b := range blocks {
		for k := range sfr.HeaderLines {
			fmt.Fprintf(&sb, " STREAM LISTING PERIOD 1 STEP %d line %d\n", b+1, k+1)
		}
		serial := 0
		for _, river := range network.Rivers {
			for _, rch := range river.Reaches {
				fmt.Fprintf(&sb, "%5d%5d%5d%5d%5d", 1, 1, serial+1, river.ID, rch.SubID)
				for v := range sfr.Variables {
					fmt.Fprintf(&sb, " %12.4f", val(b, serial, v))
				}
				sb.WriteString("\n")
				serial++
			}
		}
	}
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o600))
}

func budgetValue(s, v, c int) float32 {
	return float32(1000*(s+1) + 100*v + c)
}

func newLogger() (*logrus.Logger, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	return log, hook
}

func newBudgetPackage(t *testing.T, steps int) (*Package, *logtest.Hook, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "model.cbc")
	writeCBC(t, path, budgetVar, steps, 4, budgetValue)

	log, hook := newLogger()
	p, err := New("CBC", path, format.Binary, WithLogger(log))
	require.NoError(t, err)

	owner := StaticOwner{G: topology.NewRegularGrid(2, 2, 1)}
	require.NoError(t, p.Initialize(owner, timeline.NewDaily(testStart, steps)))

	return p, hook, path
}

func TestNew(t *testing.T) {
	p, err := New("cbc", "out.cbc.zst", format.Binary)
	require.NoError(t, err)
	require.Equal(t, Standby, p.State())
	require.Equal(t, format.CompressionZstd, p.Compression)
	require.Equal(t, cbc.DefaultVariables, p.Variables)
	require.InDelta(t, 1.0, p.ScaleFactor, 0)
	require.Equal(t, 1, p.SkippedSteps)

	p, err = New("sfr", "sfr.out", format.Text)
	require.NoError(t, err)
	require.Len(t, p.Variables, len(sfr.Variables))

	_, err = New("bad", "x", format.FileFormat(9))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	_, err = New("bad", "x", format.Binary, WithLayer(-1))
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
}

func TestPackage_Lifecycle(t *testing.T) {
	p, err := New("cbc", "missing.cbc", format.Binary)
	require.NoError(t, err)

	_, err = p.Load(nil)
	require.ErrorIs(t, err, errs.ErrNotInitialized)
	_, err = p.Scan()
	require.ErrorIs(t, err, errs.ErrNotInitialized)
	require.ErrorIs(t, p.Resync(timeline.NewDaily(testStart, 1)), errs.ErrNotInitialized)

	require.ErrorIs(t, p.Initialize(nil, timeline.NewDaily(testStart, 1)), errs.ErrInvalidConfiguration)

	cal := timeline.NewDaily(testStart, 5)
	require.NoError(t, p.Initialize(StaticOwner{}, cal))
	require.Equal(t, Ready, p.State())
	require.Equal(t, 5, p.NumTimeStep())
	require.Equal(t, cal.Start, p.StartOfLoading())
	require.Equal(t, cal.End, p.EndOfLoading())

	require.NoError(t, p.Resync(timeline.NewDaily(testStart, 7)))
	require.Equal(t, 7, p.NumTimeStep())

	p.Clear()
	require.Equal(t, Standby, p.State())
	require.Zero(t, p.NumTimeStep())
	p.Clear()
	require.Equal(t, Standby, p.State())
}

func TestPackage_StepsToLoad(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 6)
	require.Equal(t, 6, p.StepsToLoad())

	p.MaxTimeStep = 4
	require.Equal(t, 4, p.StepsToLoad())

	p.MaxTimeStep = 10
	require.Equal(t, 6, p.StepsToLoad())
}

func TestPackage_ScanBinary(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 3)

	ok, err := p.Scan()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, budgetVar, p.Variables)
	require.Equal(t, 3, p.NumTimeStep())
	require.Equal(t, 3, p.MaxTimeStep)
	require.Equal(t, 1, p.NumLayer())
	require.Nil(t, p.DataCube())
	require.Equal(t, Ready, p.State())
}

func TestPackage_ScanMissingFile(t *testing.T) {
	p, err := New("cbc", filepath.Join(t.TempDir(), "nope.cbc"), format.Binary)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(StaticOwner{}, timeline.NewDaily(testStart, 4)))

	ok, err := p.Scan()
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, Ready, p.State())
	require.Equal(t, 4, p.NumTimeStep())
	require.Equal(t, cbc.DefaultVariables, p.Variables)
}

func TestPackage_LoadBinary(t *testing.T) {
	p, hook, _ := newBudgetPackage(t, 3)
	_, err := p.Scan()
	require.NoError(t, err)
	hook.Reset()

	var last int
	h := progress.Funcs{OnProgress: func(pct int) { last = pct }}

	state, err := p.Load(h)
	require.NoError(t, err)
	require.Equal(t, format.Normal, state)
	require.Equal(t, Loaded, p.State())
	require.Equal(t, 100, last)
	require.NotEmpty(t, p.Message())

	c := p.DataCube()
	require.Equal(t, [3]int{2, 3, 4}, c.Size())
	require.Equal(t, budgetVar, c.Variables)
	require.Equal(t, timeline.NewDaily(testStart, 3).IOTimeline, c.DateTimes)
	require.NotNil(t, c.Topology)
	require.Equal(t, topology.KindGrid, c.Topology.Kind)
	require.True(t, c.TimeBrowsable)

	for s := range 3 {
		for v := range budgetVar {
			for cell := range 4 {
				got, err := c.Get(v, s, cell)
				require.NoError(t, err)
				require.Equal(t, budgetValue(s, v, cell), got)
			}
		}
	}

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
}

func TestPackage_LoadBinary_DecodeScale(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 1)
	p.DecodeScale = 0.5

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Normal, state)

	got, err := p.DataCube().Get(1, 0, 2)
	require.NoError(t, err)
	require.InDelta(t, budgetValue(0, 1, 2)/2, got, 1e-6)
}

func TestPackage_LoadTruncatedBinary(t *testing.T) {
	p, hook, path := newBudgetPackage(t, 3)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, fi.Size()-6))
	hook.Reset()

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Warning, state)
	require.Equal(t, Loaded, p.State())
	require.Contains(t, p.Message(), errs.ErrPrematureEOF.Error())

	c := p.DataCube()
	got, err := c.Get(0, 2, 3)
	require.NoError(t, err)
	require.Equal(t, budgetValue(2, 0, 3), got)

	// The cut record is not copied.
	row, err := c.Row(1, 2)
	require.NoError(t, err)
	require.Equal(t, []float32{0, 0, 0, 0}, row)

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPackage_LoadShortBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.cbc")
	writeCBC(t, path, budgetVar[:1], 3, 1, budgetValue)

	log, hook := newLogger()
	p, err := New("CBC", path, format.Binary, WithLogger(log), WithVariables(budgetVar[0]))
	require.NoError(t, err)
	require.NoError(t, p.Initialize(StaticOwner{G: &topology.Grid{ActiveCellCount: 1}}, timeline.NewDaily(testStart, 6)))

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Warning, state)
	require.Equal(t, Loaded, p.State())
	require.Contains(t, p.Message(), errs.ErrShortData.Error())

	series, err := p.GetTimeSeries(0, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1000, 2000, 3000, 0, 0, 0}, series.Values)

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPackage_LoadLayerOutOfRange(t *testing.T) {
	t.Run("checked against the grid", func(t *testing.T) {
		p, hook, _ := newBudgetPackage(t, 2)
		p.Layer = 3
		hook.Reset()

		state, err := p.Load(nil)
		require.NoError(t, err)
		require.Equal(t, format.Warning, state)
		require.Equal(t, Ready, p.State())
		require.Nil(t, p.DataCube())
		require.Contains(t, p.Message(), errs.ErrInvalidConfiguration.Error())
		require.Len(t, hook.AllEntries(), 1)
	})

	t.Run("checked against the scan", func(t *testing.T) {
		p, _, _ := newBudgetPackage(t, 2)
		require.NoError(t, p.Initialize(StaticOwner{G: &topology.Grid{ActiveCellCount: 4, LayerCount: 9}}, timeline.NewDaily(testStart, 2)))
		_, err := p.Scan()
		require.NoError(t, err)
		require.Equal(t, 1, p.NumLayer())
		p.Layer = 1

		state, err := p.Load(nil)
		require.NoError(t, err)
		require.Equal(t, format.Warning, state)
		require.Contains(t, p.Message(), errs.ErrInvalidConfiguration.Error())
	})

	t.Run("unknown layer count", func(t *testing.T) {
		p, _, _ := newBudgetPackage(t, 2)
		require.NoError(t, p.Initialize(StaticOwner{G: &topology.Grid{ActiveCellCount: 4}}, timeline.NewDaily(testStart, 2)))
		p.Layer = 3

		state, err := p.Load(nil)
		require.NoError(t, err)
		require.Equal(t, format.Warning, state)
		require.Equal(t, Loaded, p.State())
		require.Contains(t, p.Message(), errs.ErrShortData.Error())
	})
}

func TestPackage_LoadCorruptedArchive(t *testing.T) {
	plain := filepath.Join(t.TempDir(), "model.cbc")
	writeCBC(t, plain, budgetVar, 2, 4, budgetValue)
	raw, err := os.ReadFile(plain)
	require.NoError(t, err)

	var buf bytes.Buffer
	gw, err := compress.NewGzipCodec().NewWriter(&buf)
	require.NoError(t, err)
	_, err = gw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	// The trailer ends with CRC-32 then ISIZE, 4 bytes each.
	data := buf.Bytes()
	data[len(data)-8] ^= 0xff
	path := plain + ".gz"
	require.NoError(t, os.WriteFile(path, data, 0o600))

	log, hook := newLogger()
	p, err := New("CBC", path, format.Binary, WithLogger(log))
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, p.Compression)
	require.NoError(t, p.Initialize(StaticOwner{G: topology.NewRegularGrid(2, 2, 1)}, timeline.NewDaily(testStart, 2)))

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.FatalError, state)
	require.Equal(t, Error, p.State())
	require.Contains(t, p.Message(), "checksum")
	require.NotNil(t, p.DataCube())

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestPackage_ClearDuringLoadIsIgnored(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 2)

	h := progress.Funcs{
		OnReport: func(string, int, string) { p.Clear() },
	}

	state, err := p.Load(h)
	require.NoError(t, err)
	require.Equal(t, format.Normal, state)
	require.Equal(t, Loaded, p.State())
	require.NotNil(t, p.DataCube())

	got, err := p.DataCube().Get(1, 1, 3)
	require.NoError(t, err)
	require.Equal(t, budgetValue(1, 1, 3), got)

	p.Clear()
	require.Equal(t, Standby, p.State())
	require.Nil(t, p.DataCube())
}

func TestPackage_LoadMissingFile(t *testing.T) {
	p, hook, path := newBudgetPackage(t, 2)
	require.NoError(t, os.Remove(path))
	hook.Reset()

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.FatalError, state)
	require.Equal(t, Ready, p.State())
	require.Nil(t, p.DataCube())
	require.Contains(t, p.Message(), errs.ErrFileNotFound.Error())
	require.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestPackage_LoadTopologyMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.cbc")
	writeCBC(t, path, budgetVar, 1, 4, budgetValue)

	log, _ := newLogger()
	p, err := New("cbc", path, format.Binary, WithLogger(log))
	require.NoError(t, err)
	require.NoError(t, p.Initialize(StaticOwner{}, timeline.NewDaily(testStart, 1)))

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Warning, state)
	require.Equal(t, Ready, p.State())
	require.Nil(t, p.DataCube())
	require.Contains(t, p.Message(), errs.ErrTopologyMissing.Error())
}

func TestPackage_LoadAllocationFailureKeepsCube(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 3)

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Normal, state)
	before := p.DataCube()

	// Room for one variable of 3×4 float32 values but not two.
	p.MemoryLimit = 60
	state, err = p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Warning, state)
	require.Equal(t, Loaded, p.State())
	require.Same(t, before, p.DataCube())
	require.Contains(t, p.Message(), errs.ErrAllocationFailure.Error())
}

func TestPackage_LoadWhileLoading(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 2)

	var nested []error
	h := progress.Funcs{
		OnReport: func(string, int, string) {
			_, err := p.Load(nil)
			nested = append(nested, err)
			_, err = p.LoadVariable(0, nil)
			nested = append(nested, err)
		},
	}

	state, err := p.Load(h)
	require.NoError(t, err)
	require.Equal(t, format.Normal, state)
	require.NotEmpty(t, nested)
	for _, err := range nested {
		require.ErrorIs(t, err, errs.ErrAlreadyLoading)
	}
}

func TestPackage_LoadVariable(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 3)
	_, err := p.Scan()
	require.NoError(t, err)

	_, err = p.LoadVariable(5, nil)
	require.ErrorIs(t, err, errs.ErrInvalidConfiguration)

	state, err := p.LoadVariable(1, nil)
	require.NoError(t, err)
	require.Equal(t, format.Normal, state)
	first := p.DataCube()
	require.True(t, first.IsAllocated(1))
	require.False(t, first.IsAllocated(0))

	state, err = p.LoadVariable(0, nil)
	require.NoError(t, err)
	require.Equal(t, format.Normal, state)
	require.Same(t, first, p.DataCube())
	require.Equal(t, 2, first.AllocatedCount())

	got, err := first.Get(1, 2, 1)
	require.NoError(t, err)
	require.Equal(t, budgetValue(2, 1, 1), got)

	// A full load always starts over.
	_, err = p.Load(nil)
	require.NoError(t, err)
	require.NotSame(t, first, p.DataCube())
}

func TestPackage_ClearAndReloadHasNoStaleData(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 3)
	_, err := p.Load(nil)
	require.NoError(t, err)

	other := filepath.Join(t.TempDir(), "other.cbc")
	writeCBC(t, other, budgetVar, 1, 4, func(s, v, c int) float32 { return -1 })

	p.Clear()
	require.Nil(t, p.DataCube())

	p.FileName = other
	require.NoError(t, p.Initialize(StaticOwner{G: topology.NewRegularGrid(2, 2, 1)}, timeline.NewDaily(testStart, 3)))
	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Warning, state)
	require.Equal(t, Loaded, p.State())
	require.Contains(t, p.Message(), errs.ErrShortData.Error())

	c := p.DataCube()
	for v := range budgetVar {
		for s := range 3 {
			row, err := c.Row(v, s)
			require.NoError(t, err)
			want := float32(0)
			if s == 0 {
				want = -1
			}
			for _, x := range row {
				require.Equal(t, want, x)
			}
		}
	}
}

func TestPackage_GetTimeSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.cbc")
	writeCBC(t, path, []string{"GW ET"}, 3, 1, func(s, _, _ int) float32 { return float32(s + 1) })

	log, _ := newLogger()
	p, err := New("et", path, format.Binary,
		WithLogger(log), WithVariables("GW ET"), WithScaleFactor(2), WithOffset(1))
	require.NoError(t, err)
	require.NoError(t, p.Initialize(StaticOwner{G: &topology.Grid{ActiveCellCount: 1}}, timeline.NewDaily(testStart, 3)))

	_, err = p.GetTimeSeries(0, 0)
	require.ErrorIs(t, err, errs.ErrNotLoaded)

	_, err = p.Load(nil)
	require.NoError(t, err)

	s, err := p.GetTimeSeries(0, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5, 7}, s.Values)
	require.Equal(t, timeline.NewDaily(testStart, 3).IOTimeline, s.Dates)

	_, err = p.GetTimeSeries(1, 0)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestPackage_GetTimeSeries_NotAllocated(t *testing.T) {
	p, _, _ := newBudgetPackage(t, 2)
	_, err := p.Scan()
	require.NoError(t, err)
	_, err = p.LoadVariable(0, nil)
	require.NoError(t, err)

	_, err = p.GetTimeSeries(0, 1)
	require.ErrorIs(t, err, errs.ErrNotAllocated)
}

func TestPackage_GetTimeSeries_HourlyDerivation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hourly.cbc")
	writeCBC(t, path, []string{"STORAGE"}, 48, 1, func(s, _, _ int) float32 {
		if s < 24 {
			return 1
		}

		return 3
	})

	tests := []struct {
		dt   timeline.NumericalDataType
		want []float64
	}{
		{timeline.Average, []float64{1, 3}},
		{timeline.Cumulative, []float64{24, 72}},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			log, _ := newLogger()
			p, err := New("storage", path, format.Binary, WithLogger(log), WithVariables("STORAGE"),
				WithNativeUnit(timeline.Hour), WithDataType(tt.dt))
			require.NoError(t, err)
			require.NoError(t, p.Initialize(StaticOwner{G: &topology.Grid{ActiveCellCount: 1}},
				timeline.NewUniform(testStart, 48, timeline.Hour)))

			_, err = p.Load(nil)
			require.NoError(t, err)

			s, err := p.GetTimeSeries(0, 0)
			require.NoError(t, err)
			require.Equal(t, tt.want, s.Values)
			require.Equal(t, []time.Time{testStart, testStart.AddDate(0, 0, 1)}, s.Dates)
		})
	}
}

func sfrValue(b, serial, v int) float64 {
	return float64(100*b + 10*serial + v)
}

func newStreamPackage(t *testing.T, network *topology.Network, steps int, complete bool, val func(b, serial, v int) float64) *Package {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sfr.out")
	writeSFR(t, path, network, steps+1, val)

	log, _ := newLogger()
	p, err := New("SFR", path, format.Text, WithLogger(log), WithCompleteData(complete))
	require.NoError(t, err)
	require.NoError(t, p.Initialize(StaticOwner{N: network}, timeline.NewDaily(testStart, steps)))

	return p
}

func TestPackage_ScanText(t *testing.T) {
	network := topology.NewUniformNetwork(3, 2, 10)
	p := newStreamPackage(t, network, 2, true, sfrValue)

	ok, err := p.Scan()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, p.NumTimeStep())

	p.IsReadSSData = true
	_, err = p.Scan()
	require.NoError(t, err)
	require.Equal(t, 3, p.NumTimeStep())
}

func TestPackage_ScanText_WithoutNetwork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sfr.out")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o600))

	p, err := New("SFR", path, format.Text)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(StaticOwner{}, timeline.NewDaily(testStart, 9)))

	ok, err := p.Scan()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 9, p.NumTimeStep())
}

func TestPackage_LoadText(t *testing.T) {
	network := topology.NewUniformNetwork(3, 2, 10)

	t.Run("full", func(t *testing.T) {
		p := newStreamPackage(t, network, 2, true, sfrValue)

		state, err := p.Load(nil)
		require.NoError(t, err)
		require.Equal(t, format.Normal, state)

		c := p.DataCube()
		require.Equal(t, [3]int{len(sfr.Variables), 2, 6}, c.Size())
		require.Equal(t, topology.KindReach, c.Topology.Kind)
		require.Equal(t, timeline.NewDaily(testStart, 2).Timeline, c.DateTimes)

		require.Equal(t, 6, p.ReachIndex().Len())
		require.Equal(t, 3, p.GetReachSerialIndex(2, 2))
		require.Equal(t, -1, p.GetReachSerialIndex(9, 1))

		idx, err := p.GetReachIndex(2, 1)
		require.NoError(t, err)
		require.Equal(t, 5, idx)
		_, err = p.GetReachIndex(3, 0)
		require.ErrorIs(t, err, errs.ErrReachNotFound)

		got, err := c.Get(4, 1, 5)
		require.NoError(t, err)
		require.InDelta(t, sfrValue(2, 5, 4), got, 1e-3)
	})

	t.Run("aggregated", func(t *testing.T) {
		p := newStreamPackage(t, network, 2, false, sfrValue)

		state, err := p.Load(nil)
		require.NoError(t, err)
		require.Equal(t, format.Normal, state)

		c := p.DataCube()
		require.Equal(t, [3]int{len(sfr.Variables), 2, 3}, c.Size())
		require.Equal(t, topology.KindSegment, c.Topology.Kind)
		require.Equal(t, 6, p.ReachIndex().Len())

		got, err := c.Get(0, 0, 2)
		require.NoError(t, err)
		require.InDelta(t, sfrValue(1, 5, 0), got, 1e-3)
	})

	t.Run("missing network", func(t *testing.T) {
		p := newStreamPackage(t, network, 2, true, sfrValue)
		require.NoError(t, p.Initialize(StaticOwner{}, timeline.NewDaily(testStart, 2)))

		state, err := p.Load(nil)
		require.NoError(t, err)
		require.Equal(t, format.Warning, state)
		require.Nil(t, p.DataCube())
	})
}

func TestPackage_LoadShortText(t *testing.T) {
	network := topology.NewUniformNetwork(1, 1, 10)
	path := filepath.Join(t.TempDir(), "sfr.out")
	writeSFR(t, path, network, 3, sfrValue)

	log, hook := newLogger()
	p, err := New("SFR", path, format.Text, WithLogger(log), WithCompleteData(true))
	require.NoError(t, err)
	require.NoError(t, p.Initialize(StaticOwner{N: network}, timeline.NewDaily(testStart, 5)))

	state, err := p.Load(nil)
	require.NoError(t, err)
	require.Equal(t, format.Warning, state)
	require.Equal(t, Loaded, p.State())
	require.Contains(t, p.Message(), errs.ErrShortData.Error())

	series, err := p.GetTimeSeries(0, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{100, 200, 0, 0, 0}, series.Values)

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestPackage_GetReachTimeSeries(t *testing.T) {
	network := topology.NewUniformNetwork(3, 2, 10)
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("full", func(t *testing.T) {
		p := newStreamPackage(t, network, 2, true, sfrValue)
		_, err := p.Load(nil)
		require.NoError(t, err)

		s, err := p.GetReachTimeSeries(1, 0, 1, start)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{sfrValue(1, 2, 1), sfrValue(2, 2, 1)}, s.Values, 1e-3)
		require.Equal(t, []time.Time{start, start.AddDate(0, 0, 1)}, s.Dates)

		_, err = p.GetReachTimeSeries(5, 0, 1, start)
		require.ErrorIs(t, err, errs.ErrReachNotFound)
	})

	t.Run("aggregated", func(t *testing.T) {
		p := newStreamPackage(t, network, 2, false, sfrValue)
		_, err := p.Load(nil)
		require.NoError(t, err)

		s, err := p.GetReachTimeSeries(1, 1, 0, start)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{sfrValue(1, 3, 0), sfrValue(2, 3, 0)}, s.Values, 1e-3)

		_, err = p.GetReachTimeSeries(1, 0, 0, start)
		require.ErrorIs(t, err, errs.ErrReachNotFound)
	})
}

func TestPackage_ProfileTimeSeries(t *testing.T) {
	t.Run("unified reaches", func(t *testing.T) {
		network := &topology.Network{Rivers: []topology.River{{
			ID: 1,
			Reaches: []topology.Reach{
				{ID: 1, SubID: 1, Length: 10},
				{ID: 2, SubID: 2, Length: 20},
			},
		}}}
		p := newStreamPackage(t, network, 1, true, func(int, int, int) float64 { return 100 })
		_, err := p.Load(nil)
		require.NoError(t, err)

		prof, err := p.ProfileTimeSeries([]int{1}, 0, 0, true, true)
		require.NoError(t, err)
		require.Equal(t, []float64{10, 30}, prof.Distance)
		require.InDeltaSlice(t, []float64{10, 5}, prof.Values, 1e-9)

		prof, err = p.ProfileTimeSeries([]int{1}, 0, 0, true, false)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{100, 100}, prof.Values, 1e-9)

		_, err = p.ProfileTimeSeries([]int{2}, 0, 0, true, false)
		require.ErrorIs(t, err, errs.ErrReachNotFound)
	})

	t.Run("aggregated rivers", func(t *testing.T) {
		network := topology.NewUniformNetwork(3, 2, 10)
		p := newStreamPackage(t, network, 2, false, sfrValue)
		p.ScaleFactor = 2
		_, err := p.Load(nil)
		require.NoError(t, err)

		prof, err := p.ProfileTimeSeries([]int{1, 2, 3}, 0, 0, false, false)
		require.NoError(t, err)
		require.Equal(t, []float64{20, 40, 60}, prof.Distance)
		require.InDeltaSlice(t, []float64{
			2 * sfrValue(1, 1, 0),
			2 * sfrValue(1, 3, 0),
			2 * sfrValue(1, 5, 0),
		}, prof.Values, 1e-3)

		_, err = p.ProfileTimeSeries([]int{1}, 0, 0, true, false)
		require.ErrorIs(t, err, errs.ErrInvalidConfiguration)
	})
}

func TestPackage_GetProfileTimeSeries(t *testing.T) {
	network := topology.NewUniformNetwork(3, 2, 10)
	p := newStreamPackage(t, network, 2, false, sfrValue)

	_, err := p.GetProfileTimeSeries([]int{1, 2}, 0, "flow", 2, false, false)
	require.ErrorIs(t, err, errs.ErrNotLoaded)

	_, err = p.Load(nil)
	require.NoError(t, err)

	c, err := p.GetProfileTimeSeries([]int{1, 2}, 0, "flow", 5, false, false)
	require.NoError(t, err)
	require.Equal(t, [3]int{1, 2, 2}, c.Size())
	require.Equal(t, []string{"flow"}, c.Variables)
	require.Equal(t, "flow", c.Name)
	require.Len(t, c.DateTimes, 2)

	row, err := c.Row(0, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{float32(sfrValue(2, 1, 0)), float32(sfrValue(2, 3, 0))}, row, 1e-3)
}
