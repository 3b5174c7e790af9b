package sfr

import (
	"bufio"
	"io"
	"strings"

	"github.com/arloliu/hydrocube/errs"
	"github.com/arloliu/hydrocube/topology"
)

// CountSteps counts the complete blocks in r after skipping skip leading
// blocks. Counting stops at the end of the stream or at the first blank data
// line. The error is non-nil only for read failures and a missing network.
func CountSteps(r io.Reader, network *topology.Network, skip int) (int, error) {
	if network == nil || network.ReachCount() == 0 {
		return 0, errs.ErrTopologyMissing
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	reaches := network.ReachCount()
	block := reaches + HeaderLines
	for range max(skip, 0) * block {
		if !sc.Scan() {
			return 0, sc.Err()
		}
	}

	steps := 0
	for {
		for range HeaderLines {
			if !sc.Scan() {
				return steps, sc.Err()
			}
		}
		for range reaches {
			if !sc.Scan() {
				return steps, sc.Err()
			}
			if strings.TrimSpace(sc.Text()) == "" {
				return steps, nil
			}
		}
		steps++
	}
}
