package cbc

import (
	"github.com/arloliu/hydrocube/format"
	"github.com/arloliu/hydrocube/internal/collision"
)

// ScanInfo describes a file without its payloads.
type ScanInfo struct {
	// Variables lists the normalized record names in order of first appearance.
	Variables []string
	// NumTimeStep counts distinct consecutive (KPER, KSTP) pairs.
	NumTimeStep int
	// NumLayer is the highest layer number seen.
	NumLayer int
	// Records counts the complete headers read.
	Records int
	// ValuesPerRecord is NVAL of the first record.
	ValuesPerRecord int
	// Reason tells why the scan stopped; format.EndOfData for a well-formed file.
	Reason format.StopReason
	// Collision is set when two variable names share a hash id.
	Collision bool
}

// Scan reads every header and skips every payload. It is best effort: a
// malformed or truncated record stops the scan and the info gathered up to
// that point is returned. The error is non-nil only for I/O failures.
func (r *Reader) Scan() (ScanInfo, error) {
	var (
		info  ScanInfo
		prev  Header
		names = collision.NewRegistry()
	)

	for {
		hdr, reason, err := r.readHeader()
		if reason != 0 {
			info.Reason = reason
			if reason == format.IOError {
				return r.finishScan(info, names), err
			}

			break
		}

		if info.Records == 0 || !hdr.SameStep(prev) {
			info.NumTimeStep++
			prev = hdr
		}
		if info.Records == 0 {
			info.ValuesPerRecord = int(hdr.Count)
		}
		if int(hdr.Layer) > info.NumLayer {
			info.NumLayer = int(hdr.Layer)
		}
		_, _, _ = names.Register(hdr.Text)

		if err := r.skip(hdr.PayloadSize()); err != nil {
			info.Reason, err = classify(err)
			if info.Reason == format.IOError {
				return r.finishScan(info, names), err
			}

			break
		}
		info.Records++
	}

	return r.finishScan(info, names), nil
}

func (r *Reader) finishScan(info ScanInfo, names *collision.Registry) ScanInfo {
	info.Variables = append([]string(nil), names.Names()...)
	info.Collision = names.HasCollision()

	return info
}
