// Package trace records the machine state after every executed instruction.
package trace

import (
	"fmt"
	"hash/crc32"

	"github.com/fxamacker/cbor/v2"
	"github.com/retroenv/retrochip8/internal/dialect"
	"github.com/retroenv/retrochip8/internal/vm"
)

// cborEncMode uses canonical mode so that equal traces encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Trace is the recorded trajectory of a program run.
type Trace struct {
	Dialect     string        `cbor:"1,keyasint"`
	ROMChecksum uint32        `cbor:"2,keyasint"`
	Steps       []vm.Snapshot `cbor:"3,keyasint"`
	// Dropped counts the snapshots that exceeded the recorder limit.
	Dropped uint64 `cbor:"4,keyasint"`
}

// Recorder collects snapshots up to an optional limit.
type Recorder struct {
	trace Trace
	limit int
}

// NewRecorder returns a recorder for a run of the ROM. A limit of 0 records every step.
func NewRecorder(d dialect.Dialect, rom []byte, limit int) *Recorder {
	return &Recorder{
		trace: Trace{
			Dialect:     d.String(),
			ROMChecksum: crc32.ChecksumIEEE(rom),
		},
		limit: limit,
	}
}

// Record appends the snapshot to the trace.
func (r *Recorder) Record(snapshot vm.Snapshot) {
	if r.limit > 0 && len(r.trace.Steps) >= r.limit {
		r.trace.Dropped++
		return
	}
	r.trace.Steps = append(r.trace.Steps, snapshot)
}

// Len returns the number of recorded snapshots.
func (r *Recorder) Len() int {
	return len(r.trace.Steps)
}

// Trace returns the recorded trace.
func (r *Recorder) Trace() *Trace {
	return &r.trace
}

// Marshal serializes a trace to CBOR bytes.
func Marshal(t *Trace) ([]byte, error) {
	return cborEncMode.Marshal(t)
}

// Unmarshal deserializes a trace from CBOR bytes.
func Unmarshal(data []byte) (*Trace, error) {
	var t Trace
	if err := cbor.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("trace: unmarshal trace: %w", err)
	}
	return &t, nil
}
