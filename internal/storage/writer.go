package storage

import (
	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
)

// ArchiveWriter is a step handler that appends every committed step of a
// run to an archive. Write errors are sticky and reported by Err, since
// step handlers cannot fail.
type ArchiveWriter struct {
	archive *Archive
	runID   string
	seq     int
	err     error
}

func NewArchiveWriter(archive *Archive, runID string) *ArchiveWriter {
	return &ArchiveWriter{archive: archive, runID: runID}
}

func (w *ArchiveWriter) HandleStep(interp ode.Interpolator, isLast bool) {
	if w.err != nil {
		return
	}
	rki, ok := interp.(*rk.Interpolator)
	if !ok {
		return
	}
	w.err = w.archive.Append(w.runID, w.seq, rki)
	w.seq++
}

func (w *ArchiveWriter) Err() error { return w.err }

func (w *ArchiveWriter) RunID() string { return w.runID }
