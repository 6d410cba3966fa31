package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
)

// Archive persists the dense output of committed steps in sqlite. Each
// segment stores everything needed to rebuild its interpolator: the
// tableau name, the direction flag, the boundary states and derivatives
// and the stage derivatives. Replay queries reconstruct the segment
// covering the requested time and evaluate it offline.
type Archive struct {
	db *sql.DB
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS segments (
	run_id     TEXT    NOT NULL,
	seq        INTEGER NOT NULL,
	tableau    TEXT    NOT NULL,
	forward    INTEGER NOT NULL,
	prev_time  REAL    NOT NULL,
	cur_time   REAL    NOT NULL,
	prev_state TEXT    NOT NULL,
	prev_deriv TEXT    NOT NULL,
	cur_state  TEXT    NOT NULL,
	cur_deriv  TEXT    NOT NULL,
	stages     TEXT    NOT NULL,
	PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS segments_time ON segments (run_id, prev_time, cur_time);
`

func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Append stores one committed step.
func (a *Archive) Append(runID string, seq int, interp *rk.Interpolator) error {
	prev := interp.GlobalPreviousState()
	cur := interp.GlobalCurrentState()

	stages, err := json.Marshal(interp.StageDerivatives())
	if err != nil {
		return err
	}

	forward := 0
	if interp.IsForward() {
		forward = 1
	}

	_, err = a.db.Exec(
		`INSERT INTO segments
		 (run_id, seq, tableau, forward, prev_time, cur_time,
		  prev_state, prev_deriv, cur_state, cur_deriv, stages)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, seq, interp.TableauName(), forward, prev.Time, cur.Time,
		marshalVec(prev.State), marshalVec(prev.Derivative),
		marshalVec(cur.State), marshalVec(cur.Derivative), string(stages),
	)
	return err
}

// Segment reconstructs the interpolator of the archived step covering t.
// When t falls on a boundary shared by two segments the earlier one wins.
func (a *Archive) Segment(runID string, t float64) (*rk.Interpolator, error) {
	row := a.db.QueryRow(
		`SELECT tableau, forward, prev_time, cur_time,
		        prev_state, prev_deriv, cur_state, cur_deriv, stages
		 FROM segments
		 WHERE run_id = ?
		   AND MIN(prev_time, cur_time) <= ? AND ? <= MAX(prev_time, cur_time)
		 ORDER BY seq LIMIT 1`,
		runID, t, t,
	)

	var (
		tableauName                                  string
		forward                                      int
		prevTime, curTime                            float64
		prevState, prevDeriv, curState, curDeriv, st string
	)
	if err := row.Scan(&tableauName, &forward, &prevTime, &curTime,
		&prevState, &prevDeriv, &curState, &curDeriv, &st); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s has no archived step covering t=%g", runID, t)
		}
		return nil, err
	}

	tab, err := rk.MethodByName(tableauName)
	if err != nil {
		return nil, err
	}

	var stages []ode.State
	if err := json.Unmarshal([]byte(st), &stages); err != nil {
		return nil, fmt.Errorf("corrupt stage data in run %s: %w", runID, err)
	}

	prev := ode.StateAndDerivative{Time: prevTime}
	cur := ode.StateAndDerivative{Time: curTime}
	if prev.State, err = unmarshalVec(prevState); err != nil {
		return nil, err
	}
	if prev.Derivative, err = unmarshalVec(prevDeriv); err != nil {
		return nil, err
	}
	if cur.State, err = unmarshalVec(curState); err != nil {
		return nil, err
	}
	if cur.Derivative, err = unmarshalVec(curDeriv); err != nil {
		return nil, err
	}

	return rk.Rebuild(tab, forward == 1, stages, prev, cur), nil
}

// StateAt replays the archived dense output at t.
func (a *Archive) StateAt(runID string, t float64) (ode.State, error) {
	interp, err := a.Segment(runID, t)
	if err != nil {
		return nil, err
	}
	return interp.StateAt(t), nil
}

// Rename moves the segments of a run to a new id.
func (a *Archive) Rename(oldID, newID string) error {
	_, err := a.db.Exec(`UPDATE segments SET run_id = ? WHERE run_id = ?`, newID, oldID)
	return err
}

// Count returns the number of archived steps of a run.
func (a *Archive) Count(runID string) (int, error) {
	var n int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM segments WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}

func marshalVec(v ode.State) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func unmarshalVec(s string) (ode.State, error) {
	var v ode.State
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("corrupt state vector: %w", err)
	}
	return v, nil
}
