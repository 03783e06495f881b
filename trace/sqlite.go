// Package trace records AXI4-Lite bus transfers into a SQLite database.
package trace

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/axilite/timing/core"
)

// Event kinds.
const (
	KindRead        = "read"
	KindReadRetire  = "read_retire"
	KindWrite       = "write"
	KindWriteRetire = "write_retire"
	KindReset       = "reset"
)

// Event is one recorded bus transfer. Cycle and Data are stored as signed
// 64-bit integers.
type Event struct {
	ID    string
	RunID string
	Where string
	Kind  string
	Cycle uint64
	TxnID uint8
	Addr  uint32
	Data  uint64
	Hit   bool
}

// Recorder is a sim.Hook that writes bus transfers to a SQLite database.
type Recorder struct {
	*sql.DB
	statement *sql.Stmt

	dbName    string
	runID     string
	pending   []Event
	batchSize int
	inReset   bool
	closed    bool
}

// NewSQLiteRecorder creates a recorder that writes to the database file at
// path. An empty path generates a unique file name. Buffered events are
// flushed when the program exits through atexit.
func NewSQLiteRecorder(path string) *Recorder {
	r := &Recorder{
		dbName:    path,
		runID:     xid.New().String(),
		batchSize: 10000,
	}

	atexit.Register(func() {
		if err := r.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush trace: %v\n", err)
		}
	})

	return r
}

// RunID returns the identifier stamped on every event of this recorder.
func (r *Recorder) RunID() string {
	return r.runID
}

// DBName returns the database file name.
func (r *Recorder) DBName() string {
	return r.dbName
}

// Init creates the database file and the event table.
func (r *Recorder) Init() error {
	if r.dbName == "" {
		r.dbName = "axilite_trace_" + xid.New().String() + ".sqlite3"
	}

	if _, err := os.Stat(r.dbName); err == nil {
		return fmt.Errorf("trace file %s already exists", r.dbName)
	}

	db, err := sql.Open("sqlite3", r.dbName)
	if err != nil {
		return fmt.Errorf("failed to open trace database: %w", err)
	}
	r.DB = db

	_, err = r.Exec(`
		create table bus_event
		(
			event_id varchar(32) not null primary key,
			run_id   varchar(32) not null,
			location varchar(100),
			kind     varchar(16) not null,
			cycle    integer     not null,
			txn_id   integer,
			address  integer,
			data     integer,
			hit      integer
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create trace table: %w", err)
	}

	_, err = r.Exec(`create index bus_event_kind_index on bus_event (kind);`)
	if err != nil {
		return fmt.Errorf("failed to create trace index: %w", err)
	}

	r.statement, err = r.Prepare(
		`insert into bus_event values (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare trace statement: %w", err)
	}

	return nil
}

// Func records the transfers of one slave edge.
func (r *Recorder) Func(ctx sim.HookCtx) {
	sample, ok := ctx.Item.(core.Sample)
	if !ok {
		return
	}

	where := ""
	if named, ok := ctx.Domain.(sim.Named); ok {
		where = named.Name()
	}

	for _, e := range eventsOf(sample) {
		e.Where = where
		r.Record(e)
	}

	r.inReset = sample.Edge.Reset
}

func eventsOf(sample core.Sample) []Event {
	edge := sample.Edge
	var events []Event

	if edge.Reset {
		return []Event{{Kind: KindReset, Cycle: sample.Cycle}}
	}

	if edge.ReadRetired {
		events = append(events, Event{
			Kind:  KindReadRetire,
			Cycle: sample.Cycle,
			TxnID: edge.ReadID,
			Data:  sample.Before.R.Data,
			Hit:   true,
		})
	}

	if edge.ReadAccepted {
		events = append(events, Event{
			Kind:  KindRead,
			Cycle: sample.Cycle,
			TxnID: edge.ReadID,
			Addr:  edge.ReadAddr,
			Data:  edge.ReadData,
			Hit:   edge.ReadHit,
		})
	}

	if edge.WriteRetired {
		events = append(events, Event{
			Kind:  KindWriteRetire,
			Cycle: sample.Cycle,
			TxnID: edge.WriteID,
			Hit:   true,
		})
	}

	if edge.WriteCommitted {
		events = append(events, Event{
			Kind:  KindWrite,
			Cycle: sample.Cycle,
			TxnID: edge.WriteID,
			Addr:  edge.WriteAddr,
			Data:  edge.WriteData,
			Hit:   edge.WriteHit,
		})
	}

	return events
}

// Record buffers one event. Consecutive reset edges are recorded once.
func (r *Recorder) Record(e Event) {
	if e.Kind == KindReset && r.inReset {
		return
	}

	e.ID = xid.New().String()
	e.RunID = r.runID
	r.pending = append(r.pending, e)

	if len(r.pending) >= r.batchSize {
		if err := r.Flush(); err != nil {
			log.Panic(err)
		}
	}
}

// Flush writes all buffered events to the database.
func (r *Recorder) Flush() error {
	if len(r.pending) == 0 || r.closed {
		return nil
	}
	if r.DB == nil {
		return fmt.Errorf("trace recorder is not initialized")
	}

	tx, err := r.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin trace transaction: %w", err)
	}

	stmt := tx.Stmt(r.statement)
	for _, e := range r.pending {
		_, err := stmt.Exec(
			e.ID,
			e.RunID,
			e.Where,
			e.Kind,
			int64(e.Cycle),
			e.TxnID,
			e.Addr,
			int64(e.Data),
			e.Hit,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert trace event %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trace events: %w", err)
	}

	r.pending = nil

	return nil
}

// Close flushes buffered events and closes the database.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}

	if err := r.Flush(); err != nil {
		return err
	}

	r.closed = true

	if r.DB == nil {
		return nil
	}

	return r.DB.Close()
}
