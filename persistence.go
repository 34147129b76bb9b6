package brainfuck

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	gorm "gorm.io/gorm"
)

type PersistenceConfig struct {
	Name          string   `toml:"name"`
	Path          string   `toml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options"`
}

// Persistence is the run-history store: every program ever executed, keyed
// by content hash with its ops packed to nibbles, and one RunRecord per
// execution.
type Persistence struct {
	Config *PersistenceConfig
	DB     *gorm.DB
}

// ProgramRecord is a deduplicated program. Hash is the sha256 of the
// canonical instruction stream; Ops is that stream nibble-packed.
type ProgramRecord struct {
	ID        uint
	Hash      string `gorm:"uniqueIndex;size:64"`
	Ops       []byte `gorm:"type:blob"`
	OpCount   uint
	CreatedAt time.Time
}

type RunRecord struct {
	ID              uint
	ProgramRecordID uint
	NodesLowered    uint
	NodesOptimized  uint
	NodesExecuted   uint
	OutputBytes     uint
	TapeCells       uint
	MachineError    *string
	CreatedAt       time.Time
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(config.Path) == 0 {
		return nil, fmt.Errorf("Path to database must be defined")
	}

	if len(config.Name) == 0 {
		return nil, fmt.Errorf("Name of database must be defined")
	}

	params := make([]string, 0, len(config.SQLitePragmas)+len(config.SQLiteOptions))
	for _, prag := range config.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, config.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(config.Path, config.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	db = db.Session(&gorm.Session{PrepareStmt: true})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&ProgramRecord{},
		&RunRecord{},
	)
}

func (p *Persistence) Shutdown() {
	if sqldb, err := p.DB.DB(); err != nil {
		log.Fatalf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

// RecordRun stores one execution, creating the program row on first sight.
func (p *Persistence) RecordRun(program *Program, report *RunReport) (*RunRecord, error) {
	if program == nil || report == nil {
		return nil, fmt.Errorf("program and report cannot be nil")
	}

	sum := sha256.Sum256([]byte(program.Source))
	record := ProgramRecord{
		Hash:    hex.EncodeToString(sum[:]),
		Ops:     PackOps(program.Source),
		OpCount: uint(len(program.Source)),
	}
	if result := p.DB.Where(ProgramRecord{Hash: record.Hash}).FirstOrCreate(&record); result.Error != nil {
		return nil, fmt.Errorf("Failed to find or create program record: %w", result.Error)
	}

	run := &RunRecord{
		ProgramRecordID: record.ID,
		NodesLowered:    report.NodesLowered,
		NodesOptimized:  report.NodesOptimized,
		NodesExecuted:   report.NodesExecuted,
		OutputBytes:     report.OutputBytes,
		TapeCells:       report.TapeCells,
		MachineError:    report.MachineError,
	}
	if result := p.DB.Create(run); result.Error != nil {
		return nil, fmt.Errorf("Failed to create run record: %w", result.Error)
	}

	return run, nil
}

// RecentRuns returns the latest runs, newest first.
func (p *Persistence) RecentRuns(limit int) ([]*RunRecord, error) {
	var runs []*RunRecord
	if result := p.DB.Order("id DESC").Limit(limit).Find(&runs); result.Error != nil {
		return nil, fmt.Errorf("Failed to query recent runs: %w", result.Error)
	}
	return runs, nil
}

// LoadProgramSource restores the canonical source of a stored program.
func (p *Persistence) LoadProgramSource(programID uint) (string, error) {
	var record ProgramRecord
	if result := p.DB.First(&record, programID); result.Error != nil {
		return "", fmt.Errorf("Failed to load program record [%d]: %w", programID, result.Error)
	}
	return UnpackOps(record.Ops), nil
}

// DatabasePath is the bare file path without DSN parameters, for raw
// database/sql consumers.
func (p *Persistence) DatabasePath() string {
	return filepath.Join(p.Config.Path, p.Config.Name)
}
