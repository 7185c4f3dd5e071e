package service

import (
	"context"
	"io"
	"time"

	"github.com/freeeve/geoindex/internal/audit"
	"github.com/freeeve/geoindex/internal/engine"
	"github.com/freeeve/geoindex/internal/importexport"
)

// ImportService runs a CSV import against an Engine and records the
// outcome in an audit.Log, success or failure.
type ImportService struct {
	eng *engine.Engine
	log audit.Log
}

// NewImportService wires an Engine to an audit.Log.
func NewImportService(eng *engine.Engine, log audit.Log) *ImportService {
	return &ImportService{eng: eng, log: log}
}

// Import reads r as a CSV file, ingests it into the engine, and records
// the run. source identifies the run in the audit log (a filename or
// "upload").
func (s *ImportService) Import(ctx context.Context, r io.Reader, source string) (engine.Report, importexport.Flavor, error) {
	startedAt := time.Now()
	report, flavor, err := importexport.Import(r, s.eng)

	run := audit.Run{StartedAt: startedAt, Source: source, Ingested: report.Ingested}
	if err != nil {
		run.Err = err.Error()
	}
	if auditErr := s.log.Record(ctx, run); auditErr != nil {
		return report, flavor, auditErr
	}
	return report, flavor, err
}
