// Package importer turns uploaded report files back into worksheet states
// for batch comparison.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/envioscan/internal/db"
	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/report"
	"github.com/alexanderramin/envioscan/internal/repository"
	"github.com/alexanderramin/envioscan/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is one accepted report.
type Entry = domain.BatchReport

// Reason classifies why a file was rejected.
type Reason string

const (
	ReasonUnsupported   Reason = "unsupported_type"
	ReasonUnreadable    Reason = "unreadable"
	ReasonNoMetadata    Reason = "no_metadata"
	ReasonParseError    Reason = "parse_error"
	ReasonShapeMismatch Reason = "shape_mismatch"
	ReasonCanceled      Reason = "canceled"
)

const (
	formatJSON = "json"
	formatPDF  = "pdf"
)

// Failure describes one rejected file.
type Failure struct {
	Name   string
	Reason Reason
	Err    error
}

// Result is the outcome of importing a batch. Rejected always equals
// len(Failures).
type Result struct {
	Accepted []*Entry
	Rejected int
	Failures []Failure
}

func (r *Result) reject(name string, reason Reason, err error) {
	r.Rejected++
	r.Failures = append(r.Failures, Failure{Name: name, Reason: reason, Err: err})
}

// Importer turns uploaded report files into batch entries.
type Importer struct {
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// New returns an Importer logging under "importer". A nil log discards
// output.
func New(log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{
		log:   log.Named("importer"),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Import decodes every file independently. A bad file is counted and logged
// and never stops the rest of the batch. Accepted entries keep input order.
func (im *Importer) Import(ctx context.Context, files []storage.Blob) Result {
	var res Result
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			for _, rest := range files[i:] {
				res.reject(rest.Name, ReasonCanceled, err)
			}
			break
		}

		entry, reason, err := im.importOne(f)
		if err != nil {
			im.log.Warn("report rejected",
				zap.String("file", f.Name),
				zap.String("reason", string(reason)),
				zap.Error(err),
			)
			res.reject(f.Name, reason, err)
			continue
		}
		res.Accepted = append(res.Accepted, entry)
	}

	im.log.Info("batch imported",
		zap.Int("files", len(files)),
		zap.Int("accepted", len(res.Accepted)),
		zap.Int("rejected", res.Rejected),
	)
	return res
}

func (im *Importer) importOne(f storage.Blob) (*Entry, Reason, error) {
	format := classify(f)
	if format == "" {
		return nil, ReasonUnsupported, fmt.Errorf("unsupported file type %q", f.ContentType)
	}
	if f.Err != nil {
		return nil, ReasonUnreadable, f.Err
	}

	var (
		state *domain.AnalysisState
		err   error
	)
	switch format {
	case formatJSON:
		state, err = report.DecodeStrict(string(f.Data))
	case formatPDF:
		var subject string
		subject, err = ReadSubject(f.Data)
		if errors.Is(err, ErrNoSubject) {
			return nil, ReasonNoMetadata, err
		}
		if err != nil {
			return nil, ReasonUnreadable, err
		}
		state, err = report.Decode(subject)
	}
	if err != nil {
		if errors.Is(err, report.ErrShapeMismatch) {
			return nil, ReasonShapeMismatch, err
		}
		return nil, ReasonParseError, err
	}

	return &Entry{
		ID:      im.newID(),
		Source:  f.Name,
		Format:  format,
		State:   state,
		AddedAt: im.now().UTC(),
	}, "", nil
}

// classify prefers the file extension and falls back to the content type.
func classify(f storage.Blob) string {
	switch f.Ext() {
	case ".json":
		return formatJSON
	case ".pdf":
		return formatPDF
	}
	ct := strings.ToLower(f.ContentType)
	switch {
	case strings.HasPrefix(ct, "application/json"):
		return formatJSON
	case strings.HasPrefix(ct, "application/pdf"):
		return formatPDF
	}
	return ""
}

// Collect imports files and appends the accepted entries to the stored
// batch in a single transaction. On a persistence error nothing is stored
// and the import result is still returned.
func (im *Importer) Collect(ctx context.Context, uow db.UnitOfWork, files []storage.Blob) (Result, error) {
	res := im.Import(ctx, files)
	if len(res.Accepted) == 0 {
		return res, nil
	}

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteBatchRepo(tx)
		for _, e := range res.Accepted {
			if err := repo.Add(ctx, e); err != nil {
				return fmt.Errorf("saving %s: %w", e.Source, err)
			}
		}
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("persisting batch: %w", err)
	}
	return res, nil
}
