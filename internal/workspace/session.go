// Package workspace owns the single in-memory worksheet and mirrors every
// change to the local store. Storage failures never reach the user: they are
// logged and the in-memory state stays authoritative.
package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/alexanderramin/envioscan/internal/report"
	"github.com/alexanderramin/envioscan/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownField    = errors.New("unknown field")
)

// Session is the state owner for one CLI run. Not safe for concurrent use.
type Session struct {
	kv      repository.KVRepo
	log     *zap.Logger
	now     func() time.Time
	state   *domain.AnalysisState
	insight *domain.Insight
}

// Open loads the stored worksheet and last insight. Absent or unreadable
// slots fall back to an empty worksheet and no insight.
func Open(ctx context.Context, kv repository.KVRepo, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		kv:  kv,
		log: log.Named("workspace"),
		now: time.Now,
	}
	s.state = s.loadState(ctx)
	s.insight = s.loadInsight(ctx)
	return s
}

func (s *Session) loadState(ctx context.Context) *domain.AnalysisState {
	raw, err := s.kv.Get(ctx, repository.KeyAnalysisState)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("loading saved state failed", zap.Error(err))
		}
		return domain.NewAnalysisState()
	}
	state, err := report.DecodeStrict(raw)
	if err != nil {
		s.log.Warn("saved state is corrupt, starting empty", zap.Error(err))
		return domain.NewAnalysisState()
	}
	return state
}

func (s *Session) loadInsight(ctx context.Context) *domain.Insight {
	raw, err := s.kv.Get(ctx, repository.KeyLastInsight)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("loading saved insight failed", zap.Error(err))
		}
		return nil
	}
	var ins domain.Insight
	if err := json.Unmarshal([]byte(raw), &ins); err != nil {
		s.log.Warn("saved insight is corrupt, discarding", zap.Error(err))
		return nil
	}
	return &ins
}

// State returns a copy of the current worksheet.
func (s *Session) State() *domain.AnalysisState {
	return s.state.Clone()
}

// Insight returns the last generated insight, or nil.
func (s *Session) Insight() *domain.Insight {
	return s.insight
}

// SetField edits one catalog field.
func (s *Session) SetField(ctx context.Context, c domain.Category, field, value string) error {
	if !domain.IsValidCategory(c) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	if _, ok := domain.FieldByID(c, field); !ok {
		return fmt.Errorf("%w: %q in %s", ErrUnknownField, field, c)
	}
	s.state.SetField(c, field, value)
	s.persistState(ctx)
	return nil
}

func (s *Session) SetAuthor(ctx context.Context, author string) {
	s.state.Author = author
	s.persistState(ctx)
}

func (s *Session) SetDescription(ctx context.Context, desc string) {
	s.state.Description = desc
	s.persistState(ctx)
}

// Replace swaps in a whole worksheet. The stored insight described the old
// one, so it is dropped.
func (s *Session) Replace(ctx context.Context, state *domain.AnalysisState) {
	if state == nil {
		state = domain.NewAnalysisState()
	}
	next := state.Clone()
	next.Normalize()
	s.state = next
	s.persistState(ctx)
	s.SetInsight(ctx, nil)
}

// Reset clears the worksheet and the stored insight.
func (s *Session) Reset(ctx context.Context) {
	s.state = domain.NewAnalysisState()
	s.insight = nil
	if err := s.kv.Delete(ctx, repository.KeyAnalysisState); err != nil {
		s.log.Error("clearing saved state failed", zap.Error(err))
	}
	if err := s.kv.Delete(ctx, repository.KeyLastInsight); err != nil {
		s.log.Error("clearing saved insight failed", zap.Error(err))
	}
}

// SetInsight records the latest insight; nil clears it.
func (s *Session) SetInsight(ctx context.Context, ins *domain.Insight) {
	s.insight = ins
	if ins == nil {
		if err := s.kv.Delete(ctx, repository.KeyLastInsight); err != nil {
			s.log.Error("clearing saved insight failed", zap.Error(err))
		}
		return
	}
	data, err := json.Marshal(ins)
	if err != nil {
		s.log.Error("encoding insight failed", zap.Error(err))
		return
	}
	if err := s.kv.Put(ctx, repository.KeyLastInsight, string(data)); err != nil {
		s.log.Error("saving insight failed", zap.Error(err))
	}
}

func (s *Session) persistState(ctx context.Context) {
	payload, err := report.Encode(s.state)
	if err != nil {
		s.log.Error("encoding state failed", zap.Error(err))
		return
	}
	if err := s.kv.Put(ctx, repository.KeyAnalysisState, payload); err != nil {
		s.log.Error("saving state failed", zap.Error(err))
		return
	}
	s.log.Debug("state saved", zap.Int("filled", s.state.FilledCount()))
}

// SaveJSON writes a progress file. An empty path, or a directory, gets the
// dated default name. Returns the path written.
func (s *Session) SaveJSON(path string) (string, error) {
	name := report.ProgressFileName(s.now())
	switch {
	case path == "":
		path = name
	default:
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, name)
		}
	}

	data, err := report.MarshalProgress(s.state)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing progress file: %w", err)
	}
	return path, nil
}

// LoadJSON replaces the worksheet with a progress file. The file must hold
// all four categories; on any error the current worksheet is untouched.
func (s *Session) LoadJSON(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading progress file: %w", err)
	}
	state, err := report.UnmarshalProgress(data)
	if err != nil {
		return fmt.Errorf("invalid project file format: %w", err)
	}
	s.Replace(ctx, state)
	return nil
}
