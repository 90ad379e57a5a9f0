package repository

import (
	"context"

	"github.com/alexanderramin/envioscan/internal/domain"
)

// Storage slots in the kv_store table.
const (
	KeyAnalysisState = "ENVIOSCAN_DATA"
	KeyLastInsight   = "ENVIOSCAN_INSIGHT"
)

type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type BatchRepo interface {
	Add(ctx context.Context, r *domain.BatchReport) error
	List(ctx context.Context) ([]*domain.BatchReport, error)
	Count(ctx context.Context) (int, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
}
