package iauditrepo

import (
	"context"

	"github.com/storefront-labs/oms/internal/service/models/auditrecord"
)

// Repository is the interface for the append-only audit record repository.
// It deliberately exposes no update or delete operation.
type Repository interface {
	Insert(ctx context.Context, record auditrecord.AuditRecord) (auditrecord.AuditRecord, error)
}
