package datasets

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediacurrent/triage/internal/classify"
	"github.com/mediacurrent/triage/internal/grouping"
	"github.com/mediacurrent/triage/pkg/pagination"
)

// System defines the public contract for dataset domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Dataset], error)

	Find(ctx context.Context, id uuid.UUID) (*Dataset, error)
	Create(ctx context.Context, cmd CreateCommand) (*Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AttachFile(ctx context.Context, id uuid.UUID, kind FileKind, data []byte) (*Dataset, error)
	Classify(ctx context.Context, id uuid.UUID, opts classify.Options) ([]classify.ClassifiedPage, error)
	Groups(ctx context.Context, id uuid.UUID) ([]grouping.ReviewGroup, error)
	Result(ctx context.Context, id uuid.UUID, token string) ([]classify.ClassifiedPage, error)
}
