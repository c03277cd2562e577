package datasets

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mediacurrent/triage/internal/classify"
	"github.com/mediacurrent/triage/internal/grouping"
	"github.com/mediacurrent/triage/internal/pipeline"
	"github.com/mediacurrent/triage/pkg/pagination"
	"github.com/mediacurrent/triage/pkg/query"
	"github.com/mediacurrent/triage/pkg/repository"
	"github.com/mediacurrent/triage/pkg/storage"
)

type repo struct {
	db           *sql.DB
	store        storage.System
	logger       *slog.Logger
	pagination   pagination.Config
	fetchTimeout time.Duration
}

// New creates a dataset repository implementing the System interface.
// fetchTimeout bounds every blob download so a classify request never hangs
// on an unreachable store.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
	fetchTimeout time.Duration,
) System {
	return &repo{
		db:           db,
		store:        store,
		logger:       logger.With("system", "datasets"),
		pagination:   pagination,
		fetchTimeout: fetchTimeout,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Dataset], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count datasets: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanDataset)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Dataset, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	d, err := repository.QueryOne(ctx, r.db, q, args, scanDataset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &d, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Dataset, error) {
	if cmd.Name == "" {
		return nil, ErrNameMissing
	}

	insertQ := `
		INSERT INTO datasets(name, access_token, data_version)
		VALUES ($1, $2, $3)
		RETURNING id, name, crawl_key, analytics_key, rows_key, access_token,
				  active, data_version, created_at, updated_at`

	d, err := repository.QueryOne(ctx, r.db, insertQ,
		[]any{cmd.Name, uuid.NewString(), cmd.DataVersion},
		scanDataset,
	)
	if err != nil {
		return nil, repository.MapError(
			fmt.Errorf("insert dataset: %w", err),
			ErrNotFound, ErrDuplicate,
		)
	}

	r.logger.Info("dataset created", "id", d.ID, "name", d.Name)
	return &d, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM datasets WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("dataset deleted", "id", id)
	return nil
}

var kindColumns = map[FileKind]string{
	KindCrawl:     "crawl_key",
	KindAnalytics: "analytics_key",
	KindRows:      "rows_key",
}

// AttachFile uploads an export to blob storage and binds its key to the
// dataset's slot for that kind, replacing any previous upload.
func (r *repo) AttachFile(ctx context.Context, id uuid.UUID, kind FileKind, data []byte) (*Dataset, error) {
	column, ok := kindColumns[kind]
	if !ok {
		return nil, ErrInvalidKind
	}

	if _, err := r.Find(ctx, id); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("datasets/%s/%s.csv", id, kind)
	if err := r.store.Upload(ctx, key, bytes.NewReader(data), "text/csv"); err != nil {
		return nil, fmt.Errorf("upload %s export: %w", kind, err)
	}

	updateQ := fmt.Sprintf(`
		UPDATE datasets
		SET %s = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, name, crawl_key, analytics_key, rows_key, access_token,
				  active, data_version, created_at, updated_at`, column)

	d, err := repository.QueryOne(ctx, r.db, updateQ, []any{key, id}, scanDataset)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("export attached", "id", id, "kind", kind, "bytes", len(data))
	return &d, nil
}

// Classify fetches both export blobs concurrently and runs the content-rank
// pipeline. The pipeline itself never fails; only missing uploads or an
// unreachable blob store abort the operation.
func (r *repo) Classify(ctx context.Context, id uuid.UUID, opts classify.Options) ([]classify.ClassifiedPage, error) {
	d, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.CrawlKey == nil {
		return nil, fmt.Errorf("%w: crawl export for dataset %s", ErrFileMissing, id)
	}
	if d.AnalyticsKey == nil {
		return nil, fmt.Errorf("%w: analytics export for dataset %s", ErrFileMissing, id)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	var crawlCSV, analyticsCSV []byte
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		crawlCSV, err = r.fetch(gctx, *d.CrawlKey)
		return err
	})
	g.Go(func() error {
		var err error
		analyticsCSV, err = r.fetch(gctx, *d.AnalyticsKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pages := pipeline.ClassifyContent(crawlCSV, analyticsCSV, opts)

	r.logger.Info("dataset classified", "id", id, "pages", len(pages))
	return pages, nil
}

// Groups fetches the migration rows export and buckets it into review groups.
func (r *repo) Groups(ctx context.Context, id uuid.UUID) ([]grouping.ReviewGroup, error) {
	d, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if d.RowsKey == nil {
		return nil, fmt.Errorf("%w: rows export for dataset %s", ErrFileMissing, id)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	rowsCSV, err := r.fetch(fetchCtx, *d.RowsKey)
	if err != nil {
		return nil, err
	}

	return pipeline.ReviewGroups(rowsCSV, classify.DefaultOptions().StaleCutoffYear), nil
}

// Result serves the token-gated shared read. A token mismatch or inactive
// dataset reads exactly like an unknown dataset.
func (r *repo) Result(ctx context.Context, id uuid.UUID, token string) ([]classify.ClassifiedPage, error) {
	d, err := r.Find(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if !d.Active || token == "" || token != d.AccessToken {
		return nil, ErrNotFound
	}

	return r.Classify(ctx, id, classify.Options{})
}

func (r *repo) fetch(ctx context.Context, key string) ([]byte, error) {
	body, err := r.store.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFileMissing, key)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageFetch, key, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageFetch, key, err)
	}
	return data, nil
}
