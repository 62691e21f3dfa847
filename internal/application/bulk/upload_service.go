// Package bulk validates uploaded spreadsheets and imports them as
// products, brands or shipments.
package bulk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jeenmata/impex/internal/domain/catalog"
	"github.com/jeenmata/impex/internal/domain/logistics"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/shared"
	bulkfile "github.com/jeenmata/impex/internal/infrastructure/bulk"
	"go.uber.org/zap"
)

// ErrCodeInvalidRow marks a row that passed validation but could not be
// turned into an entity
const ErrCodeInvalidRow = "ERR_BULK_INVALID_ROW"

// FeatureChecker reports whether a site feature flag is on
type FeatureChecker interface {
	IsEnabled(ctx context.Context, flag string) bool
}

// RowRecorder counts rows by import outcome
type RowRecorder interface {
	BulkRows(entity, result string, n int)
}

// Limits bounds what a single upload may contain
type Limits struct {
	MaxFileSize int64
	MaxRows     int
	MaxErrors   int
	SessionTTL  time.Duration
}

// UploadService runs the validate, preview and import flow
type UploadService struct {
	sessions     bulkfile.SessionStore
	productRepo  catalog.ProductRepository
	brandRepo    catalog.BrandRepository
	shipmentRepo logistics.ShipmentRepository
	features     FeatureChecker
	limits       Limits
	recorder     RowRecorder
	logger       *zap.Logger
	now          func() time.Time
}

// NewUploadService creates a new UploadService
func NewUploadService(
	sessions bulkfile.SessionStore,
	productRepo catalog.ProductRepository,
	brandRepo catalog.BrandRepository,
	shipmentRepo logistics.ShipmentRepository,
	features FeatureChecker,
	limits Limits,
	logger *zap.Logger,
) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = bulkfile.DefaultMaxFileSize
	}
	if limits.MaxErrors <= 0 {
		limits.MaxErrors = bulkfile.DefaultMaxErrors
	}
	if limits.SessionTTL <= 0 {
		limits.SessionTTL = 30 * time.Minute
	}
	return &UploadService{
		sessions:     sessions,
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		shipmentRepo: shipmentRepo,
		features:     features,
		limits:       limits,
		logger:       logger,
		now:          time.Now,
	}
}

// Validate parses an uploaded file, checks every row against the entity's
// schema and keeps the result as a session for a later import.
func (s *UploadService) Validate(ctx context.Context, req ValidateRequest) (*bulkfile.Session, error) {
	if err := s.checkEnabled(ctx); err != nil {
		return nil, err
	}
	entity, err := bulkfile.ParseEntityType(req.Entity)
	if err != nil {
		return nil, shared.NewValidationError("Unsupported entity type: " + req.Entity)
	}
	schema, err := bulkfile.SchemaFor(entity)
	if err != nil {
		return nil, shared.NewValidationError(err.Error())
	}

	records, err := bulkfile.Parse(req.FileName, req.Data, s.limits.MaxFileSize)
	if err != nil {
		return nil, fileDomainError(err)
	}
	if s.limits.MaxRows > 0 && len(records) > s.limits.MaxRows {
		return nil, shared.NewDomainError(bulkfile.ErrCodeTooManyRows,
			fmt.Sprintf("File has %d rows, the limit is %d", len(records), s.limits.MaxRows))
	}

	result := bulkfile.Validate(records, schema, s.limits.MaxErrors)
	session := bulkfile.NewSession(entity, req.FileName, int64(len(req.Data)), req.UploadedBy, result, s.now(), s.limits.SessionTTL)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("Bulk upload validated",
		zap.String("session_id", session.ID),
		zap.String("entity", string(entity)),
		zap.String("file", req.FileName),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("error_rows", result.ErrorRows),
	)
	return session, nil
}

// Session returns a stored upload session
func (s *UploadService) Session(ctx context.Context, id string) (*bulkfile.Session, error) {
	if err := s.checkEnabled(ctx); err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, id)
}

// Import creates entities from the valid rows of a validated session.
// Invalid rows are skipped; there is no rollback of rows already written.
func (s *UploadService) Import(ctx context.Context, sessionID string) (*ImportResult, error) {
	if err := s.checkEnabled(ctx); err != nil {
		return nil, err
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != bulkfile.StateValidated {
		return nil, shared.NewDomainError("INVALID_STATE", "Upload session has already been "+string(session.State))
	}
	records := session.Result.ValidRecords()
	if len(records) == 0 {
		return nil, shared.NewValidationError("No valid rows to import")
	}

	// Claim re-checks the state under the store lock so only one import runs
	session, err = s.sessions.Claim(ctx, sessionID, bulkfile.StateValidated, bulkfile.StateImporting)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		SessionID:   session.ID,
		Entity:      session.Entity,
		SkippedRows: session.Result.ErrorRows,
	}
	var importErr error
	switch session.Entity {
	case bulkfile.EntityProducts:
		importErr = s.importProducts(ctx, records, session.UploadedBy, result)
	case bulkfile.EntityBrands:
		importErr = s.importBrands(ctx, records, result)
	case bulkfile.EntityShipments:
		importErr = s.importShipments(ctx, records, result)
	default:
		importErr = shared.NewValidationError("Unsupported entity type: " + string(session.Entity))
	}

	if importErr != nil {
		session.State = bulkfile.StateFailed
		s.logger.Error("Bulk import failed",
			zap.String("session_id", session.ID),
			zap.String("entity", string(session.Entity)),
			zap.Error(importErr),
		)
	} else {
		session.State = bulkfile.StateCompleted
		session.ImportedCount = result.ImportedCount
		if s.recorder != nil {
			s.recorder.BulkRows(string(session.Entity), "imported", result.ImportedCount)
			s.recorder.BulkRows(string(session.Entity), "skipped", result.SkippedRows)
		}
		s.logger.Info("Bulk import completed",
			zap.String("session_id", session.ID),
			zap.String("entity", string(session.Entity)),
			zap.Int("imported", result.ImportedCount),
			zap.Int("skipped", result.SkippedRows),
		)
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Warn("Failed to save upload session", zap.String("session_id", session.ID), zap.Error(err))
	}
	if importErr != nil {
		return nil, importErr
	}
	return result, nil
}

// SetRecorder reports import row counts to r
func (s *UploadService) SetRecorder(r RowRecorder) {
	s.recorder = r
}

// Template renders a downloadable template for an entity type
func (s *UploadService) Template(ctx context.Context, entity, format string) (*TemplateFile, error) {
	if err := s.checkEnabled(ctx); err != nil {
		return nil, err
	}
	et, err := bulkfile.ParseEntityType(entity)
	if err != nil {
		return nil, shared.NewValidationError("Unsupported entity type: " + entity)
	}

	f := bulkfile.Format(format)
	if f == "" {
		f = bulkfile.FormatCSV
	}
	var (
		data        []byte
		contentType string
	)
	switch f {
	case bulkfile.FormatCSV:
		data, err = bulkfile.TemplateCSV(et)
		contentType = "text/csv"
	case bulkfile.FormatXLSX:
		data, err = bulkfile.TemplateXLSX(et)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, shared.NewValidationError("Template format must be csv or xlsx")
	}
	if err != nil {
		return nil, err
	}
	return &TemplateFile{
		FileName:    bulkfile.TemplateFilename(et, f),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *UploadService) checkEnabled(ctx context.Context) error {
	if s.features != nil && !s.features.IsEnabled(ctx, settings.FlagBulkProductUpload) {
		return shared.ErrFeatureOff
	}
	return nil
}

func (s *UploadService) importProducts(ctx context.Context, records []bulkfile.Record, uploadedBy string, result *ImportResult) error {
	groups := groupByName(records)
	products := make([]catalog.Product, 0, len(groups))
	for _, g := range groups {
		p, err := productFromGroup(g, uploadedBy)
		if err != nil {
			result.addRowError(g.rows[0].Row, err)
			continue
		}
		p.ClearDomainEvents()
		products = append(products, *p)
	}
	if len(products) == 0 {
		return nil
	}
	created, err := s.productRepo.BulkCreate(ctx, products)
	if err != nil {
		return err
	}
	result.ImportedCount = len(created)
	return nil
}

func (s *UploadService) importBrands(ctx context.Context, records []bulkfile.Record, result *ImportResult) error {
	brands := make([]catalog.Brand, 0, len(records))
	for _, rec := range records {
		b, err := brandFromRecord(rec)
		if err != nil {
			result.addRowError(rec.Row, err)
			continue
		}
		brands = append(brands, *b)
	}
	if len(brands) == 0 {
		return nil
	}
	created, err := s.brandRepo.BulkCreate(ctx, brands)
	if err != nil {
		return err
	}
	result.ImportedCount = len(created)
	return nil
}

func (s *UploadService) importShipments(ctx context.Context, records []bulkfile.Record, result *ImportResult) error {
	now := s.now()
	shipments := make([]logistics.Shipment, 0, len(records))
	for _, rec := range records {
		sh, err := shipmentFromRecord(rec, now)
		if err != nil {
			result.addRowError(rec.Row, err)
			continue
		}
		shipments = append(shipments, *sh)
	}
	if len(shipments) == 0 {
		return nil
	}
	created, err := s.shipmentRepo.BulkCreate(ctx, shipments)
	if err != nil {
		return err
	}
	result.ImportedCount = len(created)
	return nil
}

// fileDomainError converts a whole-file parse failure into a validation
// error that keeps the file error code
func fileDomainError(err error) error {
	var fe *bulkfile.FileError
	if errors.As(err, &fe) {
		return shared.NewDomainError(fe.Code, fe.Error())
	}
	return shared.NewValidationError(err.Error())
}
