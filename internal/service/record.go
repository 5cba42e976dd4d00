package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/repository"
)

// ErrNotFound signals that the requested entity does not exist. Handlers
// map it to a 404 problem response.
var ErrNotFound = errors.New("not found")

type recordService struct {
	recordRepo repository.DailyRecordRepository
	cacheRepo  repository.InsightCacheRepository
}

// NewRecordService creates a new record service
func NewRecordService(recordRepo repository.DailyRecordRepository, cacheRepo repository.InsightCacheRepository) RecordService {
	return &recordService{
		recordRepo: recordRepo,
		cacheRepo:  cacheRepo,
	}
}

func (s *recordService) ImportRecords(ctx context.Context, req *models.ImportRecordsRequest) (int, error) {
	for i := range req.Records {
		if req.Records[i].Date.IsZero() {
			return 0, fmt.Errorf("record %d: missing date", i)
		}
	}

	count, err := s.recordRepo.BulkUpsert(ctx, req.Records)
	if err != nil {
		return 0, err
	}

	// New observations can change any day's composed insight.
	if err := s.cacheRepo.Purge(ctx); err != nil {
		return count, fmt.Errorf("records imported but cache purge failed: %w", err)
	}
	return count, nil
}

func (s *recordService) UpsertRecord(ctx context.Context, record *models.DailyRecord) (*models.DailyRecord, error) {
	if record.Date.IsZero() {
		return nil, fmt.Errorf("missing date")
	}

	saved, err := s.recordRepo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.Purge(ctx); err != nil {
		return saved, fmt.Errorf("record saved but cache purge failed: %w", err)
	}
	return saved, nil
}

func (s *recordService) GetRecord(ctx context.Context, date models.Day) (*models.DailyRecord, error) {
	record, err := s.recordRepo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("record for %s: %w", date, ErrNotFound)
	}
	return record, nil
}

func (s *recordService) GetRecords(ctx context.Context, from, to models.Day) ([]models.DailyRecord, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s precedes start %s", to, from)
	}
	return s.recordRepo.GetRange(ctx, from, to)
}
