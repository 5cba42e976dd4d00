package service

import (
	"context"
	"time"

	"github.com/wakewell/backend/internal/models"
	"github.com/wakewell/backend/internal/repository"
)

type patternService struct {
	recordRepo  repository.DailyRecordRepository
	checkinRepo repository.CheckinRepository
	cfg         AnalysisConfig
	now         func() time.Time
}

// NewPatternService creates a new pattern analysis service
func NewPatternService(recordRepo repository.DailyRecordRepository, checkinRepo repository.CheckinRepository, cfg AnalysisConfig) PatternService {
	return &patternService{
		recordRepo:  recordRepo,
		checkinRepo: checkinRepo,
		cfg:         cfg.Normalize(),
		now:         time.Now,
	}
}

// ComputePatterns recomputes the full pattern analysis from scratch on
// every call. With sparse data the slices come back empty rather than
// erroring; patterns only appear once enough paired days exist.
func (s *patternService) ComputePatterns(ctx context.Context) (*models.PatternsResponse, error) {
	records, err := s.recordRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	checkins, err := s.checkinRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &models.PatternsResponse{
		Lifestyle:     AnalyzeLifestylePatterns(records, checkins, s.cfg),
		Physiology:    AnalyzePhysiologyPatterns(records, s.cfg),
		StressBalance: AnalyzeStressBalance(records, checkins, s.cfg),
		ComputedAt:    s.now().UTC(),
	}
	if resp.Lifestyle == nil {
		resp.Lifestyle = []models.Pattern{}
	}
	if resp.Physiology == nil {
		resp.Physiology = []models.Pattern{}
	}
	return resp, nil
}
