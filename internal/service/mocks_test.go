package service

import (
	"context"
	"sort"
	"time"

	"github.com/wakewell/backend/internal/models"
	"gorm.io/gorm"
)

// mockRecordRepository is an in-memory DailyRecordRepository for testing
type mockRecordRepository struct {
	records      map[string]*models.DailyRecord // date string -> record
	lastModified time.Time
}

func newMockRecordRepository() *mockRecordRepository {
	return &mockRecordRepository{records: make(map[string]*models.DailyRecord)}
}

func (m *mockRecordRepository) seed(records ...models.DailyRecord) {
	for i := range records {
		r := records[i]
		m.records[r.Date.String()] = &r
	}
}

func (m *mockRecordRepository) sorted() []models.DailyRecord {
	result := make([]models.DailyRecord, 0, len(m.records))
	for _, r := range m.records {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result
}

func (m *mockRecordRepository) Upsert(ctx context.Context, record *models.DailyRecord) (*models.DailyRecord, error) {
	record.UpdatedAt = time.Now()
	m.records[record.Date.String()] = record
	m.lastModified = record.UpdatedAt
	return record, nil
}

func (m *mockRecordRepository) BulkUpsert(ctx context.Context, records []models.DailyRecord) (int, error) {
	for i := range records {
		if _, err := m.Upsert(ctx, &records[i]); err != nil {
			return 0, err
		}
	}
	return len(records), nil
}

func (m *mockRecordRepository) GetByDate(ctx context.Context, date models.Day) (*models.DailyRecord, error) {
	if r, ok := m.records[date.String()]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (m *mockRecordRepository) GetRange(ctx context.Context, from, to models.Day) ([]models.DailyRecord, error) {
	var result []models.DailyRecord
	for _, r := range m.sorted() {
		if r.Date.Before(from) || to.Before(r.Date) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (m *mockRecordRepository) GetRecent(ctx context.Context, limit int) ([]models.DailyRecord, error) {
	all := m.sorted()
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (m *mockRecordRepository) GetAll(ctx context.Context) ([]models.DailyRecord, error) {
	return m.sorted(), nil
}

func (m *mockRecordRepository) LatestDate(ctx context.Context) (*models.Day, error) {
	all := m.sorted()
	if len(all) == 0 {
		return nil, nil
	}
	return &all[len(all)-1].Date, nil
}

func (m *mockRecordRepository) LastWorkoutDate(ctx context.Context) (*models.Day, error) {
	all := m.sorted()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Workout {
			return &all[i].Date, nil
		}
	}
	return nil, nil
}

func (m *mockRecordRepository) LastModified(ctx context.Context) (time.Time, error) {
	return m.lastModified, nil
}

// mockCheckinRepository is an in-memory CheckinRepository for testing
type mockCheckinRepository struct {
	checkins     map[string]*models.LifestyleCheckin
	lastModified time.Time
}

func newMockCheckinRepository() *mockCheckinRepository {
	return &mockCheckinRepository{checkins: make(map[string]*models.LifestyleCheckin)}
}

func (m *mockCheckinRepository) Upsert(ctx context.Context, checkin *models.LifestyleCheckin) (*models.LifestyleCheckin, error) {
	checkin.UpdatedAt = time.Now()
	m.checkins[checkin.Date.String()] = checkin
	m.lastModified = checkin.UpdatedAt
	return checkin, nil
}

func (m *mockCheckinRepository) GetByDate(ctx context.Context, date models.Day) (*models.LifestyleCheckin, error) {
	if c, ok := m.checkins[date.String()]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (m *mockCheckinRepository) GetRange(ctx context.Context, from, to models.Day) ([]models.LifestyleCheckin, error) {
	var result []models.LifestyleCheckin
	for _, c := range m.all() {
		if c.Date.Before(from) || to.Before(c.Date) {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCheckinRepository) GetAll(ctx context.Context) ([]models.LifestyleCheckin, error) {
	return m.all(), nil
}

func (m *mockCheckinRepository) all() []models.LifestyleCheckin {
	result := make([]models.LifestyleCheckin, 0, len(m.checkins))
	for _, c := range m.checkins {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result
}

func (m *mockCheckinRepository) LastModified(ctx context.Context) (time.Time, error) {
	return m.lastModified, nil
}

// mockReflectionRepository is an in-memory ReflectionRepository for testing
type mockReflectionRepository struct {
	reflections map[string]*models.MorningReflection
}

func newMockReflectionRepository() *mockReflectionRepository {
	return &mockReflectionRepository{reflections: make(map[string]*models.MorningReflection)}
}

func (m *mockReflectionRepository) Upsert(ctx context.Context, reflection *models.MorningReflection) (*models.MorningReflection, error) {
	m.reflections[reflection.Date.String()] = reflection
	return reflection, nil
}

func (m *mockReflectionRepository) GetByDate(ctx context.Context, date models.Day) (*models.MorningReflection, error) {
	if r, ok := m.reflections[date.String()]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (m *mockReflectionRepository) GetRange(ctx context.Context, from, to models.Day) ([]models.MorningReflection, error) {
	var result []models.MorningReflection
	for _, r := range m.reflections {
		if r.Date.Before(from) || to.Before(r.Date) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// mockGoalRepository is an in-memory GoalRepository for testing
type mockGoalRepository struct {
	goals map[models.MetricKey]*models.Goal
}

func newMockGoalRepository() *mockGoalRepository {
	return &mockGoalRepository{goals: make(map[models.MetricKey]*models.Goal)}
}

func (m *mockGoalRepository) Put(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	m.goals[goal.MetricKey] = goal
	return goal, nil
}

func (m *mockGoalRepository) Update(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	m.goals[goal.MetricKey] = goal
	return goal, nil
}

func (m *mockGoalRepository) GetByMetricKey(ctx context.Context, key models.MetricKey) (*models.Goal, error) {
	if g, ok := m.goals[key]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, nil
}

func (m *mockGoalRepository) List(ctx context.Context) ([]models.Goal, error) {
	result := make([]models.Goal, 0, len(m.goals))
	for _, g := range m.goals {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MetricKey < result[j].MetricKey })
	return result, nil
}

func (m *mockGoalRepository) Delete(ctx context.Context, key models.MetricKey) error {
	if _, ok := m.goals[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.goals, key)
	return nil
}

// mockInsightCacheRepository is an in-memory InsightCacheRepository for testing
type mockInsightCacheRepository struct {
	entries    map[string]*models.InsightCache
	putCalls   int
	purgeCalls int
}

func newMockInsightCacheRepository() *mockInsightCacheRepository {
	return &mockInsightCacheRepository{entries: make(map[string]*models.InsightCache)}
}

func (m *mockInsightCacheRepository) Get(ctx context.Context, date models.Day) (*models.InsightCache, error) {
	if e, ok := m.entries[date.String()]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (m *mockInsightCacheRepository) Put(ctx context.Context, entry *models.InsightCache) error {
	m.putCalls++
	m.entries[entry.Date.String()] = entry
	return nil
}

func (m *mockInsightCacheRepository) Purge(ctx context.Context) error {
	m.purgeCalls++
	m.entries = make(map[string]*models.InsightCache)
	return nil
}
