package stats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claritycareer/claritycareer/internal/db"
)

type fakeStore struct {
	byCompany map[uuid.UUID]*db.SalaryStats
	all       []db.SalaryStats
	calls     int
}

func (f *fakeStore) GetSalaryStats(_ context.Context, companyID uuid.UUID) (*db.SalaryStats, error) {
	f.calls++
	return f.byCompany[companyID], nil
}

func (f *fakeStore) ListSalaryStats(_ context.Context) ([]db.SalaryStats, error) {
	f.calls++
	return f.all, nil
}

func TestCompanyStatsWithoutCache(t *testing.T) {
	companyID := uuid.New()
	store := &fakeStore{byCompany: map[uuid.UUID]*db.SalaryStats{
		companyID: {CompanyID: companyID, Company: "Innovate Inc.", SampleCount: 3, AverageSalary: 120000, MinSalary: 95000, MaxSalary: 150000},
	}}

	svc := New(store, nil)
	stats, err := svc.CompanyStats(context.Background(), companyID)
	require.NoError(t, err)
	require.NotNil(t, stats)

	assert.Equal(t, "Innovate Inc.", stats.Company)
	assert.Equal(t, 3, stats.SampleCount)
	assert.Equal(t, int64(120000), stats.AverageSalary)
}

func TestCompanyStatsNoSubmissions(t *testing.T) {
	store := &fakeStore{byCompany: map[uuid.UUID]*db.SalaryStats{}}

	svc := New(store, nil)
	stats, err := svc.CompanyStats(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestAllStatsWithoutCache(t *testing.T) {
	store := &fakeStore{all: []db.SalaryStats{
		{Company: "Innovate Inc.", AverageSalary: 140000},
		{Company: "HealthFirst", AverageSalary: 110000},
	}}

	svc := New(store, nil)
	all, err := svc.AllStats(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Innovate Inc.", all[0].Company)
}

func TestStartRefresherWithoutRedisIsNoop(t *testing.T) {
	store := &fakeStore{}
	svc := New(store, nil)

	require.NoError(t, svc.StartRefresher(context.Background(), DefaultTTL))
	svc.Stop()
	assert.Zero(t, store.calls)
}

func TestCacheKeys(t *testing.T) {
	companyID := uuid.New()
	assert.Equal(t, "claritycareer:stats:company:"+companyID.String(), companyKey(companyID))
	assert.Equal(t, "claritycareer:stats:all", allKey())
}
