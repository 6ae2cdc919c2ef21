package forecast

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/preorder/backend/internal/domain/forecast"
	"github.com/preorder/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBatchRepository is a mock implementation of forecast.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*forecast.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forecast.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAll(ctx context.Context) ([]forecast.Batch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]forecast.Batch), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *forecast.Batch) error {
	return m.Called(ctx, batch).Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockScenarioRepository is a mock implementation of forecast.ScenarioRepository
type MockScenarioRepository struct {
	mock.Mock
}

func (m *MockScenarioRepository) Create(ctx context.Context, scenario *forecast.Scenario) error {
	return m.Called(ctx, scenario).Error(0)
}

func (m *MockScenarioRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]forecast.Scenario, error) {
	args := m.Called(ctx, batchID)
	return args.Get(0).([]forecast.Scenario), args.Error(1)
}

func newTestService() (*BatchService, *MockBatchRepository, *MockScenarioRepository) {
	batchRepo := new(MockBatchRepository)
	scenarioRepo := new(MockScenarioRepository)
	return NewBatchService(batchRepo, scenarioRepo), batchRepo, scenarioRepo
}

func sampleBatch(t *testing.T) *forecast.Batch {
	t.Helper()
	b, err := forecast.NewBatch(forecast.BatchSpec{
		Name:          "Spring set",
		UnitCost:      decimal.NewFromInt(90),
		HiddenCost:    decimal.NewFromInt(30),
		Price:         decimal.NewFromInt(799),
		BatchProduced: 200,
	})
	require.NoError(t, err)
	return b
}

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func validCreateRequest() CreateBatchRequest {
	return CreateBatchRequest{
		Name:           "Spring set",
		UnitCost:       decPtr(90),
		HiddenCost:     decPtr(30),
		Price:          decPtr(799),
		BatchProduced:  intPtr(200),
		BonusRuleCount: intPtr(2),
	}
}

func TestBatchService_Create(t *testing.T) {
	t.Run("stores a valid batch", func(t *testing.T) {
		svc, batchRepo, _ := newTestService()
		batchRepo.On("Save", mock.Anything, mock.MatchedBy(func(b *forecast.Batch) bool {
			return b.Name == "Spring set" && b.BatchProduced == 200
		})).Return(nil)

		req := validCreateRequest()
		req.Name = "  Spring set "
		resp, err := svc.Create(context.Background(), req)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, resp.ID)
		assert.Equal(t, "Spring set", resp.Name)
		assert.Equal(t, 2, resp.BonusRuleCount)
		assert.False(t, resp.CreatedAt.IsZero())
		batchRepo.AssertExpectations(t)
	})

	t.Run("rejects negative cost before saving", func(t *testing.T) {
		svc, batchRepo, _ := newTestService()

		req := validCreateRequest()
		req.UnitCost = decPtr(-1)
		_, err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects missing fields before saving", func(t *testing.T) {
		svc, batchRepo, _ := newTestService()

		_, err := svc.Create(context.Background(), CreateBatchRequest{Name: "only-a-name"})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("accepts explicit zeros", func(t *testing.T) {
		svc, batchRepo, _ := newTestService()
		batchRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		req := validCreateRequest()
		req.HiddenCost = decPtr(0)
		req.BonusRuleCount = intPtr(0)
		resp, err := svc.Create(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, resp.HiddenCost.IsZero())
		assert.Zero(t, resp.BonusRuleCount)
	})

	t.Run("rejects a batch over the maximum", func(t *testing.T) {
		svc, batchRepo, _ := newTestService()

		req := validCreateRequest()
		req.BatchProduced = intPtr(forecast.MaxBatchProduced + 1)
		_, err := svc.Create(context.Background(), req)

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("propagates repository failure", func(t *testing.T) {
		svc, batchRepo, _ := newTestService()
		batchRepo.On("Save", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.Create(context.Background(), validCreateRequest())
		assert.EqualError(t, err, "connection reset")
	})
}

func TestBatchService_GetByID_NotFound(t *testing.T) {
	svc, batchRepo, _ := newTestService()
	id := uuid.New()
	batchRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	_, err := svc.GetByID(context.Background(), id)

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, "Batch not found", err.Error())
}

func TestBatchService_List(t *testing.T) {
	svc, batchRepo, _ := newTestService()
	b := sampleBatch(t)
	batchRepo.On("FindAll", mock.Anything).Return([]forecast.Batch{*b}, nil)

	list, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestBatchService_Delete(t *testing.T) {
	svc, batchRepo, _ := newTestService()
	missing := uuid.New()
	present := uuid.New()
	batchRepo.On("Delete", mock.Anything, missing).Return(shared.ErrNotFound)
	batchRepo.On("Delete", mock.Anything, present).Return(nil)

	assert.Equal(t, ErrBatchNotFound, svc.Delete(context.Background(), missing))
	assert.NoError(t, svc.Delete(context.Background(), present))
}

func TestBatchService_CreateScenario(t *testing.T) {
	t.Run("estimates and stores the scenario", func(t *testing.T) {
		svc, batchRepo, scenarioRepo := newTestService()
		b := sampleBatch(t)
		batchRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		scenarioRepo.On("Create", mock.Anything, mock.AnythingOfType("*forecast.Scenario")).Return(nil)

		resp, err := svc.CreateScenario(context.Background(), b.ID, CreateScenarioRequest{ExpectedSell: intPtr(170)})

		require.NoError(t, err)
		assert.Equal(t, b.ID, resp.BatchID)
		assert.Equal(t, 170, resp.ExpectedSell)
		assert.Equal(t, 170, resp.HiddenGiven)
		assert.True(t, resp.TotalCost.Equal(decimal.NewFromInt(59100)))
		assert.True(t, resp.TotalRevenue.Equal(decimal.NewFromInt(135830)))
		assert.True(t, resp.Profit.Equal(decimal.NewFromInt(76730)))
		assert.Equal(t, "56.4897", resp.MarginPercent.String())
		scenarioRepo.AssertExpectations(t)
	})

	t.Run("stores expected_sell as given", func(t *testing.T) {
		svc, batchRepo, scenarioRepo := newTestService()
		b := sampleBatch(t)
		batchRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		scenarioRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.CreateScenario(context.Background(), b.ID, CreateScenarioRequest{ExpectedSell: intPtr(-5)})

		require.NoError(t, err)
		assert.Equal(t, -5, resp.ExpectedSell)
		assert.Equal(t, 0, resp.HiddenGiven)
		assert.True(t, resp.MarginPercent.IsZero())
	})

	t.Run("unknown batch", func(t *testing.T) {
		svc, batchRepo, scenarioRepo := newTestService()
		id := uuid.New()
		batchRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.CreateScenario(context.Background(), id, CreateScenarioRequest{ExpectedSell: intPtr(1)})

		assert.Equal(t, ErrBatchNotFound, err)
		scenarioRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing expected_sell", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.CreateScenario(context.Background(), uuid.New(), CreateScenarioRequest{})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestBatchService_ListScenarios(t *testing.T) {
	t.Run("checks the batch exists first", func(t *testing.T) {
		svc, batchRepo, scenarioRepo := newTestService()
		id := uuid.New()
		batchRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.ListScenarios(context.Background(), id)

		assert.Equal(t, ErrBatchNotFound, err)
		scenarioRepo.AssertNotCalled(t, "FindByBatch", mock.Anything, mock.Anything)
	})

	t.Run("returns scenarios", func(t *testing.T) {
		svc, batchRepo, scenarioRepo := newTestService()
		b := sampleBatch(t)
		sc := forecast.NewScenario(b, 100)
		batchRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)
		scenarioRepo.On("FindByBatch", mock.Anything, b.ID).Return([]forecast.Scenario{*sc}, nil)

		list, err := svc.ListScenarios(context.Background(), b.ID)

		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, sc.ID, list[0].ID)
	})
}

func TestBatchService_EstimateSeries(t *testing.T) {
	svc, batchRepo, _ := newTestService()
	b := sampleBatch(t)
	batchRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)

	t.Run("defaults produced sets to the batch size", func(t *testing.T) {
		resp, err := svc.EstimateSeries(context.Background(), b.ID, SeriesRequest{BuyRate: decimal.RequireFromString("0.85")})

		require.NoError(t, err)
		assert.Equal(t, 200, resp.ProducedSets)
		assert.Equal(t, 170, resp.SoldSets)
		assert.True(t, resp.Profit.Equal(decimal.NewFromInt(76730)))
		assert.True(t, resp.BaseCost.Equal(decimal.NewFromInt(54000)))
		assert.True(t, resp.WelfareCost.Equal(decimal.NewFromInt(5100)))
	})

	t.Run("explicit produced sets", func(t *testing.T) {
		resp, err := svc.EstimateSeries(context.Background(), b.ID, SeriesRequest{
			BuyRate:      decimal.RequireFromString("0.5"),
			ProducedSets: intPtr(5),
		})

		require.NoError(t, err)
		assert.Equal(t, 5, resp.ProducedSets)
		assert.Equal(t, 2, resp.SoldSets)
	})

	t.Run("negative buy rate", func(t *testing.T) {
		_, err := svc.EstimateSeries(context.Background(), b.ID, SeriesRequest{BuyRate: decimal.NewFromInt(-1)})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("produced sets out of range", func(t *testing.T) {
		for _, sets := range []int{-1, forecast.MaxBatchProduced + 1, 2_000_000_000} {
			_, err := svc.EstimateSeries(context.Background(), b.ID, SeriesRequest{
				BuyRate:      decimal.NewFromInt(1),
				ProducedSets: intPtr(sets),
			})
			assert.ErrorIs(t, err, shared.ErrInvalidInput, "produced_sets %d", sets)
		}
	})

	t.Run("largest batch stays exact", func(t *testing.T) {
		resp, err := svc.EstimateSeries(context.Background(), b.ID, SeriesRequest{
			BuyRate:      decimal.NewFromInt(1),
			ProducedSets: intPtr(forecast.MaxBatchProduced),
		})

		require.NoError(t, err)
		assert.True(t, resp.BaseCost.Equal(decimal.NewFromInt(270_000_000)), resp.BaseCost.String())
		assert.True(t, resp.Profit.IsPositive())
	})
}

func TestBatchService_ForecastCurve(t *testing.T) {
	svc, batchRepo, _ := newTestService()
	b := sampleBatch(t)
	batchRepo.On("FindByID", mock.Anything, b.ID).Return(b, nil)

	t.Run("uses the default buy rate", func(t *testing.T) {
		resp, err := svc.ForecastCurve(context.Background(), b.ID, ForecastCurveRequest{MinBatch: 198, MaxBatch: 200})

		require.NoError(t, err)
		assert.True(t, resp.BuyRate.Equal(DefaultCurveBuyRate))
		require.Len(t, resp.Points, 3)
		assert.Equal(t, 198, resp.Points[0].ProducedSets)
		assert.Equal(t, 200, resp.Points[2].ProducedSets)
		assert.Equal(t, 170, resp.Points[2].SoldSets)
		assert.True(t, resp.Points[2].Profit.Equal(decimal.NewFromInt(76730)))
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		_, err := svc.ForecastCurve(context.Background(), b.ID, ForecastCurveRequest{MinBatch: 10, MaxBatch: 5})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
