package queries_test

import (
	"context"
	"testing"
	"time"

	storage "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var assignTime = time.Date(2023, 1, 10, 9, 0, 0, 0, time.UTC)

type QueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *QueriesTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(storage.Migrate(db))
	suite.factory = storage.NewGormUnitOfWorkFactory(db)
}

func (suite *QueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE couriers, orders, assignments").Error
	suite.Require().NoError(err)
}

func (suite *QueriesTestSuite) addCourier(id int64, vehicle kernel.VehicleType, regions ...int64) *courier.Courier {
	hours, err := kernel.ParseWorkingHours([]string{"09:00-18:00"})
	suite.Require().NoError(err)
	c, err := courier.NewCourier(id, vehicle, regions, hours)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().CourierRepository().Add(context.Background(), c))
	return c
}

func (suite *QueriesTestSuite) addOrder(id int64, weight float64, region int64, hours ...string) *order.Order {
	w, err := kernel.NewOrderWeight(weight)
	suite.Require().NoError(err)
	windows, err := kernel.ParseDeliveryHours(hours)
	suite.Require().NoError(err)
	o, err := order.NewOrder(id, w, region, windows)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

// claim stores a sealed batch of the courier holding the given orders.
func (suite *QueriesTestSuite) claim(c *courier.Courier, orders ...*order.Order) *assignment.Assignment {
	ctx := context.Background()
	uow := suite.factory.Create()

	batch, err := assignment.NewAssignment(c.ID(), c.VehicleType(), assignTime)
	suite.Require().NoError(err)
	for _, o := range orders {
		suite.Require().NoError(o.Claim(order.Holding{
			CourierID:    c.ID(),
			AssignmentID: batch.ID(),
			VehicleType:  c.VehicleType(),
			AssignedAt:   assignTime,
		}))
		suite.Require().NoError(batch.Add(o.ID()))
	}
	batch.Seal()

	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, batch))
	for _, o := range orders {
		suite.Require().NoError(uow.OrderRepository().Claim(ctx, o))
	}
	return batch
}

func (suite *QueriesTestSuite) deliver(c *courier.Courier, o *order.Order, after time.Duration) {
	suite.Require().NoError(o.Complete(c.ID(), assignTime.Add(after)))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(context.Background(), o))
}

func (suite *QueriesTestSuite) close(batch *assignment.Assignment) {
	suite.Require().NoError(batch.Complete())
	suite.Require().NoError(suite.factory.Create().AssignmentRepository().Update(context.Background(), batch))
}

func (suite *QueriesTestSuite) TestGetAvailableOrders_ReturnsPoolInOrder() {
	ctx := context.Background()
	c := suite.addCourier(1, kernel.Foot, 1)
	suite.addOrder(10, 1.5, 1, "10:00-11:00")
	held := suite.addOrder(11, 2, 1, "10:00-11:00")
	suite.addOrder(12, 0.01, 2, "23:00-01:00", "12:00-13:00")
	suite.claim(c, held)

	handler := queries.NewGetAvailableOrdersQueryHandler(suite.db)
	pool, err := handler.Handle(ctx, queries.NewGetAvailableOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(pool, 2)
	suite.Equal(int64(10), pool[0].ID)
	suite.InDelta(1.5, pool[0].Weight, 1e-9)
	suite.Equal(int64(12), pool[1].ID)
	suite.Equal(int64(2), pool[1].Region)
	suite.Equal([]string{"23:00-01:00", "12:00-13:00"}, pool[1].DeliveryHours)
}

func (suite *QueriesTestSuite) TestGetAvailableOrders_EmptyPool() {
	handler := queries.NewGetAvailableOrdersQueryHandler(suite.db)
	pool, err := handler.Handle(context.Background(), queries.NewGetAvailableOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(pool)
	suite.Empty(pool)
}

func (suite *QueriesTestSuite) TestGetPoolStats() {
	c := suite.addCourier(1, kernel.Car, 1)
	other := suite.addCourier(2, kernel.Car, 1)
	suite.addOrder(10, 1, 1, "10:00-11:00")
	a := suite.addOrder(11, 1, 1, "10:00-11:00")
	b := suite.addOrder(12, 1, 1, "10:00-11:00")
	d := suite.addOrder(13, 1, 1, "10:00-11:00")
	suite.claim(c, a, b)
	done := suite.claim(other, d)
	suite.deliver(other, d, time.Minute)
	suite.close(done)

	handler := queries.NewGetPoolStatsQueryHandler(suite.db)
	stats, err := handler.Handle(context.Background(), queries.NewGetPoolStatsQuery())

	suite.Require().NoError(err)
	suite.Equal(queries.GetPoolStatsQueryResponse{
		Available:   1,
		Held:        2,
		Delivered:   1,
		OpenBatches: 1,
	}, stats)
}

func (suite *QueriesTestSuite) TestGetCourierSummary_WithoutHistory() {
	suite.addCourier(1, kernel.Bike, 1, 2)

	handler := queries.NewGetCourierSummaryQueryHandler(suite.factory, services.NewSettlement())
	query, err := queries.NewGetCourierSummaryQuery(1)
	suite.Require().NoError(err)

	summary, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(kernel.Bike, summary.VehicleType)
	suite.Equal([]int64{1, 2}, summary.Regions)
	suite.Equal([]string{"09:00-18:00"}, summary.WorkingHours)
	suite.InDelta(15.0, summary.RemainingCapacity, 1e-9)
	suite.Nil(summary.Rating)
	suite.Nil(summary.Earnings)
}

func (suite *QueriesTestSuite) TestGetCourierSummary_RatingAndEarnings() {
	c := suite.addCourier(1, kernel.Bike, 1)
	first := suite.addOrder(10, 1, 1, "10:00-11:00")
	second := suite.addOrder(11, 1, 1, "10:00-11:00")
	batch := suite.claim(c, first, second)
	suite.deliver(c, first, 10*time.Minute)
	suite.deliver(c, second, 20*time.Minute)
	suite.close(batch)

	handler := queries.NewGetCourierSummaryQueryHandler(suite.factory, services.NewSettlement())
	query, err := queries.NewGetCourierSummaryQuery(1)
	suite.Require().NoError(err)

	summary, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().NotNil(summary.Rating)
	suite.InDelta(4.17, *summary.Rating, 1e-9)
	suite.Require().NotNil(summary.Earnings)
	suite.Equal(int64(2500), *summary.Earnings)
}

func (suite *QueriesTestSuite) TestGetCourierSummary_UnknownCourier() {
	handler := queries.NewGetCourierSummaryQueryHandler(suite.factory, services.NewSettlement())
	query, err := queries.NewGetCourierSummaryQuery(404)
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}
