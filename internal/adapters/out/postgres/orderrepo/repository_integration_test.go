package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite exercises the GORM order repository
// against a real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	repository, err := orderrepo.NewGormOrderRepository(suite.db)
	suite.Require().NoError(err)
	suite.repository = repository
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddGet_RoundTripsEveryField() {
	ctx := context.Background()

	o := suite.newPoolOrder("5000", order.NewOnline)
	o.SetLocationLink("https://maps.example/abc")
	o.SetItems("2x coffee, 1x cake")
	suite.Require().NoError(o.SetTotalAmount(decimal.NewFromInt(150)))
	suite.Require().NoError(o.SetCashGiven(decimal.NewFromInt(200)))

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal("5000", got.RequesterID())
	suite.Equal(order.NewOnline, got.Status())
	suite.Equal("https://maps.example/abc", got.LocationLink())
	suite.Equal("2x coffee, 1x cake", got.Items())
	suite.Equal(order.PaymentCash, got.PaymentMethod())
	suite.Equal(order.PaymentNotPaid, got.PaymentStatus())
	suite.True(got.TotalAmount().Equal(decimal.NewFromInt(150)))
	suite.True(got.CashGiven().Equal(decimal.NewFromInt(200)))
	suite.True(got.CashChange().Equal(decimal.NewFromInt(50)))
	suite.WithinDuration(o.CreatedAt(), got.CreatedAt(), time.Second)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsLifecycleTransitions() {
	ctx := context.Background()
	courierID := kernel.ActorID(100)

	o := suite.newPoolOrder("5000", order.New)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := o.SelectCourier(courierID)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Dispatch())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ActiveReady, got.Status())
	suite.Require().NotNil(got.CourierID())
	suite.Equal(courierID, *got.CourierID())
	suite.Nil(got.SelectedCourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesClearedColumns() {
	ctx := context.Background()

	o := suite.dispatchedOrder("5000", kernel.ActorID(100))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Pickup())
	released, err := o.Complete()
	suite.Require().NoError(err)
	suite.Require().NotNil(released)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	// The courier column must come back NULL, not keep its stale value.
	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, got.Status())
	suite.Nil(got.CourierID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistent_ReturnsNotFoundError() {
	o := suite.newPoolOrder("5000", order.New)

	err := suite.repository.Update(context.Background(), o)

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestRemove_DeletesRow() {
	ctx := context.Background()

	o := suite.newPoolOrder("5000", order.Draft)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Remove(ctx, o.ID()))

	_, err := suite.repository.Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(suite.repository.Remove(ctx, o.ID()), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByStatuses_FiltersAndOrders() {
	ctx := context.Background()

	draft := suite.newPoolOrder("1", order.Draft)
	first := suite.newPoolOrder("2", order.New)
	second := suite.newPoolOrder("3", order.NewOnline)
	done := suite.dispatchedOrder("4", kernel.ActorID(100))
	suite.Require().NoError(done.Pickup())
	_, err := done.Complete()
	suite.Require().NoError(err)
	suite.Require().NoError(done.Archive())

	for _, o := range []*order.Order{draft, first, second, done} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	pool, err := suite.repository.GetAllByStatuses(ctx, []order.Status{order.New, order.NewOnline})
	suite.Require().NoError(err)
	suite.Require().Len(pool, 2)
	suite.True(pool[0].ID().IsEqual(first.ID()))
	suite.True(pool[1].ID().IsEqual(second.ID()))

	completed, err := suite.repository.GetAllByStatuses(ctx, []order.Status{order.Completed})
	suite.Require().NoError(err)
	suite.Empty(completed, "archived orders must not show in status views")

	archived, err := suite.repository.GetAllArchived(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(archived, 1)
	suite.True(archived[0].ID().IsEqual(done.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveByCourier() {
	ctx := context.Background()
	courierID := kernel.ActorID(100)

	active := suite.dispatchedOrder("5000", courierID)
	idle := suite.newPoolOrder("5001", order.New)
	suite.Require().NoError(suite.repository.Add(ctx, active))
	suite.Require().NoError(suite.repository.Add(ctx, idle))

	got, err := suite.repository.GetActiveByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(active.ID()))

	_, err = suite.repository.GetActiveByCourier(ctx, kernel.ActorID(200))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveByCourier_FiltersByStatus() {
	ctx := context.Background()
	courierID := int64(300)

	// a stale row may keep its courier column after the order ended; the
	// lookup filters on status, same as the in-memory store.
	stale := orderrepo.OrderDTO{
		ID:          uuid.New(),
		RequesterID: "5000",
		Status:      order.Completed.String(),
		CourierID:   &courierID,
		CreatedAt:   time.Now(),
	}
	suite.Require().NoError(suite.db.Create(&stale).Error)

	_, err := suite.repository.GetActiveByCourier(ctx, kernel.ActorID(courierID))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetLastByRequester_ReturnsNewest() {
	ctx := context.Background()

	older := suite.newPoolOrder("5000", order.New)
	suite.Require().NoError(suite.repository.Add(ctx, older))

	time.Sleep(10 * time.Millisecond)
	newer := suite.newPoolOrder("5000", order.NewOnline)
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	got, err := suite.repository.GetLastByRequester(ctx, "5000")
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(newer.ID()))

	_, err = suite.repository.GetLastByRequester(ctx, "9999")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) newPoolOrder(
	requesterID string, status order.Status,
) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), requesterID, status, "", "")
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) dispatchedOrder(
	requesterID string, courierID kernel.ActorID,
) *order.Order {
	o := suite.newPoolOrder(requesterID, order.New)
	_, err := o.SelectCourier(courierID)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Dispatch())
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
