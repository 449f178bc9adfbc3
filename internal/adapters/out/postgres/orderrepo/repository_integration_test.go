package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	tracker    *MockAggregateTracker
	repository *orderrepo.GormOrderRepository

	customer   *user.User
	agent      *user.User
	restaurant *restaurant.Restaurant
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)

	var err error
	suite.customer, err = user.NewCustomer(kernel.NewUUID(), "Cora", "5551000", "cora@example.com")
	suite.Require().NoError(err)
	suite.agent, err = user.NewDeliveryAgent(kernel.NewUUID(), "Abe", "5552000", "abe@example.com", 3)
	suite.Require().NoError(err)
	suite.restaurant, err = restaurant.NewRestaurant(kernel.NewUUID(), "Taco Stand", "5 Pier Rd", 4.1)
	suite.Require().NoError(err)

	users := userrepo.NewGormUserRepository(suite.database.DB, suite.tracker)
	suite.Require().NoError(users.Add(ctx, suite.customer))
	suite.Require().NoError(users.Add(ctx, suite.agent))
	suite.Require().NoError(restaurantrepo.NewGormRestaurantRepository(suite.database.DB, suite.tracker).Add(ctx, suite.restaurant))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsItemsInOrder() {
	ctx := context.Background()
	o := suite.newOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))
	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Equal(order.Pending, got.Status())
	suite.Nil(got.AgentID())
	suite.Equal("21.50", got.TotalPrice().String())
	suite.True(o.CreatedAt().Equal(got.CreatedAt()))
	suite.Require().Len(got.Items(), 2)
	suite.Equal("taco", got.Items()[0].Name())
	suite.Equal(3, got.Items()[0].Quantity())
	suite.Equal("horchata", got.Items()[1].Name())
	suite.Equal("4.00", got.Items()[1].UnitPrice().String())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnknownRestaurant_Invalid() {
	items := []order.Item{suite.item("taco", "5.00", 1)}
	o, err := order.NewOrder(kernel.NewUUID(), suite.customer.ID(), kernel.NewUUID(), kernel.MustMoney("5.00"), items, time.Now())
	suite.Require().NoError(err)

	err = suite.repository.Add(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesStatusAndAgent() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := o.Accept(suite.agent.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, got.Status())
	suite.Require().NotNil(got.AgentID())
	suite.Equal(suite.agent.ID(), *got.AgentID())
	suite.Len(got.Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_NotFound() {
	o := suite.newOrder()

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_BlocksSecondLocker() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	holder := suite.database.DB.Begin()
	_, err := orderrepo.NewGormOrderRepository(holder, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	acquired := make(chan error, 1)
	go func() {
		contender := suite.database.DB.Begin()
		defer contender.Rollback()
		_, lockErr := orderrepo.NewGormOrderRepository(contender, suite.tracker).GetForUpdate(ctx, o.ID())
		acquired <- lockErr
	}()

	select {
	case <-acquired:
		suite.Fail("second locker must wait for the first")
	case <-time.After(300 * time.Millisecond):
	}

	suite.Require().NoError(holder.Rollback().Error)
	select {
	case lockErr := <-acquired:
		suite.Require().NoError(lockErr)
	case <-time.After(5 * time.Second):
		suite.Fail("second locker never acquired the row")
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	items := []order.Item{
		suite.item("taco", "3.50", 3),
		suite.item("horchata", "4.00", 2),
	}
	o, err := order.NewOrder(
		kernel.NewUUID(),
		suite.customer.ID(),
		suite.restaurant.ID(),
		kernel.MustMoney("21.50"),
		items,
		time.Now(),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) item(name, price string, qty int) order.Item {
	it, err := order.NewItem(name, kernel.MustMoney(price), qty)
	suite.Require().NoError(err)
	return it
}
