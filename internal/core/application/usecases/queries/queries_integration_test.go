package queries_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/memcache"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/pgtest"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/application/invalidation"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	cache    *memcache.Cache

	customer   *user.User
	agent      *user.User
	idleAgent  *user.User
	restaurant *restaurant.Restaurant
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())
	suite.cache = memcache.New(64)

	var err error
	suite.customer, err = user.NewCustomer(kernel.NewUUID(), "Cora", "5551000", "cora@example.com")
	suite.Require().NoError(err)
	suite.agent, err = user.NewDeliveryAgent(kernel.NewUUID(), "Abe", "5552000", "abe@example.com", 2)
	suite.Require().NoError(err)
	suite.idleAgent, err = user.NewDeliveryAgent(kernel.NewUUID(), "Bea", "5553000", "bea@example.com", 3)
	suite.Require().NoError(err)
	suite.restaurant, err = restaurant.NewRestaurant(kernel.NewUUID(), "Taco Stand", "5 Pier Rd", 4.1)
	suite.Require().NoError(err)

	users := userrepo.NewGormUserRepository(suite.database.DB, noopTracker{})
	suite.Require().NoError(users.Add(ctx, suite.customer))
	suite.Require().NoError(users.Add(ctx, suite.agent))
	suite.Require().NoError(users.Add(ctx, suite.idleAgent))
	suite.Require().NoError(restaurantrepo.NewGormRestaurantRepository(suite.database.DB, noopTracker{}).Add(ctx, suite.restaurant))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_JoinsNamesAndItems() {
	o := suite.addOrder(time.Now(), true)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.ID)
	suite.Equal("Cora", view.CustomerName)
	suite.Equal("Taco Stand", view.RestaurantName)
	suite.Require().NotNil(view.AgentID)
	suite.Equal(suite.agent.ID(), *view.AgentID)
	suite.Require().NotNil(view.AgentName)
	suite.Equal("Abe", *view.AgentName)
	suite.Equal("accepted", view.Status)
	suite.Equal("11.00", view.TotalPrice.String())
	suite.Require().Len(view.Items, 2)
	suite.Equal("burrito", view.Items[0].Name)
	suite.Equal("3.50", view.Items[0].Price.String())
	suite.Equal(2, view.Items[0].Quantity)
	suite.Equal("soda", view.Items[1].Name)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Unassigned_HasNoAgent() {
	o := suite.addOrder(time.Now(), false)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Nil(view.AgentID)
	suite.Nil(view.AgentName)
	suite.Equal("pending", view.Status)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Missing_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.database.DB).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListOrders_NewestFirstWithFilterAndPaging() {
	base := time.Now().Add(-time.Hour)
	oldest := suite.addOrder(base, false)
	middle := suite.addOrder(base.Add(time.Minute), true)
	newest := suite.addOrder(base.Add(2*time.Minute), false)
	handler := queries.NewListOrdersQueryHandler(suite.database.DB)
	ctx := context.Background()

	all, err := queries.NewListOrdersQuery("", 0, 0)
	suite.Require().NoError(err)
	got, err := handler.Handle(ctx, all)
	suite.Require().NoError(err)
	suite.Require().Len(got, 3)
	suite.Equal(newest.ID().String(), got[0].ID)
	suite.Equal(middle.ID().String(), got[1].ID)
	suite.Equal(oldest.ID().String(), got[2].ID)
	suite.Nil(got[0].Agent)
	suite.Require().NotNil(got[1].Agent)
	suite.Equal("Abe", *got[1].Agent)
	suite.Equal("Cora", got[1].Customer)
	suite.Equal("Taco Stand", got[1].Restaurant)

	pending, err := queries.NewListOrdersQuery("pending", 0, 0)
	suite.Require().NoError(err)
	got, err = handler.Handle(ctx, pending)
	suite.Require().NoError(err)
	suite.Require().Len(got, 2)
	suite.Equal("pending", got[0].Status)

	page, err := queries.NewListOrdersQuery("", 1, 1)
	suite.Require().NoError(err)
	got, err = handler.Handle(ctx, page)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.Equal(middle.ID().String(), got[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderHistory_ServedFromCacheUntilInvalidated() {
	ctx := context.Background()
	first := suite.addOrder(time.Now().Add(-time.Minute), false)
	handler := queries.NewGetOrderHistoryQueryHandler(suite.database.DB, suite.cache, 0)
	query, err := queries.NewGetOrderHistoryQuery(suite.customer.ID())
	suite.Require().NoError(err)

	history, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(first.ID(), history[0].ID)

	second := suite.addOrder(time.Now(), true)

	stale, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(stale, 1)

	suite.Require().NoError(suite.cache.Delete(ctx, invalidation.OrderHistoryKey(suite.customer.ID())))

	fresh, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(fresh, 2)
	suite.Equal(second.ID(), fresh[0].ID)
	suite.Equal(first.ID(), fresh[1].ID)
	suite.Require().NotNil(fresh[0].AgentName)
	suite.Equal("Abe", *fresh[0].AgentName)
	suite.Len(fresh[0].Items, 2)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderHistory_UnknownCustomer_Empty() {
	query, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	history, err := queries.NewGetOrderHistoryQueryHandler(suite.database.DB, suite.cache, time.Minute).
		Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(history)
	suite.Empty(history)
}

func (suite *QueriesIntegrationTestSuite) TestGetAgentDetail() {
	ctx := context.Background()
	handler := queries.NewGetAgentDetailQueryHandler(suite.database.DB, suite.cache, 0)

	query, err := queries.NewGetAgentDetailQuery(suite.agent.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(queries.AgentView{
		ID:          suite.agent.ID(),
		Name:        "Abe",
		Mobile:      "5552000",
		Email:       "abe@example.com",
		CurrentLoad: 0,
		MaxLoad:     2,
	}, view)

	_, found, err := suite.cache.Get(ctx, invalidation.AgentKey(suite.agent.ID()))
	suite.Require().NoError(err)
	suite.True(found)
}

func (suite *QueriesIntegrationTestSuite) TestGetAgentDetail_CustomerIsNotAnAgent() {
	handler := queries.NewGetAgentDetailQueryHandler(suite.database.DB, suite.cache, 0)
	query, err := queries.NewGetAgentDetailQuery(suite.customer.ID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetRestaurantDetail() {
	handler := queries.NewGetRestaurantDetailQueryHandler(suite.database.DB, suite.cache, 0)

	query, err := queries.NewGetRestaurantDetailQuery(suite.restaurant.ID())
	suite.Require().NoError(err)
	view, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(queries.RestaurantView{
		ID:       suite.restaurant.ID(),
		Name:     "Taco Stand",
		Location: "5 Pier Rd",
		Rating:   4.1,
	}, view)

	missing, err := queries.NewGetRestaurantDetailQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestListAgents() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.DB.Exec(
		"UPDATE users SET current_load = max_load WHERE id = ?", suite.agent.ID().Bytes()).Error)
	handler := queries.NewListAgentsQueryHandler(suite.database.DB)

	all, err := handler.Handle(ctx, queries.NewListAgentsQuery(false))
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("Abe", all[0].Name)
	suite.Equal(2, all[0].CurrentLoad)
	suite.Equal("Bea", all[1].Name)

	available, err := handler.Handle(ctx, queries.NewListAgentsQuery(true))
	suite.Require().NoError(err)
	suite.Require().Len(available, 1)
	suite.Equal(suite.idleAgent.ID(), available[0].ID)
}

func (suite *QueriesIntegrationTestSuite) TestAuditAgentLoad() {
	ctx := context.Background()
	handler := queries.NewAuditAgentLoadQueryHandler(suite.database.DB)

	// The accepted order is held by the agent while its counter reads zero.
	suite.addOrder(time.Now(), true)

	mismatches, err := handler.Handle(ctx, queries.NewAuditAgentLoadQuery())
	suite.Require().NoError(err)
	suite.Require().Len(mismatches, 1)
	suite.Equal(queries.LoadMismatch{
		AgentID:     suite.agent.ID().String(),
		Name:        "Abe",
		CurrentLoad: 0,
		HeldOrders:  1,
	}, mismatches[0])

	suite.Require().NoError(suite.database.DB.Exec(
		"UPDATE users SET current_load = 1 WHERE id = ?", suite.agent.ID().Bytes()).Error)

	mismatches, err = handler.Handle(ctx, queries.NewAuditAgentLoadQuery())
	suite.Require().NoError(err)
	suite.Empty(mismatches)
}

// addOrder stores an order for the suite's customer. With accepted set the
// order is accepted by the suite's agent; load counters are left alone.
func (suite *QueriesIntegrationTestSuite) addOrder(createdAt time.Time, accepted bool) *order.Order {
	burrito, err := order.NewItem("burrito", kernel.MustMoney("3.50"), 2)
	suite.Require().NoError(err)
	soda, err := order.NewItem("soda", kernel.MustMoney("4.00"), 1)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		suite.customer.ID(),
		suite.restaurant.ID(),
		kernel.MustMoney("11.00"),
		[]order.Item{burrito, soda},
		createdAt,
	)
	suite.Require().NoError(err)
	if accepted {
		_, err = o.Accept(suite.agent.ID())
		suite.Require().NoError(err)
	}

	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.database.DB, noopTracker{}).Add(context.Background(), o))
	return o
}
