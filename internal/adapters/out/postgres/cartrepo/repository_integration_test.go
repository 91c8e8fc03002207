package cartrepo_test

import (
	"context"
	"testing"

	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/partyrepo"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *cartrepo.GormCartRepository
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = cartrepo.NewGormCartRepository(database.DB)
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) seedProduct(restaurantID int64, price string) int64 {
	p := cartrepo.ProductDTO{RestaurantID: restaurantID, Name: "item", Price: decimal.RequireFromString(price)}
	suite.Require().NoError(suite.database.DB.Create(&p).Error)
	return p.ID
}

func (suite *CartRepositoryIntegrationTestSuite) seedCart(customerID, productID int64, qty int) {
	suite.Require().NoError(suite.database.DB.Create(&cartrepo.CartItemDTO{
		CustomerID: customerID, ProductID: productID, Quantity: qty,
	}).Error)
}

func (suite *CartRepositoryIntegrationTestSuite) TestItems_FiltersByRestaurantAndPricesFromCatalog() {
	ctx := context.Background()
	dal := suite.seedProduct(2, "50.00")
	naan := suite.seedProduct(2, "30.00")
	other := suite.seedProduct(3, "10.00")
	suite.seedCart(1, dal, 2)
	suite.seedCart(1, naan, 1)
	suite.seedCart(1, other, 4)
	suite.seedCart(9, dal, 1)

	items, err := suite.repository.Items(ctx, 1, 2)
	suite.Require().NoError(err)
	suite.Require().Len(items, 2)
	suite.Equal(kernel.ID(dal), items[0].ProductID)
	suite.Equal(2, items[0].Quantity)
	suite.True(decimal.RequireFromString("50").Equal(items[0].UnitPrice))
	suite.Equal(kernel.ID(naan), items[1].ProductID)
}

func (suite *CartRepositoryIntegrationTestSuite) TestClear_OnlyRemovesThatRestaurantsItems() {
	ctx := context.Background()
	dal := suite.seedProduct(2, "50.00")
	other := suite.seedProduct(3, "10.00")
	suite.seedCart(1, dal, 1)
	suite.seedCart(1, other, 1)

	suite.Require().NoError(suite.repository.Clear(ctx, 1, 2))

	cleared, err := suite.repository.Items(ctx, 1, 2)
	suite.Require().NoError(err)
	suite.Empty(cleared)

	kept, err := suite.repository.Items(ctx, 1, 3)
	suite.Require().NoError(err)
	suite.Len(kept, 1)
}

func (suite *CartRepositoryIntegrationTestSuite) TestPartyDirectory_HasRole() {
	db := suite.database.DB
	suite.Require().NoError(db.Create(&partyrepo.UserDTO{ID: 1, Role: "customer"}).Error)
	directory := partyrepo.NewGormPartyDirectory(db)

	ok, err := directory.HasRole(context.Background(), 1, kernel.RoleCustomer)
	suite.Require().NoError(err)
	suite.True(ok)

	ok, err = directory.HasRole(context.Background(), 1, kernel.RoleRestaurant)
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
