package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/quickbites/storefront/internal/address"
	"github.com/quickbites/storefront/internal/cart"
	"github.com/quickbites/storefront/internal/catalog"
	"github.com/quickbites/storefront/internal/config"
	"github.com/quickbites/storefront/internal/customer"
	"github.com/quickbites/storefront/internal/db"
	"github.com/quickbites/storefront/internal/httpx"
	"github.com/quickbites/storefront/internal/localstore"
	"github.com/quickbites/storefront/internal/order"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store, err := localstore.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("[main] local store: %v", err)
	}

	// Order history: Postgres > remote endpoint > local JSON.
	var orderRepo order.Repository
	switch {
	case cfg.PostgresDSN != "":
		pool, err := db.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("[main] postgres: %v", err)
		}
		defer pool.Close()
		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("[main] schema: %v", err)
		}
		orderRepo = order.NewPGRepo(pool)
		log.Printf("[main] order history: postgres")
	case cfg.OrderAPIBaseURL != "":
		orderRepo = order.NewClient(cfg.OrderAPIBaseURL)
		log.Printf("[main] order history: remote %s", cfg.OrderAPIBaseURL)
	default:
		orderRepo = order.NewLocalRepo(store)
		log.Printf("[main] order history: local json")
	}

	// Cart persistence: Redis when configured, local files otherwise.
	var cartStorage func(customerID string) cart.Storage
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cartStorage = func(customerID string) cart.Storage {
			return cart.NewRedisStorage(rdb, "cart:"+customerID)
		}
		log.Printf("[main] cart storage: redis %s", cfg.RedisAddr)
	} else {
		cartStorage = func(customerID string) cart.Storage {
			return cart.NewFileStorage(store, "cart-"+customerID)
		}
		log.Printf("[main] cart storage: local json")
	}

	var addresses address.Store
	if cfg.AddressAPIBaseURL != "" {
		addresses = address.NewClient(cfg.AddressAPIBaseURL)
		log.Printf("[main] addresses: remote %s", cfg.AddressAPIBaseURL)
	} else {
		addresses = address.NewMemoryStore()
		log.Printf("[main] addresses: in-memory")
	}

	cat := catalog.Seed()
	customers := customer.NewMemoryRepo()
	auth := customer.NewAuth(customers, cfg.JWTSecret, cfg.TokenTTL)
	carts := newCartRegistry(cartStorage)
	submit := order.NewService(orderRepo, cfg.DeliveryFee, cfg.TaxAmount).WithRestaurantNames(cat)
	history := order.NewHistory(orderRepo)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	r.GET("/categories", listCategoriesHandler(cat))
	r.GET("/categories/:id", getCategoryHandler(cat))
	r.GET("/categories/:id/restaurants", restaurantsByCategoryHandler(cat))
	r.GET("/restaurants", listRestaurantsHandler(cat))
	r.GET("/restaurants/search", searchRestaurantsHandler(cat))
	r.GET("/restaurants/:id", getRestaurantHandler(cat))

	r.POST("/auth/register", registerHandler(auth))
	r.POST("/auth/login", loginHandler(auth))

	priv := r.Group("/", authRequired(auth))
	priv.GET("/customer/details", getProfileHandler(customers))
	priv.PUT("/customer/details", updateProfileHandler(customers))
	priv.GET("/customer/address", listAddressesHandler(addresses))
	priv.POST("/customer/address", addAddressHandler(addresses))
	priv.PUT("/customer/address", editAddressHandler(addresses))
	priv.DELETE("/customer/address", deleteAddressHandler(addresses))

	priv.GET("/cart", getCartHandler(carts))
	priv.DELETE("/cart", clearCartHandler(carts))
	priv.POST("/cart/items", addCartItemHandler(carts, cat))
	priv.PATCH("/cart/items/:id", setCartQuantityHandler(carts))
	priv.DELETE("/cart/items/:id", removeCartItemHandler(carts))
	priv.PUT("/cart/address", selectCartAddressHandler(carts, addresses))

	priv.GET("/customer/orders", listOrdersHandler(history))
	priv.POST("/customer/orders", placeOrderHandler(carts, submit, history))
	priv.GET("/customer/orders/export", exportOrdersHandler(history))

	log.Printf("storefront-api listening on %s", cfg.Addr)
	log.Fatal(r.Run(cfg.Addr))
}
