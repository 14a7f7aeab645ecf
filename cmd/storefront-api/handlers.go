package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/quickbites/storefront/internal/address"
	"github.com/quickbites/storefront/internal/cart"
	"github.com/quickbites/storefront/internal/catalog"
	"github.com/quickbites/storefront/internal/customer"
	"github.com/quickbites/storefront/internal/httpx"
	"github.com/quickbites/storefront/internal/order"
)

// ---------- auth ----------

func authRequired(auth *customer.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if !strings.HasPrefix(raw, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		id, err := auth.Verify(strings.TrimPrefix(raw, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		httpx.SetCustomerID(c, id)
		c.Next()
	}
}

func customerID(c *gin.Context) string {
	return httpx.CustomerID(c)
}

func registerHandler(auth *customer.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customer.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cust, token, err := auth.Register(c.Request.Context(), req)
		if errors.Is(err, customer.ErrAlreadyExist) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "customer": cust})
	}
}

func loginHandler(auth *customer.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req customer.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cust, token, err := auth.Login(c.Request.Context(), req)
		if errors.Is(err, customer.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "customer": cust})
	}
}

// ---------- catalog ----------

func listCategoriesHandler(cat *catalog.MemoryCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cat.Categories())
	}
}

func getCategoryHandler(cat *catalog.MemoryCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := cat.CategoryByID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

func restaurantsByCategoryHandler(cat *catalog.MemoryCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cat.RestaurantsByCategory(c.Param("id")))
	}
}

func listRestaurantsHandler(cat *catalog.MemoryCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cat.Restaurants())
	}
}

func searchRestaurantsHandler(cat *catalog.MemoryCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cat.Search(c.Query("query")))
	}
}

func getRestaurantHandler(cat *catalog.MemoryCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		found, err := cat.RestaurantByID(c.Param("id"), c.Query("categoryId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

// ---------- profile ----------

func getProfileHandler(repo customer.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cust, err := repo.GetByID(c.Request.Context(), customerID(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

func updateProfileHandler(repo customer.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name  string `json:"name"`
			Email string `json:"email"`
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		upd := &customer.Customer{ID: customerID(c), Name: req.Name, Email: req.Email, Phone: req.Phone}
		if err := repo.Update(c.Request.Context(), upd); err != nil {
			if errors.Is(err, customer.ErrAlreadyExist) {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		cust, err := repo.GetByID(c.Request.Context(), customerID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cust)
	}
}

// ---------- addresses ----------

func listAddressesHandler(store address.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := store.List(c.Request.Context(), customerID(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func addAddressHandler(store address.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var a address.Address
		if err := c.ShouldBindJSON(&a); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		list, err := store.Add(c.Request.Context(), customerID(c), a)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func editAddressHandler(store address.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var a address.Address
		if err := c.ShouldBindJSON(&a); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		list, err := store.Edit(c.Request.Context(), customerID(c), a)
		if errors.Is(err, address.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func deleteAddressHandler(store address.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ID string `json:"id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		list, err := store.Delete(c.Request.Context(), customerID(c), req.ID)
		if errors.Is(err, address.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ---------- cart ----------

type cartView struct {
	Items     []cart.Line      `json:"items"`
	Address   *address.Address `json:"address,omitempty"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	ItemCount int              `json:"itemCount"`
}

func viewOf(s *cart.Store) cartView {
	lines := s.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Items:     lines,
		Address:   s.SelectedAddress(),
		Subtotal:  s.Total(),
		ItemCount: s.ItemCount(),
	}
}

func withCart(carts *cartRegistry, c *gin.Context) (*cart.Store, bool) {
	s, err := carts.For(customerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return s, true
}

func getCartHandler(carts *cartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withCart(carts, c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func addCartItemHandler(carts *cartRegistry, cat *catalog.MemoryCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			DishID string `json:"dishId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		dish, restaurantID, err := cat.DishByID(req.DishID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "dish not found"})
			return
		}
		s, ok := withCart(carts, c)
		if !ok {
			return
		}
		item := cart.Item{ID: dish.ID, Name: dish.Name, Price: dish.Price}
		if err := s.AddItem(item, restaurantID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func setCartQuantityHandler(carts *cartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Quantity *int `json:"quantity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s, ok := withCart(carts, c)
		if !ok {
			return
		}
		if err := s.SetQuantity(c.Param("id"), *req.Quantity); err != nil {
			if errors.Is(err, cart.ErrNegativeQuantity) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func removeCartItemHandler(carts *cartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withCart(carts, c)
		if !ok {
			return
		}
		if err := s.RemoveItem(c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func clearCartHandler(carts *cartRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := withCart(carts, c)
		if !ok {
			return
		}
		if err := s.Clear(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

func selectCartAddressHandler(carts *cartRegistry, store address.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			AddressID string `json:"addressId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		list, err := store.List(c.Request.Context(), customerID(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		var picked *address.Address
		for i := range list {
			if list[i].ID == req.AddressID {
				picked = &list[i]
				break
			}
		}
		if picked == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "address not found"})
			return
		}
		s, ok := withCart(carts, c)
		if !ok {
			return
		}
		if err := s.SelectAddress(picked); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, viewOf(s))
	}
}

// ---------- orders ----------

func placeOrderHandler(carts *cartRegistry, submit *order.Service, history *order.History) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.PlaceOrderRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		s, ok := withCart(carts, c)
		if !ok {
			return
		}
		o, err := submit.Submit(c.Request.Context(), customerID(c), s, req.PaymentMethod)
		switch {
		case errors.Is(err, order.ErrEmptyCart), errors.Is(err, order.ErrNoAddress):
			c.JSON(http.StatusUnprocessableEntity, order.PlaceOrderResponse{Error: err.Error()})
			return
		case err != nil && o == nil:
			c.JSON(http.StatusBadGateway, order.PlaceOrderResponse{Error: err.Error()})
			return
		}
		history.Remember(*o)
		c.JSON(http.StatusCreated, order.PlaceOrderResponse{Success: true, Order: o})
	}
}

func listOrdersHandler(history *order.History) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := history.Load(c.Request.Context(), customerID(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if q := c.Query("q"); q != "" {
			list = order.Filter(list, q)
		}
		if list == nil {
			list = []order.Order{}
		}
		c.JSON(http.StatusOK, list)
	}
}

func exportOrdersHandler(history *order.History) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := history.Load(c.Request.Context(), customerID(c))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if q := c.Query("q"); q != "" {
			list = order.Filter(list, q)
		}
		c.Header("Content-Disposition", `attachment; filename="`+order.CSVFileName+`"`)
		c.Data(http.StatusOK, "text/csv", order.ExportCSV(list))
	}
}
