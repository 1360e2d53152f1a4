package api

import (
	"net/http"
	"strconv"
	"time"

	"crm-service/internal/models"
	"crm-service/internal/service"
	"crm-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Handler contains HTTP handlers
type Handler struct {
	customers *service.CustomerService
	products  *service.ProductService
	orders    *service.OrderService
}

// NewHandler creates a new HTTP handler
func NewHandler(customers *service.CustomerService, products *service.ProductService, orders *service.OrderService) *Handler {
	return &Handler{
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/hello", h.hello)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/customers", h.createCustomer)
		v1.POST("/customers/bulk", h.bulkCreateCustomers)
		v1.GET("/customers", h.listCustomers)
		v1.GET("/customers/:id", h.getCustomer)

		v1.POST("/products", h.createProduct)
		v1.POST("/products/update-low-stock", h.updateLowStock)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)

		v1.POST("/orders", h.createOrder)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// hello is the trivial liveness query used by the heartbeat job
func (h *Handler) hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"hello": "Hello, CRM!"})
}

// createCustomer handles the create-customer mutation. Business-rule
// failures come back as 200 with the error envelope, never as an HTTP
// error.
func (h *Handler) createCustomer(c *gin.Context) {
	var input service.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.customers.CreateCustomer(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create customer",
			"details": err.Error(),
		})
		return
	}

	c.JSON(mutationStatus(len(result.Errors)), result)
}

func (h *Handler) bulkCreateCustomers(c *gin.Context) {
	var inputs []service.CustomerInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.customers.BulkCreateCustomers(c.Request.Context(), inputs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to bulk create customers",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) listCustomers(c *gin.Context) {
	filter := models.CustomerFilter{
		Name:          c.Query("name"),
		Email:         c.Query("email"),
		CreatedAfter:  timeParam(c, "created_after"),
		CreatedBefore: timeParam(c, "created_before"),
	}

	customers, err := h.customers.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list customers",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// getCustomer returns {"customer": null} with 200 for unknown ids
func (h *Handler) getCustomer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	customer, err := h.customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get customer",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

func (h *Handler) createProduct(c *gin.Context) {
	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.products.CreateProduct(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(mutationStatus(len(result.Errors)), result)
}

func (h *Handler) updateLowStock(c *gin.Context) {
	result, err := h.products.UpdateLowStock(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update low-stock products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) listProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Name:     c.Query("name"),
		PriceGTE: decimalParam(c, "price_gte"),
		PriceLTE: decimalParam(c, "price_lte"),
		StockGTE: intParam(c, "stock_gte"),
		StockLTE: intParam(c, "stock_lte"),
		LowStock: c.Query("low_stock") == "true",
	}

	products, err := h.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) createOrder(c *gin.Context) {
	var input service.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.orders.CreateOrder(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create order",
			"details": err.Error(),
		})
		return
	}

	c.JSON(mutationStatus(len(result.Errors)), result)
}

func (h *Handler) listOrders(c *gin.Context) {
	filter := models.OrderFilter{
		CustomerID:      int64Param(c, "customer_id"),
		TotalGTE:        decimalParam(c, "total_gte"),
		TotalLTE:        decimalParam(c, "total_lte"),
		OrderDateAfter:  timeParam(c, "order_date_after"),
		OrderDateBefore: timeParam(c, "order_date_before"),
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list orders",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get order",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func mutationStatus(errCount int) int {
	if errCount > 0 {
		return http.StatusOK
	}
	return http.StatusCreated
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return id, true
}

func timeParam(c *gin.Context, name string) *time.Time {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func decimalParam(c *gin.Context, name string) *decimal.Decimal {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	d, err := decimal.NewFromString(val)
	if err != nil {
		return nil
	}
	return &d
}

func intParam(c *gin.Context, name string) *int {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &n
}

func int64Param(c *gin.Context, name string) *int64 {
	val := c.Query(name)
	if val == "" {
		return nil
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
