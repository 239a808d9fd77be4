package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/config"
	"storefront-service/internal/catalog"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalogService     *service.CatalogService
	productService     *service.ProductService
	brandService       *service.BrandService
	reservationService *service.ReservationService
	discountService    *service.DiscountService
	analyticsService   *service.AnalyticsService
	authService        *service.AuthService
	cfg                config.StoreConfig
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalogService *service.CatalogService,
	productService *service.ProductService,
	brandService *service.BrandService,
	reservationService *service.ReservationService,
	discountService *service.DiscountService,
	analyticsService *service.AnalyticsService,
	authService *service.AuthService,
	cfg config.StoreConfig,
) *Handler {
	return &Handler{
		catalogService:     catalogService,
		productService:     productService,
		brandService:       brandService,
		reservationService: reservationService,
		discountService:    discountService,
		analyticsService:   analyticsService,
		authService:        authService,
		cfg:                cfg,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/home", h.getHomepage)
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:slug", h.getProduct)
		v1.GET("/products/:slug/whatsapp", h.getContactLink)
		v1.GET("/brands", h.listBrands)

		v1.POST("/reservations", h.createReservation)
		v1.POST("/reservations/:id/cancel", h.cancelReservation)

		v1.POST("/discounts/validate", h.validateDiscount)

		v1.POST("/track/event", h.trackEvent)
		v1.GET("/track/view/:slug", h.trackView)

		v1.POST("/admin/login", h.login)
	}

	h.setupAdminRoutes(v1)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// parseFilter reads catalog filter query parameters
func parseFilter(c *gin.Context) catalog.Filter {
	var filter catalog.Filter

	filter.Search = c.Query("search")
	filter.BrandSlug = c.Query("brand")
	filter.Gender = c.Query("gender")
	filter.Category = c.Query("category")
	filter.Sort = c.Query("sort")

	if v := c.Query("featured"); v != "" {
		featured := v == "true" || v == "1"
		filter.Featured = &featured
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filter.MaxPrice = v
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil {
		filter.PageSize = v
	}

	return filter
}

// getHomepage serves the storefront landing payload
func (h *Handler) getHomepage(c *gin.Context) {
	page := h.catalogService.ListFeatured(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"store_name": h.cfg.Name,
		"featured":   page,
	})
}

// listProducts handles the storefront catalog listing
func (h *Handler) listProducts(c *gin.Context) {
	filter := parseFilter(c)
	if filter.PageSize > h.cfg.AdminPageSize {
		filter.PageSize = h.cfg.AdminPageSize
	}

	page := h.catalogService.ListCatalog(c.Request.Context(), filter)
	c.JSON(http.StatusOK, page)
}

// getProduct handles a storefront product page fetch
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalogService.GetPublishedProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// getContactLink renders the WhatsApp deep link for a product and size
func (h *Handler) getContactLink(c *gin.Context) {
	size := c.Query("size")
	if size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size is required"})
		return
	}

	link, err := h.analyticsService.BuildContactLink(c.Request.Context(), c.Param("slug"), size)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": link})
}

// listBrands handles the storefront brand filter bar
func (h *Handler) listBrands(c *gin.Context) {
	brands, err := h.catalogService.ListBrands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": brands})
}

// createReservation handles a storefront stock hold request
func (h *Handler) createReservation(c *gin.Context) {
	var req service.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSizeUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Size is out of stock"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create reservation",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// cancelReservation releases a pending hold
func (h *Handler) cancelReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := h.reservationService.CancelReservation(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// validateDiscountRequest is the discount validation payload
type validateDiscountRequest struct {
	Code           string  `json:"code" binding:"required"`
	PurchaseAmount float64 `json:"purchase_amount"`
}

// validateDiscount checks a discount code without consuming a use
func (h *Handler) validateDiscount(c *gin.Context) {
	var req validateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pct, err := h.discountService.ValidateCode(c.Request.Context(), req.Code, req.PurchaseAmount)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "reason": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "percentage": pct})
}

// trackEventRequest is the analytics event payload
type trackEventRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// trackEvent records a view event from the client; always 200
func (h *Handler) trackEvent(c *gin.Context) {
	var req trackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}

	h.analyticsService.TrackView(c.Request.Context(), req.Slug)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// trackView records a product page view; always 200
func (h *Handler) trackView(c *gin.Context) {
	h.analyticsService.TrackView(c.Request.Context(), c.Param("slug"))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// loginRequest carries the platform-verified admin identity
type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// login exchanges a verified identity for a session token
func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not an admin user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
