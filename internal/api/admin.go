package api

import (
	"net/http"
	"strconv"
	"strings"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
)

// setupAdminRoutes wires the role-gated admin console API.
// editor: product CRUD; admin: + brand CRUD, discount creation;
// super_admin: + user and brand deletion.
func (h *Handler) setupAdminRoutes(v1 *gin.RouterGroup) {
	admin := v1.Group("/admin")
	admin.Use(authMiddleware(h.authService))

	admin.POST("/logout", h.logout)
	admin.GET("/dashboard", h.getDashboard)

	products := admin.Group("", requireRole(models.RoleEditor))
	{
		products.GET("/products", h.adminListProducts)
		products.POST("/products", h.adminCreateProduct)
		products.PUT("/products/:id", h.adminUpdateProduct)
		products.DELETE("/products/:id", h.adminDeleteProduct)

		products.POST("/products/:id/images", h.adminAddImage)
		products.DELETE("/products/:id/images/:imageID", h.adminRemoveImage)
		products.PUT("/products/:id/sizes", h.adminSetSize)
		products.DELETE("/products/:id/sizes/:size", h.adminRemoveSize)

		products.GET("/reservations", h.adminListReservations)
		products.POST("/reservations/:id/confirm", h.adminConfirmReservation)
	}

	admins := admin.Group("", requireRole(models.RoleAdmin))
	{
		admins.POST("/brands", h.adminCreateBrand)
		admins.PUT("/brands/:id", h.adminUpdateBrand)

		admins.GET("/discounts", h.adminListDiscounts)
		admins.POST("/discounts", h.adminCreateDiscount)

		admins.GET("/settings", h.adminListSettings)
		admins.PUT("/settings/:key", h.adminUpdateSetting)
	}

	super := admin.Group("", requireRole(models.RoleSuperAdmin))
	{
		super.DELETE("/brands/:id", h.adminDeleteBrand)

		super.GET("/users", h.adminListUsers)
		super.POST("/users", h.adminCreateUser)
		super.DELETE("/users/:id", h.adminDeleteUser)
	}
}

func (h *Handler) logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	_ = h.authService.Logout(c.Request.Context(), token)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *Handler) getDashboard(c *gin.Context) {
	dashboard, err := h.productService.GetDashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) adminListProducts(c *gin.Context) {
	filter := parseFilter(c)
	filter.Status = c.Query("status")

	page, err := h.catalogService.ListAdminProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) adminCreateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) adminUpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) adminDeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type imageRequest struct {
	ImageURL     string `json:"image_url" binding:"required"`
	DisplayOrder int    `json:"display_order" binding:"required,min=1"`
}

func (h *Handler) adminAddImage(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	img := &models.ProductImage{
		ProductID:    productID,
		ImageURL:     req.ImageURL,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.productService.AddImage(c.Request.Context(), img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add image"})
		return
	}
	c.JSON(http.StatusCreated, img)
}

func (h *Handler) adminRemoveImage(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("imageID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	if err := h.productService.RemoveImage(c.Request.Context(), imageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type sizeRequest struct {
	Size          string `json:"size" binding:"required"`
	StockQuantity int    `json:"stock_quantity" binding:"min=0"`
}

func (h *Handler) adminSetSize(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req sizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	size := &models.ProductSize{
		ProductID:     productID,
		Size:          req.Size,
		StockQuantity: req.StockQuantity,
	}
	if err := h.productService.SetSizeStock(c.Request.Context(), size); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, size)
}

func (h *Handler) adminRemoveSize(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	size, err := h.productService.GetSize(c.Request.Context(), productID, c.Param("size"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up size"})
		return
	}
	if size == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Size not found"})
		return
	}

	if err := h.productService.RemoveSize(c.Request.Context(), size); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove size"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) adminListReservations(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))

	reservations, err := h.reservationService.ListReservations(c.Request.Context(), c.Query("status"), page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reservations})
}

func (h *Handler) adminConfirmReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reservation ID"})
		return
	}

	if err := h.reservationService.ConfirmReservation(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}

func (h *Handler) adminCreateBrand(c *gin.Context) {
	var req service.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	brand, err := h.brandService.CreateBrand(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, brand)
}

func (h *Handler) adminUpdateBrand(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	var req service.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	brand, err := h.brandService.UpdateBrand(c.Request.Context(), id, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (h *Handler) adminDeleteBrand(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	if err := h.brandService.DeleteBrand(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) adminListDiscounts(c *gin.Context) {
	codes, err := h.discountService.ListCodes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list discount codes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": codes})
}

func (h *Handler) adminCreateDiscount(c *gin.Context) {
	var code models.DiscountCode
	if err := c.ShouldBindJSON(&code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.discountService.CreateCode(c.Request.Context(), &code); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, code)
}

func (h *Handler) adminListSettings(c *gin.Context) {
	settings, err := h.productService.ListSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": settings})
}

type settingRequest struct {
	Value string `json:"value" binding:"required"`
}

func (h *Handler) adminUpdateSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.productService.UpdateSetting(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *Handler) adminListUsers(c *gin.Context) {
	users, err := h.authService.ListAdminUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

type createUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role" binding:"required"`
}

func (h *Handler) adminCreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user := &models.AdminUser{Email: req.Email, FullName: req.FullName, Role: req.Role}
	if err := h.authService.CreateAdminUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) adminDeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.authService.DeleteAdminUser(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
