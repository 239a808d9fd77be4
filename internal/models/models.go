package models

import "time"

// Brand represents a sneaker brand
type Brand struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	LogoURL   *string   `db:"logo_url" json:"logo_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Product represents a sneaker in the catalog
type Product struct {
	ID                 int64     `db:"id" json:"id"`
	BrandID            int64     `db:"brand_id" json:"brand_id"`
	Name               string    `db:"name" json:"name"`
	Slug               string    `db:"slug" json:"slug"`
	Description        *string   `db:"description" json:"description,omitempty"`
	BasePrice          float64   `db:"base_price" json:"base_price"`
	DiscountPercentage *float64  `db:"discount_percentage" json:"discount_percentage,omitempty"`
	FinalPrice         float64   `db:"final_price" json:"final_price"`
	Gender             string    `db:"gender" json:"gender"`
	Category           string    `db:"category" json:"category"`
	Condition          string    `db:"condition" json:"condition"`
	Status             string    `db:"status" json:"status"`
	Featured           bool      `db:"featured" json:"featured"`
	SKU                *string   `db:"sku" json:"sku,omitempty"`
	ViewCount          int64     `db:"view_count" json:"view_count"`
	WhatsAppClicks     int64     `db:"whatsapp_clicks" json:"whatsapp_clicks"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`

	Brand     *Brand         `db:"-" json:"brand,omitempty"`
	MainImage *ProductImage  `db:"-" json:"main_image,omitempty"`
	Images    []ProductImage `db:"-" json:"images,omitempty"`
	Sizes     []ProductSize  `db:"-" json:"sizes,omitempty"`
}

// ProductImage represents a product photo, ordered by display_order.
// The image with display_order 1 (or the first in order) is the main image.
type ProductImage struct {
	ID           int64  `db:"id" json:"id"`
	ProductID    int64  `db:"product_id" json:"product_id"`
	ImageURL     string `db:"image_url" json:"image_url"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
}

// ProductSize represents per-size stock for a product
type ProductSize struct {
	ID            int64  `db:"id" json:"id"`
	ProductID     int64  `db:"product_id" json:"product_id"`
	Size          string `db:"size" json:"size"`
	StockQuantity int    `db:"stock_quantity" json:"stock_quantity"`
	IsAvailable   bool   `db:"is_available" json:"is_available"`
}

// AdminUser represents a console user. Presence of a row grants admin
// access; the role gates which mutations are permitted.
type AdminUser struct {
	ID        int64     `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  *string   `db:"full_name" json:"full_name,omitempty"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Reservation represents a time-boxed stock hold for a named customer
type Reservation struct {
	ID            int64     `db:"id" json:"id"`
	ProductID     int64     `db:"product_id" json:"product_id"`
	Size          string    `db:"size" json:"size"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerEmail string    `db:"customer_email" json:"customer_email"`
	CustomerPhone string    `db:"customer_phone" json:"customer_phone"`
	ExpiresAt     time.Time `db:"expires_at" json:"expires_at"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// DiscountCode represents a promo code. Codes are stored upper-cased and
// matched case-insensitively.
type DiscountCode struct {
	ID          int64     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Percentage  float64   `db:"percentage" json:"percentage"`
	ValidFrom   time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil  time.Time `db:"valid_until" json:"valid_until"`
	UsageLimit  *int      `db:"usage_limit" json:"usage_limit,omitempty"`
	UsedCount   int       `db:"used_count" json:"used_count"`
	MinPurchase *float64  `db:"min_purchase" json:"min_purchase,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ProductView is an append-only view log row
type ProductView struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	ViewedAt  time.Time `db:"viewed_at" json:"viewed_at"`
}

// AnalyticsEvent is an append-only event log row
type AnalyticsEvent struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	EventType string    `db:"event_type" json:"event_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SiteSetting is a flat key/value row read at render time
type SiteSetting struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Product statuses
const (
	ProductStatusDraft     = "draft"
	ProductStatusPublished = "published"
	ProductStatusSoldOut   = "sold_out"
	ProductStatusArchived  = "archived"
)

// Product genders
const (
	GenderMen    = "men"
	GenderWomen  = "women"
	GenderUnisex = "unisex"
	GenderKids   = "kids"
)

// Product categories
const (
	CategoryRunning        = "running"
	CategoryBasketball     = "basketball"
	CategoryCasual         = "casual"
	CategoryLifestyle      = "lifestyle"
	CategoryLimitedEdition = "limited_edition"
)

// Product conditions
const (
	ConditionNewWithBox    = "new_with_box"
	ConditionNewWithoutBox = "new_without_box"
	ConditionPreowned      = "preowned"
)

// Reservation statuses
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusExpired   = "expired"
)

// Admin roles, strictly ordered by privilege
const (
	RoleEditor     = "editor"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

var roleRank = map[string]int{
	RoleEditor:     1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// RoleAtLeast reports whether role carries at least the privilege of min.
// Unknown roles rank below editor.
func RoleAtLeast(role, min string) bool {
	return roleRank[role] >= roleRank[min]
}

// ValidGender reports whether g is a known gender value
func ValidGender(g string) bool {
	switch g {
	case GenderMen, GenderWomen, GenderUnisex, GenderKids:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known category value
func ValidCategory(c string) bool {
	switch c {
	case CategoryRunning, CategoryBasketball, CategoryCasual, CategoryLifestyle, CategoryLimitedEdition:
		return true
	}
	return false
}

// ValidCondition reports whether c is a known condition value
func ValidCondition(c string) bool {
	switch c {
	case ConditionNewWithBox, ConditionNewWithoutBox, ConditionPreowned:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known product status
func ValidStatus(s string) bool {
	switch s {
	case ProductStatusDraft, ProductStatusPublished, ProductStatusSoldOut, ProductStatusArchived:
		return true
	}
	return false
}

// ValidRole reports whether r is a known admin role
func ValidRole(r string) bool {
	_, ok := roleRank[r]
	return ok
}

// MainImage returns the image with display_order 1, or the first image in
// display order when none has order 1. Returns nil for an empty list.
func MainImage(images []ProductImage) *ProductImage {
	if len(images) == 0 {
		return nil
	}
	best := &images[0]
	for i := range images {
		if images[i].DisplayOrder == 1 {
			return &images[i]
		}
		if images[i].DisplayOrder < best.DisplayOrder {
			best = &images[i]
		}
	}
	return best
}
