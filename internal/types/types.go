// Package types holds the entity records shared across the admin client.
// The server is the source of truth for all of them; this layer only loads,
// edits and posts them back.
package types

import "time"

// Node is the common shape of hierarchical entities (categories and pages).
//
// Invariants (enforced server-side, relied upon client-side):
//   - Level of a node equals Level of its parent + 1.
//   - Root nodes have Level 0 and a nil ParentID.
//   - A node is never its own ancestor.
type Node struct {
	ID           int64  `json:"id"`
	ParentID     *int64 `json:"parentId"`
	Level        int    `json:"level"`
	Position     int    `json:"position"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	IsActive     bool   `json:"isActive"`
	ChildCount   int    `json:"childCount"`
	ProductCount int    `json:"productCount"`
}

// Root reports whether the node claims to be a root.
func (n Node) Root() bool {
	return n.ParentID == nil
}

// Pagination is the server's paging summary for list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Category is a catalog category. Hierarchy fields live on the embedded Node.
type Category struct {
	Node
	Description    string  `json:"description,omitempty"`
	ImageURL       *string `json:"imageUrl,omitempty"`
	SEOTitle       *string `json:"seoTitle,omitempty"`
	SEODescription *string `json:"seoDescription,omitempty"`
}

// ProductStatus enumerates product lifecycle states.
type ProductStatus string

const (
	ProductDraft     ProductStatus = "draft"
	ProductPublished ProductStatus = "published"
	ProductArchived  ProductStatus = "archived"
)

// Product is a catalog product.
type Product struct {
	ID         int64         `json:"id"`
	CategoryID *int64        `json:"categoryId"`
	Name       string        `json:"name"`
	Slug       string        `json:"slug"`
	SKU        string        `json:"sku"`
	Price      float64       `json:"price"`
	OldPrice   *float64      `json:"oldPrice,omitempty"`
	Stock      int           `json:"stock"`
	Status     ProductStatus `json:"status"`
	Images     []string      `json:"images,omitempty"`
}

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a single line of an order.
type OrderItem struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Order is an order detail record.
type Order struct {
	ID            int64       `json:"id"`
	Number        string      `json:"number"`
	Status        OrderStatus `json:"status"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Comment       string      `json:"comment,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Total         float64     `json:"total"`
	Currency      string      `json:"currency"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Role enumerates admin panel roles.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// User is an admin panel operator account.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        Role      `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	IsActive    bool      `json:"isActive"`
	LastLoginAt time.Time `json:"lastLoginAt,omitempty"`
}

// ReviewStatus enumerates moderation states.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is a customer product review in the moderation queue.
type Review struct {
	ID        int64        `json:"id"`
	ProductID int64        `json:"productId"`
	Author    string       `json:"author"`
	Rating    int          `json:"rating"`
	Text      string       `json:"text"`
	Status    ReviewStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// DiscountKind distinguishes promo code discount math.
type DiscountKind string

const (
	DiscountPercent DiscountKind = "percent"
	DiscountFixed   DiscountKind = "fixed"
)

// PromoCode is a discount code record.
type PromoCode struct {
	ID         int64        `json:"id"`
	Code       string       `json:"code"`
	Kind       DiscountKind `json:"kind"`
	Value      float64      `json:"value"`
	MinOrder   *float64     `json:"minOrder,omitempty"`
	UsageLimit *int         `json:"usageLimit,omitempty"`
	UsedCount  int          `json:"usedCount"`
	ExpiresAt  *time.Time   `json:"expiresAt,omitempty"`
	IsActive   bool         `json:"isActive"`
}

// Currency is a display/settlement currency.
type Currency struct {
	ID        int64   `json:"id"`
	Code      string  `json:"code"` // ISO 4217, e.g. "USD"
	Symbol    string  `json:"symbol"`
	Rate      float64 `json:"rate"` // relative to the default currency
	IsDefault bool    `json:"isDefault"`
	IsActive  bool    `json:"isActive"`
}

// PaymentProvider is a configured payment method. Config carries
// provider-specific keys; the required set per Type is validated before
// submission (see billing.RequiredConfigKeys).
type PaymentProvider struct {
	ID       int64             `json:"id"`
	Type     string            `json:"type"` // e.g. "stripe", "paypal", "cod"
	Name     string            `json:"name"`
	Enabled  bool              `json:"enabled"`
	Position int               `json:"position"`
	Config   map[string]string `json:"config,omitempty"`
}

// MediaFile is an uploaded asset.
type MediaFile struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mimeType"`
	CreatedAt time.Time `json:"createdAt"`
}
