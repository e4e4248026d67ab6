package domain

// Status is one entry of the administrator-curated lifecycle registry.
// Sort order drives display sequence only.
type Status struct {
	ID          string `db:"id" json:"id"`
	Key         string `db:"key" json:"key"`
	NameJA      string `db:"name_ja" json:"nameJa"`
	NameEN      string `db:"name_en" json:"nameEn"`
	Description string `db:"description" json:"description,omitempty"`
	SortOrder   int    `db:"sort_order" json:"sortOrder"`
	Active      bool   `db:"is_active" json:"isActive"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Product struct {
	ID            string  `db:"id" json:"id"`
	Name          string  `db:"name" json:"name"`
	SKU           string  `db:"sku" json:"sku"`
	Category      string  `db:"category" json:"category"`
	Condition     string  `db:"condition" json:"condition"`
	PurchasePrice float64 `db:"purchase_price" json:"purchasePrice"`
	Status        string  `db:"status" json:"status"`
	SellerID      string  `db:"seller_id" json:"sellerId"`
	LocationID    string  `db:"location_id" json:"locationId,omitempty"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
	UpdatedAt     string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Shipment tracks one outbound parcel for a product. A bundle of several
// products shares one parcel informally via a bundle id in Notes.
type Shipment struct {
	ID             string `db:"id" json:"id"`
	ProductID      string `db:"product_id" json:"productId"`
	Status         string `db:"status" json:"status"`
	Carrier        string `db:"carrier" json:"carrier,omitempty"`
	TrackingNumber string `db:"tracking_number" json:"trackingNumber,omitempty"`
	LabelFile      string `db:"label_file" json:"labelFile,omitempty"`
	Notes          string `db:"notes" json:"notes,omitempty"`
	SoldAt         string `db:"sold_at" json:"soldAt,omitempty"`
	CreatedAt      string `db:"created_at" json:"createdAt"`
	UpdatedAt      string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Location struct {
	ID        string `db:"id" json:"id"`
	Code      string `db:"code" json:"code"`
	Zone      string `db:"zone" json:"zone"`
	Capacity  int    `db:"capacity" json:"capacity"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type DeliveryPlan struct {
	ID              string  `db:"id" json:"id"`
	PlanNumber      string  `db:"plan_number" json:"planNumber"`
	SellerID        string  `db:"seller_id" json:"sellerId"`
	SellerName      string  `db:"seller_name" json:"sellerName"`
	Status          string  `db:"status" json:"status"` // draft | submitted | cancelled
	DeliveryAddress string  `db:"delivery_address" json:"deliveryAddress"`
	ContactEmail    string  `db:"contact_email" json:"contactEmail"`
	TotalItems      int     `db:"total_items" json:"totalItems"`
	TotalValue      float64 `db:"total_value" json:"totalValue"`
	DraftJSON       string  `db:"draft_json" json:"-"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
	UpdatedAt       string  `db:"updated_at" json:"updatedAt,omitempty"`
}

type Notification struct {
	ID        string `db:"id" json:"id"`
	UserID    string `db:"user_id" json:"userId"`
	Type      string `db:"type" json:"type"`
	Title     string `db:"title" json:"title"`
	Message   string `db:"message" json:"message"`
	Read      bool   `db:"read" json:"read"`
	Priority  string `db:"priority" json:"priority"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Activity struct {
	ID          string `db:"id" json:"id"`
	Type        string `db:"type" json:"type"`
	Description string `db:"description" json:"description"`
	UserID      string `db:"user_id" json:"userId"`
	ProductID   string `db:"product_id" json:"productId,omitempty"`
	Metadata    string `db:"metadata_json" json:"metadata,omitempty"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

type PickingTask struct {
	ID           string `db:"id" json:"id"`
	ProductID    string `db:"product_id" json:"productId"`
	ShipmentID   string `db:"shipment_id" json:"shipmentId"`
	LocationCode string `db:"location_code" json:"locationCode"`
	Status       string `db:"status" json:"status"` // pending | completed
	Assignee     string `db:"assignee" json:"assignee,omitempty"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
	CompletedAt  string `db:"completed_at" json:"completedAt,omitempty"`
}
