package request

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=100"`
	Slug           string `json:"slug,omitempty" binding:"omitempty,max=120"`
	Description    string `json:"description,omitempty" binding:"max=500"`
	Image          string `json:"image,omitempty" binding:"omitempty,url"`
	ParentCategory string `json:"parent_category,omitempty"`
	IsActive       *bool  `json:"is_active,omitempty"`
	ShowInMenu     *bool  `json:"show_in_menu,omitempty"`
	SortOrder      int    `json:"sort_order,omitempty"`
}

// UpdateCategoryRequest updates a category. Nil pointers leave the field
// untouched.
type UpdateCategoryRequest struct {
	Name           *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Slug           *string `json:"slug,omitempty" binding:"omitempty,max=120"`
	Description    *string `json:"description,omitempty" binding:"omitempty,max=500"`
	Image          *string `json:"image,omitempty"`
	ParentCategory *string `json:"parent_category,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	ShowInMenu     *bool   `json:"show_in_menu,omitempty"`
	SortOrder      *int    `json:"sort_order,omitempty"`
}

// VariantRequest is one product variant line
type VariantRequest struct {
	SKU        string            `json:"sku" binding:"required,max=50"`
	Attributes map[string]string `json:"attributes" binding:"required"`
	Price      float64           `json:"price" binding:"required,gt=0"`
	Quantity   int               `json:"quantity" binding:"gte=0"`
	Image      string            `json:"image,omitempty"`
	IsActive   *bool             `json:"is_active,omitempty"`
}

// CreateProductRequest creates a product
type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required,min=2,max=200"`
	Slug              string           `json:"slug,omitempty" binding:"omitempty,max=220"`
	Description       string           `json:"description,omitempty" binding:"max=5000"`
	Price             float64          `json:"price" binding:"required,gt=0"`
	ComparePrice      float64          `json:"compare_price,omitempty" binding:"gte=0"`
	Quantity          int              `json:"quantity" binding:"gte=0"`
	TrackQuantity     *bool            `json:"track_quantity,omitempty"`
	AllowBackorder    bool             `json:"allow_backorder,omitempty"`
	LowStockThreshold int              `json:"low_stock_threshold,omitempty" binding:"gte=0"`
	Weight            float64          `json:"weight,omitempty" binding:"gte=0"`
	Category          string           `json:"category" binding:"required"`
	Images            []string         `json:"images,omitempty"`
	Tags              []string         `json:"tags,omitempty"`
	Status            string           `json:"status,omitempty" binding:"omitempty,oneof=active draft archived discontinued"`
	Variants          []VariantRequest `json:"variants,omitempty"`
	DiscountType      string           `json:"discount_type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue     float64          `json:"discount_value,omitempty" binding:"gte=0"`
	SaleStartDate     string           `json:"sale_start_date,omitempty"`
	SaleEndDate       string           `json:"sale_end_date,omitempty"`
	IsFeatured        bool             `json:"is_featured,omitempty"`
}

// UpdateProductRequest updates a product. Nil pointers leave the field
// untouched.
type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty" binding:"omitempty,min=2,max=200"`
	Slug              *string          `json:"slug,omitempty" binding:"omitempty,max=220"`
	Description       *string          `json:"description,omitempty" binding:"omitempty,max=5000"`
	Price             *float64         `json:"price,omitempty" binding:"omitempty,gt=0"`
	ComparePrice      *float64         `json:"compare_price,omitempty" binding:"omitempty,gte=0"`
	Quantity          *int             `json:"quantity,omitempty" binding:"omitempty,gte=0"`
	TrackQuantity     *bool            `json:"track_quantity,omitempty"`
	AllowBackorder    *bool            `json:"allow_backorder,omitempty"`
	LowStockThreshold *int             `json:"low_stock_threshold,omitempty" binding:"omitempty,gte=0"`
	Weight            *float64         `json:"weight,omitempty" binding:"omitempty,gte=0"`
	Category          *string          `json:"category,omitempty"`
	Images            []string         `json:"images,omitempty"`
	Tags              []string         `json:"tags,omitempty"`
	Status            *string          `json:"status,omitempty" binding:"omitempty,oneof=active draft archived discontinued"`
	Variants          []VariantRequest `json:"variants,omitempty"`
	DiscountType      *string          `json:"discount_type,omitempty" binding:"omitempty,oneof=percentage fixed"`
	DiscountValue     *float64         `json:"discount_value,omitempty" binding:"omitempty,gte=0"`
	SaleStartDate     *string          `json:"sale_start_date,omitempty"`
	SaleEndDate       *string          `json:"sale_end_date,omitempty"`
	IsFeatured        *bool            `json:"is_featured,omitempty"`
}

// ProductQuery is the catalog search query string
type ProductQuery struct {
	Category string  `form:"category"`
	Search   string  `form:"search"`
	MinPrice float64 `form:"min_price"`
	MaxPrice float64 `form:"max_price"`
	Tags     string  `form:"tags"`
	Sort     string  `form:"sort"`
	Featured *bool   `form:"featured"`
	OnSale   *bool   `form:"on_sale"`
	Status   string  `form:"status"`
	Page     int     `form:"page,default=1"`
	Limit    int     `form:"limit,default=12"`
}

// UpdateStockRequest adjusts stock for a product or variant
type UpdateStockRequest struct {
	VariantSKU string `json:"variant_sku,omitempty"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Operation  string `json:"operation" binding:"required,oneof=add subtract"`
}

// BulkStatusRequest updates the status of multiple products
type BulkStatusRequest struct {
	IDs    []string `json:"ids" binding:"required,min=1"`
	Status string   `json:"status" binding:"required,oneof=active draft archived discontinued"`
}

// BulkDeleteRequest soft-deletes multiple products
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}
