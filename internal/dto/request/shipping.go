package request

// CreateShippingZoneRequest creates a shipping zone (admin)
type CreateShippingZoneRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Areas    []string `json:"areas" binding:"required,min=1"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// UpdateShippingZoneRequest updates a zone (admin)
type UpdateShippingZoneRequest struct {
	Name     *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Areas    []string `json:"areas,omitempty"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// CreateShippingRateRequest creates a rate within a zone (admin)
type CreateShippingRateRequest struct {
	Zone                string  `json:"zone" binding:"required"`
	Name                string  `json:"name" binding:"required,min=2,max=100"`
	Price               float64 `json:"price" binding:"gte=0"`
	FreeShippingMinimum float64 `json:"free_shipping_minimum,omitempty" binding:"gte=0"`
	WeightLimit         float64 `json:"weight_limit,omitempty" binding:"gte=0"`
	PerKgOverage        float64 `json:"per_kg_overage,omitempty" binding:"gte=0"`
	EstimatedDays       int     `json:"estimated_days,omitempty" binding:"gte=0"`
	IsActive            *bool   `json:"is_active,omitempty"`
}

// UpdateShippingRateRequest updates a rate (admin)
type UpdateShippingRateRequest struct {
	Name                *string  `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	Price               *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	FreeShippingMinimum *float64 `json:"free_shipping_minimum,omitempty" binding:"omitempty,gte=0"`
	WeightLimit         *float64 `json:"weight_limit,omitempty" binding:"omitempty,gte=0"`
	PerKgOverage        *float64 `json:"per_kg_overage,omitempty" binding:"omitempty,gte=0"`
	EstimatedDays       *int     `json:"estimated_days,omitempty" binding:"omitempty,gte=0"`
	IsActive            *bool    `json:"is_active,omitempty"`
}

// ShippingQuoteRequest prices shipping for an area and order total
type ShippingQuoteRequest struct {
	Area       string  `json:"area" binding:"required,max=100"`
	OrderTotal float64 `json:"order_total" binding:"gte=0"`
	WeightKg   float64 `json:"weight_kg,omitempty" binding:"gte=0"`
}

// CreateShipmentRequest creates a shipment for an order (admin)
type CreateShipmentRequest struct {
	OrderID        string  `json:"order_id" binding:"required"`
	Zone           string  `json:"zone,omitempty"`
	Courier        string  `json:"courier,omitempty" binding:"max=100"`
	TrackingNumber string  `json:"tracking_number,omitempty" binding:"max=100"`
	WeightKg       float64 `json:"weight_kg,omitempty" binding:"gte=0"`
}

// UpdateShipmentStatusRequest appends a tracking event (admin)
type UpdateShipmentStatusRequest struct {
	Status   string `json:"status" binding:"required,oneof=pending picked_up in_transit out_for_delivery delivered returned cancelled"`
	Location string `json:"location,omitempty" binding:"max=200"`
	Note     string `json:"note,omitempty" binding:"max=500"`
}
