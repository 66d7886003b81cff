package models

import "time"

// OrderModel maps the storefront orders table. Nullable columns are pointers.
// payment_provider, payment_method, stripe_payment_intent_id, paid_at and
// status are optional and detected at startup.
type OrderModel struct {
	ID                    string `gorm:"primaryKey"`
	UserID                string `gorm:"index"`
	OrderNumber           *string
	TotalAmount           float64
	Currency              *string
	Status                *string
	PaymentStatus         *string
	PaymentProvider       *string
	PaymentMethod         *string
	StripePaymentIntentID *string `gorm:"column:stripe_payment_intent_id"`
	PaidAt                *time.Time
	CustomerEmail         *string
	CustomerName          *string
	CustomerPhone         *string
	CreatedAt             time.Time
}

// TableName returns the table name for the model
func (OrderModel) TableName() string {
	return "orders"
}

// PaymentModel maps the payments table
type PaymentModel struct {
	ID                    string `gorm:"primaryKey"`
	UserID                string
	OrderID               string `gorm:"index"`
	Provider              string
	Status                string
	Amount                float64
	Currency              string
	StripePaymentIntentID string `gorm:"column:stripe_payment_intent_id;index"`
	CreatedAt             time.Time
}

// TableName returns the table name for the model
func (PaymentModel) TableName() string {
	return "payments"
}

// ProfileModel maps the profiles table
type ProfileModel struct {
	ID        string `gorm:"primaryKey"`
	Email     *string
	Role      *string
	CreatedAt time.Time
}

// TableName returns the table name for the model
func (ProfileModel) TableName() string {
	return "profiles"
}

// StockItemModel maps the stock columns of the products table
type StockItemModel struct {
	ID            string `gorm:"primaryKey"`
	Name          string
	Quantity      int
	TrackQuantity bool
}

// TableName returns the table name for the model
func (StockItemModel) TableName() string {
	return "products"
}

// UserActivityModel maps the user_activities table
type UserActivityModel struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index"`
	ActionType string
	EntityType *string
	EntityID   *string
	CreatedAt  time.Time
}

// TableName returns the table name for the model
func (UserActivityModel) TableName() string {
	return "user_activities"
}

// DeliveryAssignmentModel maps delivery_assignments; order_id is unique
type DeliveryAssignmentModel struct {
	OrderID    string `gorm:"primaryKey"`
	DriverID   *string
	Status     string
	AssignedAt time.Time
}

// TableName returns the table name for the model
func (DeliveryAssignmentModel) TableName() string {
	return "delivery_assignments"
}

// DriverLocationModel maps driver_locations
type DriverLocationModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	DriverID   string `gorm:"index"`
	Lat        float64
	Lng        float64
	CapturedAt time.Time
}

// TableName returns the table name for the model
func (DriverLocationModel) TableName() string {
	return "driver_locations"
}
