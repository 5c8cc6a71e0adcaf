package model

import (
	"bookingpay/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldCustomerName = "customer_name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
	FieldStatus       = "status"
)

const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID           string    `db:"id"`
	CustomerName string    `db:"customer_name"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	StartDate    time.Time `db:"start_date"`
	EndDate      time.Time `db:"end_date"`
	Status       string    `db:"status"`
	model.Metadata
}
