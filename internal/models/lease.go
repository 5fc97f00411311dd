package models

import (
	"time"

	"rental-backend/internal/money"
)

// Lease pairs a property with its tenants. The baseline rent and charges
// amounts act as the revision implicitly effective at StartDate.
type Lease struct {
	ID            int         `json:"id"`
	PropertyID    int         `json:"property_id"`
	TenantName    string      `json:"tenant_name"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       *time.Time  `json:"end_date,omitempty"`
	RentAmount    money.Money `json:"rent_amount"`
	ChargesAmount money.Money `json:"charges_amount"`
	PaymentDueDay int         `json:"payment_due_day"` // 1-31
	CreatedAt     time.Time   `json:"created_at"`
}

// RentRevision changes a lease's amounts from EffectiveDate onward until
// superseded by a later revision.
type RentRevision struct {
	ID            int         `json:"id"`
	LeaseID       int         `json:"lease_id"`
	EffectiveDate time.Time   `json:"effective_date"`
	RentAmount    money.Money `json:"rent_amount"`
	ChargesAmount money.Money `json:"charges_amount"`
	Reason        string      `json:"reason,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

type Payment struct {
	ID          int         `json:"id"`
	LeaseID     int         `json:"lease_id"`
	Amount      money.Money `json:"amount"`
	PaymentDate time.Time   `json:"payment_date"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Charge is an ad hoc billable item outside the monthly rent cycle,
// e.g. a repair recharged to the tenant.
type Charge struct {
	ID         int         `json:"id"`
	LeaseID    int         `json:"lease_id"`
	Label      string      `json:"label"`
	Amount     money.Money `json:"amount"`
	ChargeDate time.Time   `json:"charge_date"`
	CreatedAt  time.Time   `json:"created_at"`
}
