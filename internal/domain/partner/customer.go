package partner

import (
	"strings"
	"time"

	"github.com/retailpos/backend/internal/domain/shared"
)

// UnnamedCustomerLabel is used when a customer has neither a name nor an email
const UnnamedCustomerLabel = "Customer without name"

// Customer represents a buyer tracked by the business
type Customer struct {
	shared.BaseAggregateRoot
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(150);index"`
	Phone     string `gorm:"type:varchar(30)"`
	Address   string `gorm:"type:text"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
// A customer needs at least a name or an email so it can be referenced later
func NewCustomer(firstName, lastName, email, phone string) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)

	if firstName == "" && lastName == "" && email == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer needs a name or an email")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		Phone:             strings.TrimSpace(phone),
		IsActive:          true,
	}, nil
}

// DisplayName resolves the name shown on invoices and error reports.
// Falls back to email, then to a fixed label.
func (c *Customer) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name != "" {
		return name
	}
	if c.Email != "" {
		return c.Email
	}
	return UnnamedCustomerLabel
}

// UpdateContact updates contact details
func (c *Customer) UpdateContact(email, phone, address string) {
	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.Address = address
	c.UpdatedAt = time.Now()
}

// Rename updates the customer's name
func (c *Customer) Rename(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" && lastName == "" && c.Email == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer needs a name or an email")
	}
	c.FirstName = firstName
	c.LastName = lastName
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the customer as inactive
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}
