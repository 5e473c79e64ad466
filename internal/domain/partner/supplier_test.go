package partner

import (
	"strings"
	"testing"

	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSupplier(t *testing.T) *Supplier {
	s, err := NewSupplier("Acme Wholesale Ltd")
	require.NoError(t, err)
	return s
}

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier with zero debt", func(t *testing.T) {
		s := createTestSupplier(t)
		assert.Equal(t, "Acme Wholesale Ltd", s.CompanyName)
		assert.True(t, s.CurrentDebt.IsZero())
		assert.True(t, s.IsActive)
	})

	t.Run("rejects empty company name", func(t *testing.T) {
		_, err := NewSupplier("   ")
		assert.Error(t, err)
	})

	t.Run("rejects overlong company name", func(t *testing.T) {
		_, err := NewSupplier(strings.Repeat("x", 201))
		assert.Error(t, err)
	})
}

func TestSupplier_AddDebt(t *testing.T) {
	t.Run("accumulates debt", func(t *testing.T) {
		s := createTestSupplier(t)
		require.NoError(t, s.AddDebt(valueobject.NewMoneyUSDFromFloat(100)))
		require.NoError(t, s.AddDebt(valueobject.NewMoneyUSDFromFloat(50)))
		assert.True(t, s.CurrentDebt.Equal(decimal.NewFromInt(150)))
		assert.True(t, s.HasDebt())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		s := createTestSupplier(t)
		assert.Error(t, s.AddDebt(valueobject.ZeroUSD()))
		assert.Error(t, s.AddDebt(valueobject.NewMoneyUSDFromFloat(-10)))
	})
}

func TestSupplier_PayDebt(t *testing.T) {
	t.Run("reduces debt", func(t *testing.T) {
		s := createTestSupplier(t)
		require.NoError(t, s.AddDebt(valueobject.NewMoneyUSDFromFloat(200)))

		require.NoError(t, s.PayDebt(valueobject.NewMoneyUSDFromFloat(80)))
		assert.True(t, s.CurrentDebt.Equal(decimal.NewFromInt(120)))
		assert.NotNil(t, s.LastPaymentAt)
	})

	t.Run("paying exact balance clears debt", func(t *testing.T) {
		s := createTestSupplier(t)
		require.NoError(t, s.AddDebt(valueobject.NewMoneyUSDFromFloat(200)))

		require.NoError(t, s.PayDebt(valueobject.NewMoneyUSDFromFloat(200)))
		assert.True(t, s.CurrentDebt.IsZero())
		assert.False(t, s.HasDebt())
	})

	t.Run("overpayment is rejected and balance unchanged", func(t *testing.T) {
		s := createTestSupplier(t)
		require.NoError(t, s.AddDebt(valueobject.NewMoneyUSDFromFloat(200)))

		err := s.PayDebt(valueobject.NewMoneyUSDFromFloat(250))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds current debt")
		assert.True(t, s.CurrentDebt.Equal(decimal.NewFromInt(200)))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		s := createTestSupplier(t)
		assert.Error(t, s.PayDebt(valueobject.ZeroUSD()))
	})
}

func TestSupplier_RestoreDebt(t *testing.T) {
	s := createTestSupplier(t)
	require.NoError(t, s.AddDebt(valueobject.NewMoneyUSDFromFloat(100)))
	require.NoError(t, s.PayDebt(valueobject.NewMoneyUSDFromFloat(100)))
	require.True(t, s.CurrentDebt.IsZero())

	// Deleting the payment record puts the debt back
	require.NoError(t, s.RestoreDebt(valueobject.NewMoneyUSDFromFloat(100)))
	assert.True(t, s.CurrentDebt.Equal(decimal.NewFromInt(100)))
}

func TestCustomer_DisplayName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		want      string
	}{
		{"full name", "Maria", "Lopez", "maria@example.com", "Maria Lopez"},
		{"first name only", "Maria", "", "maria@example.com", "Maria"},
		{"last name only", "", "Lopez", "", "Lopez"},
		{"email fallback", "", "", "maria@example.com", "maria@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.firstName, tt.lastName, tt.email, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.DisplayName())
		})
	}

	t.Run("label fallback when nothing is set", func(t *testing.T) {
		c := &Customer{}
		assert.Equal(t, UnnamedCustomerLabel, c.DisplayName())
	})
}

func TestNewCustomer(t *testing.T) {
	t.Run("rejects customer with no identifying info", func(t *testing.T) {
		_, err := NewCustomer("", "", "", "555-0101")
		assert.Error(t, err)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		c, err := NewCustomer("  Ana ", " Ruiz ", " ana@example.com ", " 555 ")
		require.NoError(t, err)
		assert.Equal(t, "Ana", c.FirstName)
		assert.Equal(t, "Ruiz", c.LastName)
		assert.Equal(t, "ana@example.com", c.Email)
	})
}
