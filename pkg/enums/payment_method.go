package enums

import "strings"

// PaymentMethod is the free-form method string supplied at checkout.
// Only cash on delivery changes the initial payment state.
type PaymentMethod string

const PaymentMethodCashOnDelivery PaymentMethod = "cod"

// NormalizePaymentMethod trims and lowercases the raw request value.
func NormalizePaymentMethod(value string) PaymentMethod {
	return PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
}

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	return string(m)
}

// IsCashOnDelivery reports whether the method settles on delivery.
func (m PaymentMethod) IsCashOnDelivery() bool {
	return NormalizePaymentMethod(string(m)) == PaymentMethodCashOnDelivery
}

// InitialPaymentStatus returns the state a fresh payment record starts in.
func (m PaymentMethod) InitialPaymentStatus() PaymentStatus {
	if m.IsCashOnDelivery() {
		return PaymentStatusCashOnDelivery
	}
	return PaymentStatusInitiated
}
