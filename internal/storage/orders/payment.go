package orders

import "fmt"

// PaymentMethod enumerates the accepted payment methods. The zero value
// means the method is unknown or was never set.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "CASH"
	PaymentCreditCard    PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard     PaymentMethod = "DEBIT_CARD"
	PaymentBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PaymentPSE           PaymentMethod = "PSE"
	PaymentDigitalWallet PaymentMethod = "DIGITAL_WALLET"
)

var paymentNames = map[PaymentMethod]string{
	PaymentCash:          "Cash",
	PaymentCreditCard:    "Credit Card",
	PaymentDebitCard:     "Debit Card",
	PaymentBankTransfer:  "Bank Transfer",
	PaymentPSE:           "PSE",
	PaymentDigitalWallet: "Digital Wallet",
}

// DisplayName returns the human-readable name of the method.
func (m PaymentMethod) DisplayName() string {
	if name, ok := paymentNames[m]; ok {
		return name
	}
	return string(m)
}

// IsValid reports whether m is one of the declared methods.
func (m PaymentMethod) IsValid() bool {
	_, ok := paymentNames[m]
	return ok
}

// ParsePaymentMethod parses the wire value of a payment method column.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", fmt.Errorf("unknown payment method %q", s)
	}
	return m, nil
}
