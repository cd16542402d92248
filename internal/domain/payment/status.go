package payment

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Method string

const (
	MethodMercadoPago Method = "mercadopago"
	MethodCoins       Method = "coins"
	MethodSimulated   Method = "simulated"
)

func ParseMethod(s string) (Method, bool) {
	switch Method(s) {
	case MethodMercadoPago, MethodCoins, MethodSimulated:
		return Method(s), true
	}
	return "", false
}

// CoinsFor returns how many coins cover amount when one coin is worth
// coinValue minor units. Partial coins round up.
func CoinsFor(amount int64, coinValue int64) int {
	if coinValue <= 0 {
		coinValue = 1
	}
	if amount <= 0 {
		return 0
	}
	return int((amount + coinValue - 1) / coinValue)
}
