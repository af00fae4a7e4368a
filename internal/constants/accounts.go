package constants

const (
	MaxNameLen          = 100
	MaxAccountNumberLen = 34
	MaxPINLen           = 12
)

const (
	DefaultBaseURL        = "https://atmapplication-backend.onrender.com/api/atm"
	DefaultCurrencySymbol = "$"
	DefaultLogLevel       = "info"
)
