package currency

import "sort"

// countryCurrency maps work countries to the currency most often used on
// expense lines filed from there. "No Currency" marks countries where the
// form should fall back to USD cash advances.
var countryCurrency = map[string]string{
	"Thailand": "THB",

	"Brunei":      "BND",
	"Cambodia":    "KHR",
	"Indonesia":   "IDR",
	"Laos":        "LAK",
	"Malaysia":    "MYR",
	"Myanmar":     "MMK",
	"Philippines": "PHP",
	"Singapore":   "SGD",
	"Vietnam":     "VND",

	"United States": "USD",
	"Ecuador":       "USD",
	"El Salvador":   "USD",
	"Panama":        "USD",

	"Austria":     "EUR",
	"Belgium":     "EUR",
	"Finland":     "EUR",
	"France":      "EUR",
	"Germany":     "EUR",
	"Greece":      "EUR",
	"Ireland":     "EUR",
	"Italy":       "EUR",
	"Netherlands": "EUR",
	"Portugal":    "EUR",
	"Spain":       "EUR",

	"Australia":            "AUD",
	"Brazil":               "BRL",
	"Canada":               "CAD",
	"China":                "CNY",
	"Hong Kong":            "HKD",
	"India":                "INR",
	"Japan":                "JPY",
	"Mexico":               "MXN",
	"Norway":               "NOK",
	"New Zealand":          "NZD",
	"Poland":               "PLN",
	"Saudi Arabia":         "SAR",
	"South Africa":         "ZAR",
	"South Korea":          "KRW",
	"Sri Lanka":            "LKR",
	"Sweden":               "SEK",
	"Switzerland":          "CHF",
	"Taiwan":               "TWD",
	"Turkey":               "TRY",
	"United Arab Emirates": "AED",
	"United Kingdom":       "GBP",
}

var currencyNames = map[string]string{
	"AED": "UAE Dirham",
	"AUD": "Australian Dollar",
	"BND": "Brunei Dollar",
	"BRL": "Brazilian Real",
	"CAD": "Canadian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"EUR": "Euro",
	"GBP": "British Pound",
	"HKD": "Hong Kong Dollar",
	"IDR": "Indonesian Rupiah",
	"INR": "Indian Rupee",
	"JPY": "Japanese Yen",
	"KHR": "Cambodian Riel",
	"KRW": "South Korean Won",
	"LAK": "Lao Kip",
	"LKR": "Sri Lankan Rupee",
	"MMK": "Myanmar Kyat",
	"MXN": "Mexican Peso",
	"MYR": "Malaysian Ringgit",
	"NOK": "Norwegian Krone",
	"NZD": "New Zealand Dollar",
	"PHP": "Philippine Peso",
	"PLN": "Polish Zloty",
	"SAR": "Saudi Riyal",
	"SEK": "Swedish Krona",
	"SGD": "Singapore Dollar",
	"THB": "Thai Baht",
	"TRY": "Turkish Lira",
	"TWD": "Taiwan Dollar",
	"USD": "US Dollar",
	"VND": "Vietnamese Dong",
	"ZAR": "South African Rand",
}

// ForCountry returns the currency code used for the given work country,
// or USD if the country is not listed.
func ForCountry(country string) string {
	if code, ok := countryCurrency[country]; ok {
		return code
	}

	return USD
}

// Name returns the display name for a currency code, or the code itself.
func Name(code string) string {
	if name, ok := currencyNames[code]; ok {
		return name
	}

	return code
}

// Codes returns all known currency codes, sorted.
func Codes() []string {
	codes := make([]string, 0, len(currencyNames))
	for code := range currencyNames {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}

// Countries returns all known work countries, sorted.
func Countries() []string {
	countries := make([]string, 0, len(countryCurrency))
	for country := range countryCurrency {
		countries = append(countries, country)
	}

	sort.Strings(countries)

	return countries
}
