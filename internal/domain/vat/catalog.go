package vat

import "github.com/shopspring/decimal"

// CatalogEntry is one rate of a country's standard VAT catalog.
type CatalogEntry struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
	IsDefault   bool            `json:"isDefault"`
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// catalogs holds the standard VAT rates per supported country.
var catalogs = map[string][]CatalogEntry{
	"FR": {
		{Code: "20", Name: "TVA Normale", Rate: dec("20"), Description: "Taux normal applicable à la plupart des biens et services", IsDefault: true},
		{Code: "10", Name: "TVA Intermédiaire", Rate: dec("10"), Description: "Restauration, transport, travaux de logement"},
		{Code: "5.5", Name: "TVA Réduite", Rate: dec("5.5"), Description: "Produits alimentaires, livres, spectacles"},
		{Code: "0", Name: "TVA 0%", Rate: dec("0"), Description: "Exports, opérations exonérées"},
	},
	"MA": {
		{Code: "20", Name: "TVA Normale", Rate: dec("20"), Description: "Taux normal applicable à la plupart des biens et services", IsDefault: true},
		{Code: "14", Name: "TVA Réduite", Rate: dec("14"), Description: "Certains produits et services spécifiques"},
		{Code: "10", Name: "TVA Réduite Spéciale", Rate: dec("10"), Description: "Certains produits alimentaires et services"},
		{Code: "0", Name: "TVA 0%", Rate: dec("0"), Description: "Exports, opérations exonérées"},
	},
	"BE": {
		{Code: "21", Name: "TVA Normale", Rate: dec("21"), Description: "Taux normal applicable à la plupart des biens et services", IsDefault: true},
		{Code: "12", Name: "TVA Intermédiaire", Rate: dec("12"), Description: "Margarine, produits d'origine sociale"},
		{Code: "6", Name: "TVA Réduite", Rate: dec("6"), Description: "Produits alimentaires, médicaments, livres"},
		{Code: "0", Name: "TVA 0%", Rate: dec("0"), Description: "Exports, opérations exonérées"},
	},
	"ES": {
		{Code: "21", Name: "IVA General", Rate: dec("21"), Description: "Tipo general aplicable a la mayoría de bienes y servicios", IsDefault: true},
		{Code: "10", Name: "IVA Reducido", Rate: dec("10"), Description: "Transporte, hostelería, servicios culturales"},
		{Code: "4", Name: "IVA Superreducido", Rate: dec("4"), Description: "Productos alimentarios básicos, medicamentos, libros"},
		{Code: "0", Name: "IVA 0%", Rate: dec("0"), Description: "Exportaciones, operaciones exentas"},
	},
}

// DefaultCatalogCountry is used when a country has no catalog of its own.
const DefaultCatalogCountry = "MA"

// CatalogForCountry returns the standard rates for a country, falling back
// to the Moroccan catalog for unsupported countries.
func CatalogForCountry(countryCode string) []CatalogEntry {
	if entries, ok := catalogs[countryCode]; ok {
		return entries
	}
	return catalogs[DefaultCatalogCountry]
}

// SupportedCatalogCountries lists the countries with a dedicated catalog.
func SupportedCatalogCountries() []string {
	return []string{"BE", "ES", "FR", "MA"}
}
