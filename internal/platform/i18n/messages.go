package i18n

import "golang.org/x/text/language"

var bundles = map[language.Tag]map[string]string{
	language.English: {
		"stock.not.found":                  "Stock not found with id: %v",
		"stock.already.exists":             "Stock already exists with name: %v",
		"stock.exchange.not.found":         "Stock exchange not found with name: %v",
		"stock.already.exists.in.exchange": "Stock with id %v already exists in the stock exchange",
		"stock.not.found.in.exchange":      "Stock not found in the stock exchange",
		"error.concurrent.modification":    "The resource was modified by another request, please try again",
		"error.unexpected":                 "An unexpected error occurred",
		"error.access.denied":              "Access denied",
		"error.unauthorized":               "Full authentication is required to access this resource",
		"stock.name.not-blank":             "Stock name must not be blank",
		"stock.name.size":                  "Stock name must be at most 250 characters",
		"stock.description.not-blank":      "Stock description must not be blank",
		"stock.description.size":           "Stock description must be at most 1024 characters",
		"stock.currentprice.not-null":      "Current price is required",
		"stock.currentprice.positive":      "Current price must be greater than zero",
		"stock.currentprice.digits":        "Current price must have at most 15 integer and 2 fraction digits",
		"stock.id.not-null":                "Stock id is required",
		"stock.id.positive":                "Stock id must be positive",
		"request.malformed":                "Malformed request",
	},
	language.Turkish: {
		"stock.not.found":                  "Hisse senedi bulunamadı, id: %v",
		"stock.already.exists":             "Bu isimde bir hisse senedi zaten mevcut: %v",
		"stock.exchange.not.found":         "Borsa bulunamadı, isim: %v",
		"stock.already.exists.in.exchange": "%v id'li hisse senedi borsada zaten mevcut",
		"stock.not.found.in.exchange":      "Hisse senedi borsada bulunamadı",
		"error.concurrent.modification":    "Kayıt başka bir istek tarafından değiştirildi, lütfen tekrar deneyin",
		"error.unexpected":                 "Beklenmeyen bir hata oluştu",
		"error.access.denied":              "Erişim reddedildi",
		"error.unauthorized":               "Bu kaynağa erişmek için kimlik doğrulaması gerekli",
		"stock.name.not-blank":             "Hisse senedi adı boş olamaz",
		"stock.name.size":                  "Hisse senedi adı en fazla 250 karakter olabilir",
		"stock.description.not-blank":      "Hisse senedi açıklaması boş olamaz",
		"stock.description.size":           "Hisse senedi açıklaması en fazla 1024 karakter olabilir",
		"stock.currentprice.not-null":      "Güncel fiyat zorunludur",
		"stock.currentprice.positive":      "Güncel fiyat sıfırdan büyük olmalıdır",
		"stock.currentprice.digits":        "Güncel fiyat en fazla 15 tam ve 2 ondalık basamak içerebilir",
		"stock.id.not-null":                "Hisse senedi id zorunludur",
		"stock.id.positive":                "Hisse senedi id pozitif olmalıdır",
		"request.malformed":                "Geçersiz istek",
	},
}
