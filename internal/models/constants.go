package models

import "time"

const (
	// TokenTTL время жизни токена доступа
	TokenTTL = 24 * time.Hour

	// DefaultPageSize размер страницы каталога по умолчанию
	DefaultPageSize = 6

	// MaxPageSize верхняя граница размера страницы
	MaxPageSize = 100

	// DateLayout формат дат бронирования в хранилище
	DateLayout = "2006-01-02"

	// LoginRateLimit количество попыток входа в окне
	LoginRateLimit = 10

	// LoginRateWindow окно ограничения попыток входа
	LoginRateWindow = time.Minute
)

// CarSortFields is the whitelist for catalog sorting. Unknown fields are
// rejected with a validation error instead of silently defaulting.
var CarSortFields = map[string]string{
	"name":          "c.name",
	"price_per_day": "c.price_per_day",
	"engine_volume": "c.engine_volume",
	"horsepower":    "c.horsepower",
	"color":         "c.color",
	"last_modified": "c.last_modified",
}
