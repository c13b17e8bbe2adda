package domain

import (
	"encoding/json"
	"net/url"
)

// bulkExchangeQuery es el payload que el trade site oficial espera en el
// parámetro q de /exchange.
type bulkExchangeQuery struct {
	Exchange struct {
		Status struct {
			Option string `json:"option"`
		} `json:"status"`
		Have []string `json:"have"`
		Want []string `json:"want"`
	} `json:"exchange"`
}

// BulkTradeURL genera la URL de bulk exchange para comprar los ítems dados
// con chaos. Devuelve "" si la shopping list está vacía o la base no es
// configurada.
func BulkTradeURL(base, league string, items []string) string {
	if base == "" || len(items) == 0 {
		return ""
	}

	var q bulkExchangeQuery
	q.Exchange.Status.Option = "online"
	q.Exchange.Have = []string{"chaos"}
	q.Exchange.Want = items

	payload, err := json.Marshal(q)
	if err != nil {
		return ""
	}
	return base + url.PathEscape(league) + "?q=" + url.QueryEscape(string(payload))
}
