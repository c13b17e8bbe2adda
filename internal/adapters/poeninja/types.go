package poeninja

// Tipos del API de poe.ninja. Solo los campos que el análisis consume.

// itemOverviewResponse es la respuesta de /itemoverview (Scarab, Tattoo,
// Essence, SkillGem...).
type itemOverviewResponse struct {
	Lines []itemLine `json:"lines"`
}

// itemLine es una fila de itemoverview.
type itemLine struct {
	Name       string  `json:"name"`
	ChaosValue float64 `json:"chaosValue"`
	Count      int     `json:"count"` // listings activos
	GemLevel   int     `json:"gemLevel"`
	GemQuality int     `json:"gemQuality"`
	Corrupted  bool    `json:"corrupted"`
}

// currencyOverviewResponse es la respuesta de /currencyoverview.
type currencyOverviewResponse struct {
	Lines []currencyLine `json:"lines"`
}

// currencyLine es una fila de currencyoverview. El count de listings viene
// anidado en el lado receive; puede faltar.
type currencyLine struct {
	CurrencyTypeName string  `json:"currencyTypeName"`
	ChaosEquivalent  float64 `json:"chaosEquivalent"`
	Receive          *struct {
		Count int `json:"count"`
	} `json:"receive"`
}
