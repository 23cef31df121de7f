package entity

// CostThreshold is the floor below which a cost amount is treated as zero
// (one cent). The Cost Explorer adapter and the aggregator filter on this
// same constant; the filter is reapplied after every re-grouping because
// each summation can reintroduce sub-threshold totals.
const CostThreshold = 0.01

// CostRecord is one flattened Cost Explorer line: the unblended cost of a
// single (day, service, usage type) tuple.
type CostRecord struct {
	Date      string  `json:"date"`
	Service   string  `json:"service"`
	UsageType string  `json:"usageType"`
	Cost      float64 `json:"cost"`
}

// UsageTypeCost is the cost of a single usage type within a service.
type UsageTypeCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// ServiceSummary aggregates the cost of one service over the analyzed
// period, broken down by usage type in descending cost order.
type ServiceSummary struct {
	Name       string          `json:"name"`
	Cost       float64         `json:"cost"`
	Percentage float64         `json:"percentage"`
	UsageTypes []UsageTypeCost `json:"usageTypes"`
}

// DailyServiceCost is the cost of one service on a single day.
type DailyServiceCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// DailySummary holds the per-service costs of a single day.
type DailySummary struct {
	Date     string             `json:"date"`
	Services []DailyServiceCost `json:"services"`
}

// Report é o objeto raiz produzido pela agregação. Invariante: TotalCost é a
// soma dos custos de Services, e o custo de cada serviço é a soma dos seus
// usage types (dentro da tolerância de um centavo).
type Report struct {
	TotalCost  float64          `json:"totalCost"`
	Services   []ServiceSummary `json:"services"`
	DailyCosts []DailySummary   `json:"dailyCosts"`
}
