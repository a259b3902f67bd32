// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type ChatRequest struct {
	SessionID string `json:"sessionId,optional"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Done      bool   `json:"done"`
}

type ProposalRequest struct {
	SessionID string `json:"sessionId"`
}

type PricedLine struct {
	ServiceName   string  `json:"serviceName"`
	SKU           string  `json:"sku"`
	Region        string  `json:"region"`
	Quantity      float64 `json:"quantity"`
	HoursPerMonth float64 `json:"hoursPerMonth"`
	HourlyPrice   float64 `json:"hourlyPrice"`
	MonthlyCost   float64 `json:"monthlyCost"`
	Note          string  `json:"note,omitempty"`
}

type ProposalResponse struct {
	SessionID    string       `json:"sessionId"`
	Proposal     string       `json:"proposal"`
	Items        []PricedLine `json:"items"`
	TotalMonthly float64      `json:"totalMonthly"`
	Currency     string       `json:"currency"`
}

type ResetRequest struct {
	SessionID string `json:"sessionId"`
}

type ResetResponse struct {
	SessionID string `json:"sessionId"`
	Reset     bool   `json:"reset"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
