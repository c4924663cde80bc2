package dto

// StatusBreakdown counts orders per workflow state.
type StatusBreakdown struct {
	Total     int `json:"total"`
	New       int `json:"new"`
	InFlight  int `json:"in_flight"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// CategoryCount counts catalog products within one category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AnalyticsResponse aggregates dashboard figures.
type AnalyticsResponse struct {
	WhatsAppOrders StatusBreakdown `json:"whatsapp_orders"`
	OrderRequests  StatusBreakdown `json:"order_requests"`
	Categories     []CategoryCount `json:"categories"`
}
