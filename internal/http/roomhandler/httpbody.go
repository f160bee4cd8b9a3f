package roomhandler

type HealthResponse struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
