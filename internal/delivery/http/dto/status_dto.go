package dto

// StatusCheckCreate is the body for POST /api/status
type StatusCheckCreate struct {
	ClientName string `json:"client_name"`
}
