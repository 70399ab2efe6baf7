package dto

// CreateTenantRequest represents a request to register a new tenant (organizer)
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// TenantResponse represents tenant data in responses
type TenantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}
