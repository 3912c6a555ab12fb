package request

// Lawyer taxonomy links are added by name; unknown names are created.
type AddPracticeAreaRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type AddPracticeCourtRequest struct {
	Name string `json:"name" validate:"required,min=2,max=150"`
}

type AddServiceRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
