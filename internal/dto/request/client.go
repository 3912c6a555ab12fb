package request

type SaveLawyerRequest struct {
	LawyerID string `json:"lawyerId" validate:"required,uuid"`
}

type CreateConsultationRequest struct {
	LawyerID string `json:"lawyerId" validate:"required,uuid"`
	Message  string `json:"message" validate:"required,min=1,max=5000"`
}
