package request

type UpdateClientProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Photo *string `json:"photo,omitempty" validate:"omitempty,url"`
}

type EducationInput struct {
	Degree      string `json:"degree" validate:"required,max=150"`
	Institution string `json:"institution" validate:"required,max=200"`
	Year        int    `json:"year" validate:"required,min=1950,max=2100"`
}

type UpdateLawyerProfileRequest struct {
	Name           *string         `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Photo          *string         `json:"photo,omitempty" validate:"omitempty,url"`
	Location       *string         `json:"location,omitempty" validate:"omitempty,max=200"`
	Experience     *int            `json:"experience,omitempty" validate:"omitempty,min=0,max=80"`
	Bio            *string         `json:"bio,omitempty" validate:"omitempty,max=2000"`
	ConsultFee     *float64        `json:"consultFee,omitempty" validate:"omitempty,min=0"`
	BarID          *string         `json:"barId,omitempty" validate:"omitempty,max=100"`
	Specialization *string         `json:"specialization,omitempty" validate:"omitempty,max=100"`
	PrimaryCourt   *string         `json:"primaryCourt,omitempty" validate:"omitempty,max=150"`
	Education      *EducationInput `json:"education,omitempty"`
}
