package response

import (
	"time"

	"advonex/internal/data/entity"
)

type ClientProfileResponse struct {
	ID                  string    `json:"id"`
	Name                *string   `json:"name"`
	Photo               *string   `json:"photo"`
	RegistrationPending bool      `json:"registrationPending"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type EducationResponse struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year"`
}

type PracticeAreaResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type PracticeCourtResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
}

type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type LawyerProfileResponse struct {
	ID                  string                  `json:"id"`
	Name                *string                 `json:"name"`
	Photo               *string                 `json:"photo"`
	Location            *string                 `json:"location"`
	Experience          *int                    `json:"experience"`
	Bio                 *string                 `json:"bio"`
	ConsultFee          *float64                `json:"consultFee"`
	BarID               *string                 `json:"barId"`
	IsVerified          bool                    `json:"isVerified"`
	RegistrationPending bool                    `json:"registrationPending"`
	Specialization      *PracticeAreaResponse   `json:"specialization,omitempty"`
	PrimaryCourt        *PracticeCourtResponse  `json:"primaryCourt,omitempty"`
	Education           *EducationResponse      `json:"education,omitempty"`
	PracticeAreas       []PracticeAreaResponse  `json:"practiceAreas"`
	PracticeCourts      []PracticeCourtResponse `json:"practiceCourts"`
	Services            []ServiceResponse       `json:"services"`
	CreatedAt           time.Time               `json:"createdAt"`
	UpdatedAt           time.Time               `json:"updatedAt"`
}

// LawyerCard is the compact shape used in listings and embeds.
type LawyerCard struct {
	ID         string   `json:"id"`
	Name       *string  `json:"name"`
	Photo      *string  `json:"photo"`
	Location   *string  `json:"location"`
	Experience *int     `json:"experience"`
	ConsultFee *float64 `json:"consultFee"`
	IsVerified bool     `json:"isVerified"`
}

func ClientProfileToResponse(profile *entity.ClientProfile) ClientProfileResponse {
	return ClientProfileResponse{
		ID:                  profile.ID.String(),
		Name:                profile.Name,
		Photo:               profile.Photo,
		RegistrationPending: profile.RegistrationPending,
		CreatedAt:           profile.CreatedAt,
		UpdatedAt:           profile.UpdatedAt,
	}
}

func PracticeAreaToResponse(area *entity.PracticeArea) PracticeAreaResponse {
	return PracticeAreaResponse{
		ID:          area.ID.String(),
		Name:        area.Name,
		Description: area.Description,
	}
}

func PracticeCourtToResponse(court *entity.PracticeCourt) PracticeCourtResponse {
	return PracticeCourtResponse{
		ID:       court.ID.String(),
		Name:     court.Name,
		Location: court.Location,
	}
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:          service.ID.String(),
		Name:        service.Name,
		Description: service.Description,
	}
}

func LawyerProfileToResponse(profile *entity.LawyerProfile) LawyerProfileResponse {
	resp := LawyerProfileResponse{
		ID:                  profile.ID.String(),
		Name:                profile.Name,
		Photo:               profile.Photo,
		Location:            profile.Location,
		Experience:          profile.Experience,
		Bio:                 profile.Bio,
		ConsultFee:          profile.ConsultFee,
		BarID:               profile.BarID,
		IsVerified:          profile.IsVerified,
		RegistrationPending: profile.RegistrationPending,
		PracticeAreas:       []PracticeAreaResponse{},
		PracticeCourts:      []PracticeCourtResponse{},
		Services:            []ServiceResponse{},
		CreatedAt:           profile.CreatedAt,
		UpdatedAt:           profile.UpdatedAt,
	}

	if profile.Specialization != nil {
		s := PracticeAreaToResponse(profile.Specialization)
		resp.Specialization = &s
	}
	if profile.PrimaryCourt != nil {
		c := PracticeCourtToResponse(profile.PrimaryCourt)
		resp.PrimaryCourt = &c
	}
	if profile.Education != nil {
		resp.Education = &EducationResponse{
			Degree:      profile.Education.Degree,
			Institution: profile.Education.Institution,
			Year:        profile.Education.Year,
		}
	}
	for i := range profile.PracticeAreas {
		resp.PracticeAreas = append(resp.PracticeAreas, PracticeAreaToResponse(&profile.PracticeAreas[i]))
	}
	for i := range profile.PracticeCourts {
		resp.PracticeCourts = append(resp.PracticeCourts, PracticeCourtToResponse(&profile.PracticeCourts[i]))
	}
	for i := range profile.Services {
		resp.Services = append(resp.Services, ServiceToResponse(&profile.Services[i]))
	}

	return resp
}

func LawyerToCard(profile *entity.LawyerProfile) LawyerCard {
	return LawyerCard{
		ID:         profile.ID.String(),
		Name:       profile.Name,
		Photo:      profile.Photo,
		Location:   profile.Location,
		Experience: profile.Experience,
		ConsultFee: profile.ConsultFee,
		IsVerified: profile.IsVerified,
	}
}
