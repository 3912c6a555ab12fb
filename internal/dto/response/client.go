package response

import (
	"time"

	"advonex/internal/data/entity"
)

type SavedLawyerResponse struct {
	ID      string     `json:"id"`
	SavedAt time.Time  `json:"savedAt"`
	Lawyer  LawyerCard `json:"lawyer"`
}

type ConsultationRequestResponse struct {
	ID                string      `json:"id"`
	Message           string      `json:"message"`
	Status            string      `json:"status"`
	ResponseStatus    string      `json:"responseStatus"`
	Response          *string     `json:"response,omitempty"`
	ResponseReason    *string     `json:"responseReason,omitempty"`
	ResponseTimestamp *time.Time  `json:"responseTimestamp,omitempty"`
	Lawyer            *LawyerCard `json:"lawyer,omitempty"`
	Client            *ClientCard `json:"client,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

type ClientCard struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Photo *string `json:"photo"`
}

func SavedLawyerToResponse(saved *entity.SavedLawyer) SavedLawyerResponse {
	resp := SavedLawyerResponse{
		ID:      saved.ID.String(),
		SavedAt: saved.CreatedAt,
	}
	if saved.Lawyer != nil {
		resp.Lawyer = LawyerToCard(saved.Lawyer)
	}
	return resp
}

func ConsultationToResponse(request *entity.ConsultationRequest) ConsultationRequestResponse {
	resp := ConsultationRequestResponse{
		ID:                request.ID.String(),
		Message:           request.Message,
		Status:            string(request.Status),
		ResponseStatus:    string(request.ResponseStatus),
		Response:          request.Response,
		ResponseReason:    request.ResponseReason,
		ResponseTimestamp: request.ResponseTimestamp,
		CreatedAt:         request.CreatedAt,
		UpdatedAt:         request.UpdatedAt,
	}

	if request.Lawyer != nil {
		card := LawyerToCard(request.Lawyer)
		resp.Lawyer = &card
	}
	if request.Client != nil {
		resp.Client = &ClientCard{
			ID:    request.Client.ID.String(),
			Name:  request.Client.Name,
			Photo: request.Client.Photo,
		}
	}

	return resp
}
