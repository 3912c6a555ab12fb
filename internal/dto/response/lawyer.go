package response

import (
	"time"

	"advonex/internal/data/entity"
	"advonex/internal/data/repository"
)

type DashboardResponse struct {
	Profile         LawyerProfileResponse         `json:"profile"`
	Requests        DashboardCounts               `json:"requests"`
	RecentRequests  []ConsultationRequestResponse `json:"recentRequests"`
	RecentResponses []ConsultationRequestResponse `json:"recentResponses"`
	LastLogin       *time.Time                    `json:"lastLogin,omitempty"`
}

type DashboardCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

type InboxResponse struct {
	Requests []ConsultationRequestResponse `json:"requests"`
	Counts   DashboardCounts               `json:"counts"`
}

func CountsToResponse(counts *repository.ConsultationCounts) DashboardCounts {
	return DashboardCounts{
		Total:    counts.Total,
		Pending:  counts.Pending,
		Accepted: counts.Accepted,
		Rejected: counts.Rejected,
	}
}

func ConsultationsToResponses(requests []*entity.ConsultationRequest) []ConsultationRequestResponse {
	out := make([]ConsultationRequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, ConsultationToResponse(request))
	}
	return out
}
