package dto

import (
	"github.com/ignatzorin/complaints-dashboard/internal/domain/entity"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/complaint"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/profile"
)

type ComplaintStatusEvent struct {
	Complaint      ComplaintResponse `json:"complaint"`
	PreviousStatus string            `json:"previous_status"`
}

type ProfileStatusEvent struct {
	Profile        ProfileResponse `json:"profile"`
	PreviousStatus string          `json:"previous_status"`
}

// EventPayload приводит данные события к тому же виду, что и ответы API.
// Неизвестные типы возвращаются без изменений.
func EventPayload(data any) any {
	switch v := data.(type) {
	case *entity.Complaint:
		return ToComplaintResponse(v)
	case *entity.Profile:
		return ToProfileResponse(v)
	case complaint.StatusChange:
		return ComplaintStatusEvent{Complaint: ToComplaintResponse(v.Complaint), PreviousStatus: string(v.Previous)}
	case profile.StatusChange:
		return ProfileStatusEvent{Profile: ToProfileResponse(v.Profile), PreviousStatus: string(v.Previous)}
	default:
		return data
	}
}
