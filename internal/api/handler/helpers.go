package handler

import (
	"time"

	"github.com/NASVIPS/rfid-attendance-system/internal/dto"
	"github.com/NASVIPS/rfid-attendance-system/internal/model"
)

// toSessionResponse 把课堂模型展平为响应 DTO
func toSessionResponse(s *model.ClassSession) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:            s.SessionID,
		SubjectInstID: s.SubjectInstID,
		StartAt:       s.StartAt.Format(time.RFC3339),
		IsClosed:      s.IsClosed,
	}
	if s.EndAt != nil {
		end := s.EndAt.Format(time.RFC3339)
		resp.EndAt = &end
	}
	if s.SubjectInst != nil {
		if s.SubjectInst.Subject != nil {
			resp.Subject = &dto.SubjectBrief{
				ID:   s.SubjectInst.Subject.SubjectID,
				Name: s.SubjectInst.Subject.Name,
				Code: s.SubjectInst.Subject.Code,
			}
		}
		if s.SubjectInst.Section != nil {
			resp.Section = &dto.SectionBrief{
				ID:   s.SubjectInst.Section.SectionID,
				Name: s.SubjectInst.Section.Name,
			}
		}
	}
	if s.Teacher != nil {
		resp.Teacher = &dto.TeacherBrief{
			ID:    s.Teacher.FacultyID,
			Name:  s.Teacher.Name,
			EmpID: s.Teacher.EmpID,
		}
	}
	return resp
}

func toSessionResponses(sessions []model.ClassSession) []dto.SessionResponse {
	out := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		out[i] = toSessionResponse(&sessions[i])
	}
	return out
}
