package response

import (
	"time"

	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
)

// AttendeeResponse は参加者レコードレスポンス
// resumeはダウンロードURL、未アップロードの場合はnull
type AttendeeResponse struct {
	ID                     int64     `json:"id"`
	UserID                 string    `json:"userId"`
	FirstName              string    `json:"firstName"`
	LastName               string    `json:"lastName"`
	Email                  string    `json:"email"`
	School                 string    `json:"school"`
	SchoolOther            string    `json:"schoolOther"`
	FieldOfStudy           string    `json:"fieldOfStudy"`
	LevelOfStudy           string    `json:"levelOfStudy"`
	YearLevel              string    `json:"yearLevel"`
	Resume                 *string   `json:"resume"`
	LinkedIn               string    `json:"linkedin"`
	GitHub                 string    `json:"github"`
	Discord                string    `json:"discord"`
	ProfileImage           string    `json:"profileImage"`
	ShirtSize              string    `json:"shirtSize"`
	ResumeUploadsRemaining int       `json:"resumeUploadsRemaining"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ToAttendeeResponse はViewをレスポンスに変換します
func ToAttendeeResponse(v *attendee.View) *AttendeeResponse {
	if v == nil || v.Attendee == nil {
		return nil
	}
	a := v.Attendee
	res := &AttendeeResponse{
		ID:                     a.ID,
		UserID:                 a.UserID,
		FirstName:              a.FirstName,
		LastName:               a.LastName,
		Email:                  a.Email,
		School:                 a.School,
		SchoolOther:            a.SchoolOther,
		FieldOfStudy:           a.FieldOfStudy,
		LevelOfStudy:           a.LevelOfStudy.String(),
		YearLevel:              a.YearLevel,
		LinkedIn:               a.LinkedIn,
		GitHub:                 a.GitHub,
		Discord:                a.Discord,
		ProfileImage:           a.ProfileImage.String(),
		ShirtSize:              a.ShirtSize.String(),
		ResumeUploadsRemaining: v.ResumeUploadsRemaining,
		CreatedAt:              a.CreatedAt,
		UpdatedAt:              a.UpdatedAt,
	}
	if v.ResumeURL != "" {
		url := v.ResumeURL
		res.Resume = &url
	}
	return res
}

// ToAttendeeListResponse はView一覧をレスポンスに変換します
func ToAttendeeListResponse(views []*attendee.View) []*AttendeeResponse {
	res := make([]*AttendeeResponse, 0, len(views))
	for _, v := range views {
		res = append(res, ToAttendeeResponse(v))
	}
	return res
}
