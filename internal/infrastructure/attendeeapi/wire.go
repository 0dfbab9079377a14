package attendeeapi

import (
	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/valueobject"
)

// attendeeRecord は参加者APIのワイヤ表現です
type attendeeRecord struct {
	ID                     int64   `json:"id,omitempty"`
	UserID                 string  `json:"userId"`
	FirstName              string  `json:"firstName"`
	LastName               string  `json:"lastName"`
	Email                  string  `json:"email"`
	School                 string  `json:"school"`
	SchoolOther            string  `json:"schoolOther"`
	FieldOfStudy           string  `json:"fieldOfStudy"`
	LevelOfStudy           string  `json:"levelOfStudy"`
	YearLevel              string  `json:"yearLevel"`
	Resume                 *string `json:"resume"`
	LinkedIn               string  `json:"linkedin"`
	GitHub                 string  `json:"github"`
	Discord                string  `json:"discord"`
	ProfileImage           string  `json:"profileImage"`
	ShirtSize              string  `json:"shirtSize"`
	ResumeUploadsRemaining *int    `json:"resumeUploadsRemaining,omitempty"`
}

func fromEntity(a *entity.Attendee) attendeeRecord {
	r := attendeeRecord{
		ID:           a.ID,
		UserID:       a.UserID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		School:       a.School,
		SchoolOther:  a.SchoolOther,
		FieldOfStudy: a.FieldOfStudy,
		LevelOfStudy: a.LevelOfStudy.String(),
		YearLevel:    a.YearLevel,
		LinkedIn:     a.LinkedIn,
		GitHub:       a.GitHub,
		Discord:      a.Discord,
		ProfileImage: a.ProfileImage.String(),
		ShirtSize:    a.ShirtSize.String(),
	}
	if a.Resume != "" {
		resume := a.Resume
		r.Resume = &resume
	}
	return r
}

// toEntity はワイヤ表現をエンティティへ変換します
// サーバーが返した値はそのまま保持し、ここでは検証しない
func (r attendeeRecord) toEntity() *entity.Attendee {
	a := &entity.Attendee{
		ID:                r.ID,
		UserID:            r.UserID,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		School:            r.School,
		SchoolOther:       r.SchoolOther,
		FieldOfStudy:      r.FieldOfStudy,
		LevelOfStudy:      valueobject.LevelOfStudy(r.LevelOfStudy),
		YearLevel:         r.YearLevel,
		LinkedIn:          r.LinkedIn,
		GitHub:            r.GitHub,
		Discord:           r.Discord,
		ProfileImage:      valueobject.ProfileIcon(r.ProfileImage),
		ShirtSize:         valueobject.ShirtSize(r.ShirtSize),
		ResumeUploadsLeft: r.ResumeUploadsRemaining,
	}
	if r.Resume != nil {
		a.Resume = *r.Resume
	}
	return a
}
