package request

import (
	"mime/multipart"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/usecase/attendee"
)

// AttendeeFieldsRequest は参加者レコードの編集可能フィールド
type AttendeeFieldsRequest struct {
	FirstName    string `json:"firstName" form:"firstName" validate:"max=100"`
	LastName     string `json:"lastName" form:"lastName" validate:"max=100"`
	Email        string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	School       string `json:"school" form:"school" validate:"max=200"`
	SchoolOther  string `json:"schoolOther" form:"schoolOther" validate:"max=200"`
	FieldOfStudy string `json:"fieldOfStudy" form:"fieldOfStudy" validate:"max=100"`
	LevelOfStudy string `json:"levelOfStudy" form:"levelOfStudy" validate:"omitempty,levelofstudy"`
	YearLevel    string `json:"yearLevel" form:"yearLevel" validate:"max=20"`
	LinkedIn     string `json:"linkedin" form:"linkedin" validate:"max=200"`
	GitHub       string `json:"github" form:"github" validate:"max=100"`
	Discord      string `json:"discord" form:"discord" validate:"max=100"`
	ProfileImage string `json:"profileImage" form:"profileImage" validate:"profileicon"`
	ShirtSize    string `json:"shirtSize" form:"shirtSize" validate:"max=10"`
}

// Fields は全ての編集可能フィールドを返します
func (r AttendeeFieldsRequest) Fields() attendee.Fields {
	return attendee.Fields{
		entity.FieldFirstName:    r.FirstName,
		entity.FieldLastName:     r.LastName,
		entity.FieldEmail:        r.Email,
		entity.FieldSchool:       r.School,
		entity.FieldSchoolOther:  r.SchoolOther,
		entity.FieldFieldOfStudy: r.FieldOfStudy,
		entity.FieldLevelOfStudy: r.LevelOfStudy,
		entity.FieldYearLevel:    r.YearLevel,
		entity.FieldLinkedIn:     r.LinkedIn,
		entity.FieldGitHub:       r.GitHub,
		entity.FieldDiscord:      r.Discord,
		entity.FieldProfileImage: r.ProfileImage,
		entity.FieldShirtSize:    r.ShirtSize,
	}
}

// CreateAttendeeRequest は参加者登録リクエスト
// levelOfStudyが未指定の場合はUndergraduateになる
type CreateAttendeeRequest struct {
	UserID string `json:"userId" form:"userId" validate:"required,max=128"`
	AttendeeFieldsRequest
}

// Fields は登録時に適用するフィールドを返します
func (r CreateAttendeeRequest) Fields() attendee.Fields {
	fields := r.AttendeeFieldsRequest.Fields()
	if r.LevelOfStudy == "" {
		delete(fields, entity.FieldLevelOfStudy)
	}
	return fields
}

// ReplaceAttendeeRequest は全体更新リクエスト
// id, userId, resumeは受け付けても無視する
type ReplaceAttendeeRequest struct {
	AttendeeFieldsRequest
}

// PatchAttendeeRequest は部分更新リクエスト
// nilのフィールドは変更しない
type PatchAttendeeRequest struct {
	FirstName    *string `json:"firstName" validate:"omitempty,max=100"`
	LastName     *string `json:"lastName" validate:"omitempty,max=100"`
	Email        *string `json:"email" validate:"omitempty,email,max=254"`
	School       *string `json:"school" validate:"omitempty,max=200"`
	SchoolOther  *string `json:"schoolOther" validate:"omitempty,max=200"`
	FieldOfStudy *string `json:"fieldOfStudy" validate:"omitempty,max=100"`
	LevelOfStudy *string `json:"levelOfStudy" validate:"omitempty,levelofstudy"`
	YearLevel    *string `json:"yearLevel" validate:"omitempty,max=20"`
	LinkedIn     *string `json:"linkedin" validate:"omitempty,max=200"`
	GitHub       *string `json:"github" validate:"omitempty,max=100"`
	Discord      *string `json:"discord" validate:"omitempty,max=100"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,profileicon"`
	ShirtSize    *string `json:"shirtSize" validate:"omitempty,max=10"`
}

func (r *PatchAttendeeRequest) targets() map[entity.AttendeeField]**string {
	return map[entity.AttendeeField]**string{
		entity.FieldFirstName:    &r.FirstName,
		entity.FieldLastName:     &r.LastName,
		entity.FieldEmail:        &r.Email,
		entity.FieldSchool:       &r.School,
		entity.FieldSchoolOther:  &r.SchoolOther,
		entity.FieldFieldOfStudy: &r.FieldOfStudy,
		entity.FieldLevelOfStudy: &r.LevelOfStudy,
		entity.FieldYearLevel:    &r.YearLevel,
		entity.FieldLinkedIn:     &r.LinkedIn,
		entity.FieldGitHub:       &r.GitHub,
		entity.FieldDiscord:      &r.Discord,
		entity.FieldProfileImage: &r.ProfileImage,
		entity.FieldShirtSize:    &r.ShirtSize,
	}
}

// Fields は指定されたフィールドだけを返します
func (r *PatchAttendeeRequest) Fields() attendee.Fields {
	fields := attendee.Fields{}
	for field, target := range r.targets() {
		if *target != nil {
			fields[field] = **target
		}
	}
	return fields
}

// PatchAttendeeRequestFromForm はmultipartフォームから部分更新リクエストを組み立てます
// 送信されたキーだけが更新対象になる
func PatchAttendeeRequestFromForm(form *multipart.Form) *PatchAttendeeRequest {
	req := &PatchAttendeeRequest{}
	if form == nil {
		return req
	}
	for field, target := range req.targets() {
		values, ok := form.Value[string(field)]
		if !ok || len(values) == 0 {
			continue
		}
		v := values[0]
		*target = &v
	}
	return req
}

// ListAttendeesRequest は参加者一覧リクエスト
type ListAttendeesRequest struct {
	Search  string `query:"search" validate:"max=100"`
	Page    int    `query:"page" validate:"gte=0"`
	PerPage int    `query:"per_page" validate:"gte=0"`
}
