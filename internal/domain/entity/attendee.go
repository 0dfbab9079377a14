package entity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Alessandra005/witcon2026/internal/domain/valueobject"
)

var (
	ErrUnknownField  = errors.New("unknown attendee field")
	ErrReadOnlyField = errors.New("attendee field is read-only")
)

// SchoolOther はschoolが既知の一覧にない場合の選択値です
const SchoolOther = "Other"

// AttendeeField は参加者レコードのフィールドキーを表します
// 値はワイヤ上のJSONキーと一致する
type AttendeeField string

const (
	FieldID           AttendeeField = "id"
	FieldUserID       AttendeeField = "userId"
	FieldFirstName    AttendeeField = "firstName"
	FieldLastName     AttendeeField = "lastName"
	FieldEmail        AttendeeField = "email"
	FieldSchool       AttendeeField = "school"
	FieldSchoolOther  AttendeeField = "schoolOther"
	FieldFieldOfStudy AttendeeField = "fieldOfStudy"
	FieldLevelOfStudy AttendeeField = "levelOfStudy"
	FieldYearLevel    AttendeeField = "yearLevel"
	FieldResume       AttendeeField = "resume"
	FieldLinkedIn     AttendeeField = "linkedin"
	FieldGitHub       AttendeeField = "github"
	FieldDiscord      AttendeeField = "discord"
	FieldProfileImage AttendeeField = "profileImage"
	FieldShirtSize    AttendeeField = "shirtSize"
)

// EditableFields は編集モードで変更可能なフィールドを返します
func EditableFields() []AttendeeField {
	return []AttendeeField{
		FieldFirstName, FieldLastName, FieldEmail,
		FieldSchool, FieldSchoolOther, FieldFieldOfStudy, FieldLevelOfStudy, FieldYearLevel,
		FieldLinkedIn, FieldGitHub, FieldDiscord, FieldProfileImage, FieldShirtSize,
	}
}

// Attendee はカンファレンス参加者のプロフィールエンティティを定義します
type Attendee struct {
	ID                int64 // 0は未採番
	UserID            string
	FirstName         string
	LastName          string
	Email             string
	School            string
	SchoolOther       string
	FieldOfStudy      string
	LevelOfStudy      valueobject.LevelOfStudy
	YearLevel         string
	Resume            string // サーバーではオブジェクトキー、ワイヤ上はURL
	LinkedIn          string
	GitHub            string
	Discord           string
	ProfileImage      valueobject.ProfileIcon
	ShirtSize         valueobject.ShirtSize
	ResumeUploadCount int
	ResumeUploadsLeft *int // サーバーが算出した残り回数（クライアント側で参照）
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewAttendee は新しいAttendeeを作成します
func NewAttendee(userID string) *Attendee {
	now := time.Now()
	return &Attendee{
		UserID:       userID,
		LevelOfStudy: valueobject.LevelUndergraduate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Clone はスナップショット用の独立したコピーを返します
func (a *Attendee) Clone() *Attendee {
	if a == nil {
		return nil
	}
	c := *a
	if a.ResumeUploadsLeft != nil {
		n := *a.ResumeUploadsLeft
		c.ResumeUploadsLeft = &n
	}
	return &c
}

// SchoolName は表示用の学校名を返します
func (a *Attendee) SchoolName() string {
	if a.School != "" && a.School != SchoolOther {
		return a.School
	}
	return a.SchoolOther
}

// FullName は表示名を返します
func (a *Attendee) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Icon は表示用に解決済みのアイコンを返します
func (a *Attendee) Icon() valueobject.ProfileIcon {
	return a.ProfileImage.Resolve()
}

// Field はキーに対応する値を文字列で返します
func (a *Attendee) Field(field AttendeeField) (string, error) {
	switch field {
	case FieldID:
		if a.ID == 0 {
			return "", nil
		}
		return fmt.Sprintf("%d", a.ID), nil
	case FieldUserID:
		return a.UserID, nil
	case FieldFirstName:
		return a.FirstName, nil
	case FieldLastName:
		return a.LastName, nil
	case FieldEmail:
		return a.Email, nil
	case FieldSchool:
		return a.School, nil
	case FieldSchoolOther:
		return a.SchoolOther, nil
	case FieldFieldOfStudy:
		return a.FieldOfStudy, nil
	case FieldLevelOfStudy:
		return a.LevelOfStudy.String(), nil
	case FieldYearLevel:
		return a.YearLevel, nil
	case FieldResume:
		return a.Resume, nil
	case FieldLinkedIn:
		return a.LinkedIn, nil
	case FieldGitHub:
		return a.GitHub, nil
	case FieldDiscord:
		return a.Discord, nil
	case FieldProfileImage:
		return a.ProfileImage.String(), nil
	case FieldShirtSize:
		return a.ShirtSize.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
}

// SetField はキーで指定された1フィールドだけを更新します
// levelOfStudyとprofileImageは閉じた値域で検証する
func (a *Attendee) SetField(field AttendeeField, value string) error {
	switch field {
	case FieldID, FieldUserID, FieldResume:
		return fmt.Errorf("%w: %s", ErrReadOnlyField, field)
	case FieldFirstName:
		a.FirstName = value
	case FieldLastName:
		a.LastName = value
	case FieldEmail:
		a.Email = value
	case FieldSchool:
		a.School = value
	case FieldSchoolOther:
		a.SchoolOther = value
	case FieldFieldOfStudy:
		a.FieldOfStudy = value
	case FieldLevelOfStudy:
		level, err := valueobject.NewLevelOfStudy(value)
		if err != nil {
			return err
		}
		a.LevelOfStudy = level
	case FieldYearLevel:
		a.YearLevel = value
	case FieldLinkedIn:
		a.LinkedIn = value
	case FieldGitHub:
		a.GitHub = value
	case FieldDiscord:
		a.Discord = value
	case FieldProfileImage:
		if value == "" {
			a.ProfileImage = ""
			return nil
		}
		icon, err := valueobject.NewProfileIcon(value)
		if err != nil {
			return err
		}
		a.ProfileImage = icon
	case FieldShirtSize:
		a.ShirtSize = valueobject.NewShirtSize(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// MissingRequiredFields は未入力の必須フィールドを返します
func (a *Attendee) MissingRequiredFields() []AttendeeField {
	var missing []AttendeeField
	required := map[AttendeeField]string{
		FieldFirstName:    a.FirstName,
		FieldLastName:     a.LastName,
		FieldEmail:        a.Email,
		FieldFieldOfStudy: a.FieldOfStudy,
	}
	for _, f := range []AttendeeField{FieldFirstName, FieldLastName, FieldEmail, FieldFieldOfStudy} {
		if strings.TrimSpace(required[f]) == "" {
			missing = append(missing, f)
		}
	}
	if a.SchoolName() == "" {
		missing = append(missing, FieldSchool)
	}
	if !a.LevelOfStudy.IsValid() {
		missing = append(missing, FieldLevelOfStudy)
	}
	return missing
}

// ReplaceWith は全体更新としてsrcの編集可能フィールドを取り込みます
// ID, UserID, Resume, アップロード回数, 作成日時は保持される
func (a *Attendee) ReplaceWith(src *Attendee) {
	a.FirstName = src.FirstName
	a.LastName = src.LastName
	a.Email = src.Email
	a.School = src.School
	a.SchoolOther = src.SchoolOther
	a.FieldOfStudy = src.FieldOfStudy
	a.LevelOfStudy = src.LevelOfStudy
	a.YearLevel = src.YearLevel
	a.LinkedIn = src.LinkedIn
	a.GitHub = src.GitHub
	a.Discord = src.Discord
	a.ProfileImage = src.ProfileImage
	a.ShirtSize = src.ShirtSize
	a.UpdatedAt = time.Now()
}

// AttachResume は新しい履歴書を設定しアップロード回数を進めます
func (a *Attendee) AttachResume(key valueobject.ResumeKey) {
	a.Resume = key.String()
	a.ResumeUploadCount++
	a.UpdatedAt = time.Now()
}

// ResumeUploadsRemaining は上限に対する残りアップロード回数を返します
func (a *Attendee) ResumeUploadsRemaining(limit int) int {
	if remaining := limit - a.ResumeUploadCount; remaining > 0 {
		return remaining
	}
	return 0
}

// CanUploadResume は上限に達していないかを判定します
func (a *Attendee) CanUploadResume(limit int) bool {
	return a.ResumeUploadsRemaining(limit) > 0
}
