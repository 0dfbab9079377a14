package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/repository"
	"github.com/Alessandra005/witcon2026/internal/domain/valueobject"
	"github.com/Alessandra005/witcon2026/internal/infrastructure/database"
)

const attendeeColumns = `id, user_id, first_name, last_name, email, school, school_other,
	field_of_study, level_of_study, year_level, resume_key, linkedin, github, discord,
	profile_image, shirt_size, resume_upload_count, created_at, updated_at`

// AttendeeRepository は参加者リポジトリの実装です
type AttendeeRepository struct {
	*database.BaseRepository
}

// NewAttendeeRepository は新しいAttendeeRepositoryを作成します
func NewAttendeeRepository(txManager *database.TxManager) *AttendeeRepository {
	return &AttendeeRepository{
		BaseRepository: database.NewBaseRepository(txManager, database.ErrorMessages{
			Resource: "Profile",
			Conflict: "attendee already registered",
		}),
	}
}

// Create は参加者を作成します
func (r *AttendeeRepository) Create(ctx context.Context, a *entity.Attendee) error {
	err := r.Querier(ctx).QueryRow(ctx, `
		INSERT INTO attendees (
			user_id, first_name, last_name, email, school, school_other,
			field_of_study, level_of_study, year_level, resume_key, linkedin, github, discord,
			profile_image, shirt_size, resume_upload_count, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`,
		a.UserID, a.FirstName, a.LastName, a.Email, a.School, a.SchoolOther,
		a.FieldOfStudy, a.LevelOfStudy.String(), a.YearLevel, a.Resume, a.LinkedIn, a.GitHub, a.Discord,
		a.ProfileImage.String(), a.ShirtSize.String(), a.ResumeUploadCount, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)

	return r.HandleError(err)
}

// Update は参加者を更新します
func (r *AttendeeRepository) Update(ctx context.Context, a *entity.Attendee) error {
	tag, err := r.Querier(ctx).Exec(ctx, `
		UPDATE attendees SET
			first_name = $2, last_name = $3, email = $4, school = $5, school_other = $6,
			field_of_study = $7, level_of_study = $8, year_level = $9, resume_key = $10,
			linkedin = $11, github = $12, discord = $13, profile_image = $14, shirt_size = $15,
			resume_upload_count = $16, updated_at = $17
		WHERE user_id = $1`,
		a.UserID, a.FirstName, a.LastName, a.Email, a.School, a.SchoolOther,
		a.FieldOfStudy, a.LevelOfStudy.String(), a.YearLevel, a.Resume,
		a.LinkedIn, a.GitHub, a.Discord, a.ProfileImage.String(), a.ShirtSize.String(),
		a.ResumeUploadCount, a.UpdatedAt,
	)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return r.NotFound()
	}
	return nil
}

// FindByUserID はユーザーIDで参加者を検索します
func (r *AttendeeRepository) FindByUserID(ctx context.Context, userID string) (*entity.Attendee, error) {
	row := r.Querier(ctx).QueryRow(ctx,
		`SELECT `+attendeeColumns+` FROM attendees WHERE user_id = $1`, userID)
	return r.scanOne(row)
}

// FindByUserIDForUpdate は行ロックを取得して参加者を検索します
func (r *AttendeeRepository) FindByUserIDForUpdate(ctx context.Context, userID string) (*entity.Attendee, error) {
	row := r.Querier(ctx).QueryRow(ctx,
		`SELECT `+attendeeColumns+` FROM attendees WHERE user_id = $1 FOR UPDATE`, userID)
	return r.scanOne(row)
}

// Search は名前・メール・学校の部分一致で参加者を検索します
func (r *AttendeeRepository) Search(ctx context.Context, search repository.AttendeeSearch) ([]*entity.Attendee, int, error) {
	where := ""
	args := []any{}
	if q := strings.TrimSpace(search.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		where = ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1 OR school ILIKE $1 OR school_other ILIKE $1`
	}

	var total int
	if err := r.Querier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM attendees`+where, args...).Scan(&total); err != nil {
		return nil, 0, r.HandleError(err)
	}

	limit := search.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, search.Offset)
	query := `SELECT ` + attendeeColumns + ` FROM attendees` + where +
		` ORDER BY id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.Querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, r.HandleError(err)
	}
	defer rows.Close()

	attendees := make([]*entity.Attendee, 0, limit)
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, 0, r.HandleError(err)
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, r.HandleError(err)
	}
	return attendees, total, nil
}

// Delete は参加者を削除します
func (r *AttendeeRepository) Delete(ctx context.Context, userID string) error {
	tag, err := r.Querier(ctx).Exec(ctx, `DELETE FROM attendees WHERE user_id = $1`, userID)
	if err != nil {
		return r.HandleError(err)
	}
	if tag.RowsAffected() == 0 {
		return r.NotFound()
	}
	return nil
}

func (r *AttendeeRepository) scanOne(row pgx.Row) (*entity.Attendee, error) {
	a, err := scanAttendee(row)
	if err != nil {
		return nil, r.HandleError(err)
	}
	return a, nil
}

func scanAttendee(row pgx.Row) (*entity.Attendee, error) {
	var (
		a           entity.Attendee
		level, icon string
		shirtSize   string
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.FirstName, &a.LastName, &a.Email, &a.School, &a.SchoolOther,
		&a.FieldOfStudy, &level, &a.YearLevel, &a.Resume, &a.LinkedIn, &a.GitHub, &a.Discord,
		&icon, &shirtSize, &a.ResumeUploadCount, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.LevelOfStudy = valueobject.LevelOfStudy(level)
	a.ProfileImage = valueobject.ProfileIcon(icon)
	a.ShirtSize = valueobject.ShirtSize(shirtSize)
	return &a, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// インターフェースの実装を保証
var _ repository.AttendeeRepository = (*AttendeeRepository)(nil)
