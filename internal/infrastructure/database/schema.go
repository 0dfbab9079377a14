package database

import (
	"context"
	"fmt"
)

// attendeesSchema は参加者テーブルの定義
// user_idがAPIのキーで、idはサーバー採番
const attendeesSchema = `
CREATE TABLE IF NOT EXISTS attendees (
    id                  BIGSERIAL PRIMARY KEY,
    user_id             VARCHAR(128) NOT NULL UNIQUE,
    first_name          VARCHAR(100) NOT NULL,
    last_name           VARCHAR(100) NOT NULL,
    email               VARCHAR(254) NOT NULL,
    school              VARCHAR(200) NOT NULL DEFAULT '',
    school_other        VARCHAR(200) NOT NULL DEFAULT '',
    field_of_study      VARCHAR(200) NOT NULL,
    level_of_study      VARCHAR(20)  NOT NULL DEFAULT 'Undergraduate'
        CHECK (level_of_study IN ('Undergraduate', 'Graduate', 'Post-Doctorate')),
    year_level          VARCHAR(20)  NOT NULL DEFAULT '',
    resume_key          VARCHAR(512) NOT NULL DEFAULT '',
    linkedin            VARCHAR(200) NOT NULL DEFAULT '',
    github              VARCHAR(200) NOT NULL DEFAULT '',
    discord             VARCHAR(100) NOT NULL DEFAULT '',
    profile_image       VARCHAR(50)  NOT NULL DEFAULT '',
    shirt_size          VARCHAR(10)  NOT NULL DEFAULT '',
    resume_upload_count INTEGER      NOT NULL DEFAULT 0 CHECK (resume_upload_count >= 0),
    created_at          TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at          TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_attendees_email ON attendees (email);
`

// EnsureSchema は必要なテーブルを作成する
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, attendeesSchema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
