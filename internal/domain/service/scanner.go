package service

import "context"

// Scanner はチェックイン用のQRスキャナーです
type Scanner interface {
	// Scan はスキャナーを開き、読み取ったペイロードを返します
	Scan(ctx context.Context) (string, error)
}
