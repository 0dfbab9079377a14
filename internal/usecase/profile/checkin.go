package profile

import (
	"context"
	"fmt"
	"sync"

	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// CheckInMessage はスキャン成功時に表示する通知です
const CheckInMessage = "Check-in successful! Welcome to WiTCON 2025!"

// CheckIn はQRスキャナーによるチェックインの表示フローです
// レコードは変更しない
type CheckIn struct {
	scanner service.Scanner

	mu   sync.Mutex
	open bool
}

// NewCheckIn は新しいCheckInを作成します
func NewCheckIn(scanner service.Scanner) *CheckIn {
	return &CheckIn{scanner: scanner}
}

// IsScannerOpen はスキャナーが開いているかを返します
func (c *CheckIn) IsScannerOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Start はスキャナーを開き、読み取りに成功したら閉じて通知文を返します
func (c *CheckIn) Start(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.open {
		c.mu.Unlock()
		return "", ErrOperationInFlight
	}
	c.open = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.open = false
		c.mu.Unlock()
	}()

	payload, err := c.scanner.Scan(ctx)
	if err != nil {
		return "", fmt.Errorf("scan: %w", err)
	}

	logger.Info(ctx, "check-in scanned", "payload_length", len(payload))
	return CheckInMessage, nil
}
