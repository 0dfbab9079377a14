package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/pkg/logger"
)

// Controller は参加者プロフィールの表示・編集状態を管理します
//
// コミット済みスナップショット（リモートストアが最後に確定した値）と
// 編集スナップショット（編集モード中のローカルコピー）を保持し、
// 読み込み・全体更新・履歴書アップロードを発行する。
// ロックはI/Oを跨いで保持しないため、読み込み中も他の操作を受け付ける。
type Controller struct {
	store service.AttendeeStore

	mu        sync.Mutex
	userID    string
	owner     string // committedを読み込んだidentity
	loadToken uint64 // SetIdentityごとに進む
	inflight  uint64 // 現在のidentityに対する未完了の読み込みトークン（0は無し）
	status    Status
	committed *entity.Attendee
	edit      *entity.Attendee
	editing   bool
	errMsg    string
	saving    bool
	uploading bool

	deliverMu   sync.Mutex // notifyの取得順と配送順を揃える
	version     uint64
	listenerSeq int
	listeners   map[int]func(View)
}

// NewController は新しいControllerを作成します
func NewController(store service.AttendeeStore) *Controller {
	return &Controller{
		store:     store,
		status:    StatusUnloaded,
		listeners: make(map[int]func(View)),
	}
}

// UserID は現在のユーザーIDを返します
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// SetIdentity はidentityを切り替えてレコードを読み込みます
// 空のidentityでは何も発行せず、既存の状態を保持する。
// 完了時にidentityが変わっていた場合、応答は破棄されErrSupersededを返す。
func (c *Controller) SetIdentity(ctx context.Context, userID string) error {
	token := c.bind(userID)
	if userID == "" {
		return nil
	}
	return c.load(ctx, userID, token)
}

// Reload は現在のidentityでレコードを再読み込みします
func (c *Controller) Reload(ctx context.Context) error {
	userID := c.UserID()
	if userID == "" {
		return ErrNoIdentity
	}
	return c.SetIdentity(ctx, userID)
}

// Watch は認証コンテキストのidentity変更を購読し、変更のたびに読み込みを発行します
// ctxが終了するまでバックグラウンドで動作する
func (c *Controller) Watch(ctx context.Context, src service.IdentitySource) {
	changes, stop := src.Changes()
	c.dispatch(ctx, src.UserID())

	go func() {
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case userID, ok := <-changes:
				if !ok {
					return
				}
				c.dispatch(ctx, userID)
			}
		}
	}()
}

// dispatch はidentityを同期的に確定させてから読み込みを非同期に発行します
func (c *Controller) dispatch(ctx context.Context, userID string) {
	token := c.bind(userID)
	if userID == "" {
		return
	}
	go func() {
		if err := c.load(ctx, userID, token); err != nil && !errors.Is(err, ErrSuperseded) {
			logger.Warn(ctx, "profile load failed", "user_id", userID, "error", err)
		}
	}()
}

// bind はidentityを記録し、新しい読み込みトークンを払い出します
func (c *Controller) bind(userID string) uint64 {
	c.mu.Lock()
	if userID != "" && userID != c.userID && c.editing {
		c.editing = false
		c.edit = c.committed.Clone()
	}
	if userID != "" && c.owner != "" && userID != c.owner {
		// 別ユーザーのスナップショットは表示も編集もさせない
		c.committed = nil
		c.edit = nil
		c.owner = ""
		c.errMsg = ""
		c.status = StatusUnloaded
	}
	c.userID = userID
	c.loadToken++
	token := c.loadToken
	if userID != "" {
		c.inflight = token
	} else {
		c.inflight = 0
	}
	c.mu.Unlock()

	c.notify()
	return token
}

func (c *Controller) load(ctx context.Context, userID string, token uint64) error {
	logger.Debug(ctx, "loading profile", "user_id", userID)

	record, err := c.store.Get(ctx, userID)

	c.mu.Lock()
	if token != c.loadToken || userID != c.userID {
		c.mu.Unlock()
		logger.Debug(ctx, "discarding stale profile response", "user_id", userID)
		return ErrSuperseded
	}
	c.inflight = 0
	if err != nil {
		c.errMsg = MessageLoadFailed
		c.mu.Unlock()
		c.notify()
		logger.Warn(ctx, "failed to load profile", "user_id", userID, "error", err)
		return newFailure(LoadFailure, err)
	}

	// 読み込み成功時のみ両スナップショットを置き換える
	c.committed = record.Clone()
	c.edit = record.Clone()
	c.owner = userID
	c.status = StatusLoaded
	c.errMsg = ""
	c.mu.Unlock()

	c.notify()
	logger.Info(ctx, "profile loaded", "user_id", userID)
	return nil
}

// BeginEdit は編集モードに入り、コミット済みスナップショットを編集スナップショットへコピーします
// 既に編集中の場合は何もしない
func (c *Controller) BeginEdit() error {
	c.mu.Lock()
	if !c.ownsCommittedLocked() {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if c.editing {
		c.mu.Unlock()
		return nil
	}
	c.editing = true
	c.edit = c.committed.Clone()
	c.mu.Unlock()

	c.notify()
	return nil
}

// SetField は編集スナップショットの1フィールドだけを更新します
// 保存するまでリモートには反映されない
func (c *Controller) SetField(field entity.AttendeeField, value string) error {
	c.mu.Lock()
	if !c.editing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if c.saving {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	if err := c.edit.SetField(field, value); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// Cancel は編集スナップショットを破棄して表示モードへ戻ります
// ネットワーク呼び出しは行わない
func (c *Controller) Cancel() error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	if !c.editing {
		c.mu.Unlock()
		return nil
	}
	c.editing = false
	c.edit = c.committed.Clone()
	c.mu.Unlock()

	c.notify()
	return nil
}

// Save は編集スナップショットでレコード全体を置き換えます
// 失敗時は編集モードと編集スナップショットを保持する。自動リトライはしない。
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return ErrNoIdentity
	}
	if !c.editing {
		c.mu.Unlock()
		return ErrNotEditing
	}
	if !c.ownsCommittedLocked() {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if c.saving {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	c.saving = true
	userID := c.userID
	draft := c.edit.Clone()
	c.mu.Unlock()
	c.notify()

	updated, err := c.store.Replace(ctx, userID, draft)

	c.mu.Lock()
	c.saving = false
	if userID != c.userID {
		c.mu.Unlock()
		c.notify()
		return ErrSuperseded
	}
	if err != nil {
		c.mu.Unlock()
		c.notify()
		logger.Warn(ctx, "failed to save profile", "user_id", userID, "error", err)
		return newFailure(SaveFailure, err)
	}
	c.committed = updated.Clone()
	c.owner = userID
	c.status = StatusLoaded
	c.editing = false
	c.edit = nil
	c.supersedeLoadLocked()
	c.mu.Unlock()

	c.notify()
	logger.Info(ctx, "profile updated", "user_id", userID)
	return nil
}

// UploadResume は履歴書ファイルのみを部分更新します
// 編集モードとは独立しており、成功時もコミット済みスナップショットだけを置き換える
func (c *Controller) UploadResume(ctx context.Context, file service.ResumeFile) error {
	if !file.IsSelected() {
		return ErrNoFileSelected
	}

	c.mu.Lock()
	if c.userID == "" {
		c.mu.Unlock()
		return ErrNoIdentity
	}
	if c.uploading {
		c.mu.Unlock()
		return ErrOperationInFlight
	}
	c.uploading = true
	userID := c.userID
	c.mu.Unlock()
	c.notify()

	updated, err := c.store.PatchResume(ctx, userID, file)

	c.mu.Lock()
	c.uploading = false
	if userID != c.userID {
		c.mu.Unlock()
		c.notify()
		return ErrSuperseded
	}
	if err != nil {
		c.mu.Unlock()
		c.notify()
		logger.Warn(ctx, "failed to upload resume", "user_id", userID, "error", err)
		return newFailure(UploadFailure, err)
	}
	c.committed = updated.Clone()
	c.owner = userID
	c.status = StatusLoaded
	c.supersedeLoadLocked()
	c.mu.Unlock()

	c.notify()
	logger.Info(ctx, "resume updated", "user_id", userID, "file", file.Name)
	return nil
}

// ownsCommittedLocked はコミット済みスナップショットが現在のidentityのものかを返します
// ログアウト中は最後のレコードを保持したまま扱う
func (c *Controller) ownsCommittedLocked() bool {
	if c.committed == nil {
		return false
	}
	return c.userID == "" || c.owner == c.userID
}

// supersedeLoadLocked は更新前に発行された読み込みの応答を破棄させます
func (c *Controller) supersedeLoadLocked() {
	c.loadToken++
	c.inflight = 0
}

// View は現在の派生状態を返します
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	displayed := c.committed
	if c.editing {
		displayed = c.edit
	}

	v := View{
		Version:         c.version,
		Status:          c.status,
		DisplayedRecord: displayed.Clone(),
		IsLoading:       c.inflight != 0 && c.inflight == c.loadToken,
		ErrorMessage:    c.errMsg,
		IsEditing:       c.editing,
		IsSaving:        c.saving,
		IsUploading:     c.uploading,
		CanEdit:         c.ownsCommittedLocked() && !c.editing,
		CanSave:         c.editing && !c.saving && c.userID != "",
		CanUpload:       !c.uploading && c.userID != "",
	}
	if displayed != nil {
		v.Icon = displayed.Icon()
	}
	if c.committed != nil {
		v.ResumeNotice = ResumeNotice(c.committed.ResumeUploadsLeft)
	}
	return v
}

// Subscribe は状態変更のたびにViewを受け取るリスナーを登録します
// Viewは取得した順に配送される。リスナー内から状態を変更する操作を同期的に呼んではならない。
// 返された関数で登録を解除する
func (c *Controller) Subscribe(fn func(View)) func() {
	c.mu.Lock()
	c.listenerSeq++
	id := c.listenerSeq
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Controller) notify() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	c.version++
	if len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	v := c.viewLocked()
	fns := make([]func(View), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
