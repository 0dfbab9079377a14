package profile_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Alessandra005/witcon2026/internal/domain/entity"
	"github.com/Alessandra005/witcon2026/internal/domain/service"
	"github.com/Alessandra005/witcon2026/internal/domain/valueobject"
	"github.com/Alessandra005/witcon2026/internal/usecase/profile"
	"github.com/Alessandra005/witcon2026/tests/testutil/mocks"
)

func newTestAttendee(userID, firstName string) *entity.Attendee {
	remaining := 2
	return &entity.Attendee{
		ID:                42,
		UserID:            userID,
		FirstName:         firstName,
		LastName:          "Lovelace",
		Email:             userID + "@example.com",
		School:            "University of Auckland",
		FieldOfStudy:      "Computer Science",
		LevelOfStudy:      valueobject.LevelUndergraduate,
		YearLevel:         "3",
		Resume:            "https://storage.example.com/resumes/old.pdf",
		GitHub:            "https://github.com/ada",
		ProfileImage:      valueobject.ProfileIcon3,
		ShirtSize:         valueobject.ShirtSizeM,
		ResumeUploadsLeft: &remaining,
	}
}

func newLoadedController(t *testing.T, store *mocks.MockAttendeeStore, record *entity.Attendee) *profile.Controller {
	t.Helper()
	store.On("Get", mock.Anything, record.UserID).Return(record.Clone(), nil).Once()

	c := profile.NewController(store)
	require.NoError(t, c.SetIdentity(context.Background(), record.UserID))
	return c
}

func TestController_InitialState(t *testing.T) {
	c := profile.NewController(mocks.NewMockAttendeeStore(t))

	view := c.View()
	assert.Equal(t, profile.StatusUnloaded, view.Status)
	assert.Nil(t, view.DisplayedRecord)
	assert.False(t, view.IsLoading)
	assert.False(t, view.IsEditing)
	assert.False(t, view.CanEdit)
	assert.Empty(t, view.ErrorMessage)
}

func TestController_SetIdentity_LoadsRecord(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")

	store.On("Get", mock.Anything, "user-1").Return(record.Clone(), nil).Once()

	c := profile.NewController(store)
	require.NoError(t, c.SetIdentity(ctx, "user-1"))

	view := c.View()
	assert.Equal(t, profile.StatusLoaded, view.Status)
	assert.Equal(t, record, view.DisplayedRecord)
	assert.False(t, view.IsLoading)
	assert.True(t, view.CanEdit)
	assert.Equal(t, valueobject.ProfileIcon3, view.Icon)
	assert.Equal(t, "You only have a limit of 2 more resume uploads.", view.ResumeNotice)
}

func TestController_SetIdentity_AbsentIdentityIssuesNothing(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)

	c := profile.NewController(store)
	require.NoError(t, c.SetIdentity(ctx, ""))

	view := c.View()
	assert.False(t, view.IsLoading)
	assert.Equal(t, profile.StatusUnloaded, view.Status)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestController_SetIdentity_AbsentIdentityPreservesState(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	require.NoError(t, c.SetIdentity(ctx, ""))

	view := c.View()
	assert.Equal(t, record, view.DisplayedRecord)
	assert.False(t, view.IsLoading)
	assert.Equal(t, "", c.UserID())
}

func TestController_SetIdentity_LoadFailure(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)

	store.On("Get", mock.Anything, "user-1").Return(nil, errors.New("status 500")).Once()

	c := profile.NewController(store)
	err := c.SetIdentity(ctx, "user-1")

	require.Error(t, err)
	assert.True(t, profile.IsFailureKind(err, profile.LoadFailure))
	view := c.View()
	assert.Equal(t, "Failed to fetch profile data", view.ErrorMessage)
	assert.Equal(t, profile.StatusUnloaded, view.Status)
	assert.Nil(t, view.DisplayedRecord)
	assert.False(t, view.IsLoading)
}

func TestController_Reload_FailureKeepsCommittedRecord(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	store.On("Get", mock.Anything, "user-1").Return(nil, errors.New("connection refused")).Once()

	err := c.Reload(ctx)

	require.Error(t, err)
	view := c.View()
	assert.Equal(t, profile.MessageLoadFailed, view.ErrorMessage)
	assert.Equal(t, record, view.DisplayedRecord)
	assert.Equal(t, profile.StatusLoaded, view.Status)
}

func TestController_Reload_WithoutIdentity(t *testing.T) {
	c := profile.NewController(mocks.NewMockAttendeeStore(t))

	err := c.Reload(context.Background())

	assert.ErrorIs(t, err, profile.ErrNoIdentity)
}

func TestController_StaleLoadResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	first := newTestAttendee("user-1", "Ada")
	second := newTestAttendee("user-2", "Grace")

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Get", mock.Anything, "user-1").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(first.Clone(), nil).Once()
	store.On("Get", mock.Anything, "user-2").Return(second.Clone(), nil).Once()

	c := profile.NewController(store)

	errCh := make(chan error, 1)
	go func() { errCh <- c.SetIdentity(ctx, "user-1") }()
	<-entered

	assert.True(t, c.View().IsLoading)
	require.NoError(t, c.SetIdentity(ctx, "user-2"))

	close(release)
	assert.ErrorIs(t, <-errCh, profile.ErrSuperseded)

	view := c.View()
	assert.Equal(t, second, view.DisplayedRecord)
	assert.False(t, view.IsLoading)
}

func TestController_StaleLoadForSameIdentityIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	older := newTestAttendee("user-1", "Old")
	newer := newTestAttendee("user-1", "New")

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Get", mock.Anything, "user-1").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(older.Clone(), nil).Once()
	store.On("Get", mock.Anything, "user-1").Return(newer.Clone(), nil).Once()

	c := profile.NewController(store)

	errCh := make(chan error, 1)
	go func() { errCh <- c.SetIdentity(ctx, "user-1") }()
	<-entered

	require.NoError(t, c.SetIdentity(ctx, "user-1"))
	close(release)

	assert.ErrorIs(t, <-errCh, profile.ErrSuperseded)
	assert.Equal(t, "New", c.View().DisplayedRecord.FirstName)
}

func TestController_LogoutDuringLoadClearsLoading(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Get", mock.Anything, "user-1").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(newTestAttendee("user-1", "Ada"), nil).Once()

	c := profile.NewController(store)

	errCh := make(chan error, 1)
	go func() { errCh <- c.SetIdentity(ctx, "user-1") }()
	<-entered

	require.NoError(t, c.SetIdentity(ctx, ""))
	assert.False(t, c.View().IsLoading)

	close(release)
	assert.ErrorIs(t, <-errCh, profile.ErrSuperseded)
	assert.Nil(t, c.View().DisplayedRecord)
}

func TestController_BeginEdit_RequiresLoadedRecord(t *testing.T) {
	c := profile.NewController(mocks.NewMockAttendeeStore(t))

	assert.ErrorIs(t, c.BeginEdit(), profile.ErrNotLoaded)
	assert.False(t, c.View().IsEditing)
}

func TestController_BeginEdit_WhileEditingKeepsEdits(t *testing.T) {
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-1", "Ada"))

	require.NoError(t, c.BeginEdit())
	require.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))
	require.NoError(t, c.BeginEdit())

	assert.Equal(t, "Augusta", c.View().DisplayedRecord.FirstName)
}

func TestController_SetField_ChangesExactlyOneField(t *testing.T) {
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	for _, field := range entity.EditableFields() {
		t.Run(string(field), func(t *testing.T) {
			require.NoError(t, c.BeginEdit())
			defer func() { require.NoError(t, c.Cancel()) }()

			value := "changed"
			switch field {
			case entity.FieldLevelOfStudy:
				value = valueobject.LevelGraduate.String()
			case entity.FieldProfileImage:
				value = valueobject.ProfileIcon6.String()
			case entity.FieldShirtSize:
				value = "XL"
			}

			require.NoError(t, c.SetField(field, value))

			expected := record.Clone()
			require.NoError(t, expected.SetField(field, value))
			assert.Equal(t, expected, c.View().DisplayedRecord)
		})
	}
}

func TestController_SetField_Rejections(t *testing.T) {
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-1", "Ada"))

	assert.ErrorIs(t, c.SetField(entity.FieldFirstName, "x"), profile.ErrNotEditing)

	require.NoError(t, c.BeginEdit())
	assert.ErrorIs(t, c.SetField(entity.FieldLevelOfStudy, "PhD"), valueobject.ErrInvalidLevelOfStudy)
	assert.ErrorIs(t, c.SetField(entity.FieldProfileImage, "cat.png"), valueobject.ErrInvalidProfileIcon)
	assert.ErrorIs(t, c.SetField(entity.FieldResume, "x"), entity.ErrReadOnlyField)
	assert.ErrorIs(t, c.SetField(entity.AttendeeField("nickname"), "x"), entity.ErrUnknownField)
	assert.Equal(t, valueobject.LevelUndergraduate, c.View().DisplayedRecord.LevelOfStudy)
}

func TestController_Cancel_RestoresCommittedAndIsIdempotent(t *testing.T) {
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	require.NoError(t, c.BeginEdit())
	require.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))
	require.NoError(t, c.SetField(entity.FieldDiscord, "ada#0001"))

	require.NoError(t, c.Cancel())
	view := c.View()
	assert.False(t, view.IsEditing)
	assert.Equal(t, record, view.DisplayedRecord)

	require.NoError(t, c.Cancel())
	assert.Equal(t, record, c.View().DisplayedRecord)

	require.NoError(t, c.BeginEdit())
	assert.Equal(t, record, c.View().DisplayedRecord)
}

func TestController_Save_Success(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	saved := record.Clone()
	saved.FirstName = "Augusta"
	saved.UpdatedAt = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	store.On("Replace", mock.Anything, "user-1", mock.MatchedBy(func(a *entity.Attendee) bool {
		return a.FirstName == "Augusta" && a.LastName == "Lovelace"
	})).Return(saved.Clone(), nil).Once()

	require.NoError(t, c.BeginEdit())
	require.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))
	require.NoError(t, c.Save(ctx))

	view := c.View()
	assert.False(t, view.IsEditing)
	assert.False(t, view.IsSaving)
	assert.Equal(t, saved, view.DisplayedRecord)
}

func TestController_Save_FailureKeepsEditing(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-1", "Ada"))

	store.On("Replace", mock.Anything, "user-1", mock.Anything).Return(nil, errors.New("status 400")).Once()

	require.NoError(t, c.BeginEdit())
	require.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))
	err := c.Save(ctx)

	require.Error(t, err)
	var failure *profile.Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, profile.SaveFailure, failure.Kind)
	assert.Equal(t, "Failed to save profile", failure.Message)

	view := c.View()
	assert.True(t, view.IsEditing)
	assert.False(t, view.IsSaving)
	assert.Equal(t, "Augusta", view.DisplayedRecord.FirstName)
}

func TestController_Save_RequiresEditing(t *testing.T) {
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-1", "Ada"))

	assert.ErrorIs(t, c.Save(context.Background()), profile.ErrNotEditing)
}

func TestController_Save_SingleFlight(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Replace", mock.Anything, "user-1", mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(record.Clone(), nil).Once()

	require.NoError(t, c.BeginEdit())

	errCh := make(chan error, 1)
	go func() { errCh <- c.Save(ctx) }()
	<-entered

	assert.True(t, c.View().IsSaving)
	assert.False(t, c.View().CanSave)
	assert.ErrorIs(t, c.Save(ctx), profile.ErrOperationInFlight)
	assert.ErrorIs(t, c.SetField(entity.FieldFirstName, "x"), profile.ErrOperationInFlight)
	assert.ErrorIs(t, c.Cancel(), profile.ErrOperationInFlight)

	close(release)
	require.NoError(t, <-errCh)
	assert.False(t, c.View().IsEditing)
}

func TestController_Save_DiscardedAfterIdentityChange(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	other := newTestAttendee("user-2", "Grace")
	c := newLoadedController(t, store, record)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Replace", mock.Anything, "user-1", mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(record.Clone(), nil).Once()
	store.On("Get", mock.Anything, "user-2").Return(other.Clone(), nil).Once()

	require.NoError(t, c.BeginEdit())

	errCh := make(chan error, 1)
	go func() { errCh <- c.Save(ctx) }()
	<-entered

	require.NoError(t, c.SetIdentity(ctx, "user-2"))
	close(release)

	assert.ErrorIs(t, <-errCh, profile.ErrSuperseded)
	assert.Equal(t, other, c.View().DisplayedRecord)
}

func TestController_IdentitySwitchExitsEditMode(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-1", "Ada"))

	store.On("Get", mock.Anything, "user-2").Return(newTestAttendee("user-2", "Grace"), nil).Once()

	require.NoError(t, c.BeginEdit())
	require.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))
	require.NoError(t, c.SetIdentity(ctx, "user-2"))

	view := c.View()
	assert.False(t, view.IsEditing)
	assert.Equal(t, "Grace", view.DisplayedRecord.FirstName)
}

func TestController_IdentitySwitchDropsPreviousRecord(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-a", "Alice"))

	store.On("Get", mock.Anything, "user-b").Return(nil, errors.New("connection refused")).Once()

	require.Error(t, c.SetIdentity(ctx, "user-b"))

	view := c.View()
	assert.Nil(t, view.DisplayedRecord)
	assert.Equal(t, profile.StatusUnloaded, view.Status)
	assert.Equal(t, profile.MessageLoadFailed, view.ErrorMessage)
	assert.False(t, view.CanEdit)
	assert.ErrorIs(t, c.BeginEdit(), profile.ErrNotLoaded)
	assert.ErrorIs(t, c.Save(ctx), profile.ErrNotEditing)
	store.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestController_IdentitySwitchBlocksEditWhileLoading(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-a", "Alice"))

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Get", mock.Anything, "user-b").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(newTestAttendee("user-b", "Barbara"), nil).Once()

	errCh := make(chan error, 1)
	go func() { errCh <- c.SetIdentity(ctx, "user-b") }()
	<-entered

	view := c.View()
	assert.True(t, view.IsLoading)
	assert.Nil(t, view.DisplayedRecord)
	assert.False(t, view.CanEdit)
	assert.ErrorIs(t, c.BeginEdit(), profile.ErrNotLoaded)

	close(release)
	require.NoError(t, <-errCh)
	assert.Equal(t, "user-b", c.View().DisplayedRecord.UserID)
	require.NoError(t, c.BeginEdit())
}

func TestController_ReloginSameIdentityKeepsRecord(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	store.On("Get", mock.Anything, "user-1").Return(nil, errors.New("connection refused")).Once()

	require.NoError(t, c.SetIdentity(ctx, ""))
	require.Error(t, c.SetIdentity(ctx, "user-1"))

	view := c.View()
	assert.Equal(t, record, view.DisplayedRecord)
	assert.True(t, view.CanEdit)
}

func TestController_Save_DiscardsEarlierReload(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	saved := record.Clone()
	saved.FirstName = "Augusta"

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Get", mock.Anything, "user-1").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(record.Clone(), nil).Once()
	store.On("Replace", mock.Anything, "user-1", mock.Anything).Return(saved.Clone(), nil).Once()

	require.NoError(t, c.BeginEdit())
	require.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))

	errCh := make(chan error, 1)
	go func() { errCh <- c.Reload(ctx) }()
	<-entered

	require.NoError(t, c.Save(ctx))
	close(release)

	assert.ErrorIs(t, <-errCh, profile.ErrSuperseded)
	view := c.View()
	assert.Equal(t, saved, view.DisplayedRecord)
	assert.False(t, view.IsLoading)
}

func TestController_UploadResume_DiscardsEarlierReload(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	uploaded := record.Clone()
	uploaded.Resume = "https://storage.example.com/resumes/new.pdf"

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("Get", mock.Anything, "user-1").
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(record.Clone(), nil).Once()
	store.On("PatchResume", mock.Anything, "user-1", mock.Anything).Return(uploaded.Clone(), nil).Once()

	errCh := make(chan error, 1)
	go func() { errCh <- c.Reload(ctx) }()
	<-entered

	file := service.ResumeFile{Name: "cv.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF-1.4")}
	require.NoError(t, c.UploadResume(ctx, file))
	close(release)

	assert.ErrorIs(t, <-errCh, profile.ErrSuperseded)
	assert.Equal(t, uploaded.Resume, c.View().DisplayedRecord.Resume)
}

func TestController_UploadResume_UpdatesCommittedOnly(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	uploaded := record.Clone()
	uploaded.Resume = "https://storage.example.com/resumes/new.pdf"
	remaining := 1
	uploaded.ResumeUploadsLeft = &remaining

	file := service.ResumeFile{Name: "cv.pdf", ContentType: "application/pdf", Content: strings.NewReader("%PDF-1.4")}
	store.On("PatchResume", mock.Anything, "user-1", mock.MatchedBy(func(f service.ResumeFile) bool {
		return f.Name == "cv.pdf"
	})).Return(uploaded.Clone(), nil).Once()

	require.NoError(t, c.BeginEdit())
	require.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))
	require.NoError(t, c.UploadResume(ctx, file))

	view := c.View()
	assert.True(t, view.IsEditing)
	assert.Equal(t, "Augusta", view.DisplayedRecord.FirstName)
	assert.Equal(t, record.Resume, view.DisplayedRecord.Resume)
	assert.Equal(t, "You only have a limit of 1 more resume upload.", view.ResumeNotice)

	require.NoError(t, c.Cancel())
	assert.Equal(t, uploaded, c.View().DisplayedRecord)
}

func TestController_UploadResume_Failure(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	store.On("PatchResume", mock.Anything, "user-1", mock.Anything).Return(nil, errors.New("status 403")).Once()

	err := c.UploadResume(ctx, service.ResumeFile{Name: "cv.pdf", Content: strings.NewReader("x")})

	assert.True(t, profile.IsFailureKind(err, profile.UploadFailure))
	view := c.View()
	assert.Equal(t, record, view.DisplayedRecord)
	assert.False(t, view.IsUploading)
	assert.Empty(t, view.ErrorMessage)
}

func TestController_UploadResume_Guards(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)

	c := profile.NewController(store)
	assert.ErrorIs(t, c.UploadResume(ctx, service.ResumeFile{}), profile.ErrNoFileSelected)
	assert.ErrorIs(t, c.UploadResume(ctx, service.ResumeFile{Name: "cv.pdf", Content: strings.NewReader("x")}), profile.ErrNoIdentity)
}

func TestController_UploadResume_SingleFlight(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	record := newTestAttendee("user-1", "Ada")
	c := newLoadedController(t, store, record)

	entered := make(chan struct{})
	release := make(chan struct{})
	store.On("PatchResume", mock.Anything, "user-1", mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(record.Clone(), nil).Once()

	file := service.ResumeFile{Name: "cv.pdf", Content: strings.NewReader("x")}
	errCh := make(chan error, 1)
	go func() { errCh <- c.UploadResume(ctx, file) }()
	<-entered

	assert.True(t, c.View().IsUploading)
	assert.ErrorIs(t, c.UploadResume(ctx, file), profile.ErrOperationInFlight)

	close(release)
	require.NoError(t, <-errCh)
	assert.False(t, c.View().IsUploading)
}

func TestController_Subscribe(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockAttendeeStore(t)
	store.On("Get", mock.Anything, "user-1").Return(newTestAttendee("user-1", "Ada"), nil).Once()

	c := profile.NewController(store)

	var mu sync.Mutex
	var views []profile.View
	unsubscribe := c.Subscribe(func(v profile.View) {
		mu.Lock()
		views = append(views, v)
		mu.Unlock()
	})

	require.NoError(t, c.SetIdentity(ctx, "user-1"))

	mu.Lock()
	require.Len(t, views, 2)
	assert.True(t, views[0].IsLoading)
	assert.False(t, views[1].IsLoading)
	assert.Equal(t, "Ada", views[1].DisplayedRecord.FirstName)
	mu.Unlock()

	unsubscribe()
	require.NoError(t, c.BeginEdit())

	mu.Lock()
	assert.Len(t, views, 2)
	mu.Unlock()
}

func TestController_Subscribe_DeliversInOrder(t *testing.T) {
	store := mocks.NewMockAttendeeStore(t)
	c := newLoadedController(t, store, newTestAttendee("user-1", "Ada"))
	require.NoError(t, c.BeginEdit())

	var mu sync.Mutex
	var versions []uint64
	unsubscribe := c.Subscribe(func(v profile.View) {
		mu.Lock()
		versions = append(versions, v.Version)
		mu.Unlock()
	})
	defer unsubscribe()

	const writers = 50
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.SetField(entity.FieldFirstName, "Augusta"))
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, versions, writers)
	for i := 1; i < len(versions); i++ {
		assert.Greater(t, versions[i], versions[i-1])
	}
	assert.Equal(t, versions[len(versions)-1], c.View().Version)
}

type fakeIdentitySource struct {
	mu      sync.Mutex
	userID  string
	changes chan string
}

func newFakeIdentitySource(userID string) *fakeIdentitySource {
	return &fakeIdentitySource{userID: userID, changes: make(chan string, 4)}
}

func (s *fakeIdentitySource) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *fakeIdentitySource) Changes() (<-chan string, func()) {
	return s.changes, func() {}
}

func (s *fakeIdentitySource) set(userID string) {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
	s.changes <- userID
}

func (s *fakeIdentitySource) Logout() {
	s.set("")
}

func TestController_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := mocks.NewMockAttendeeStore(t)
	store.On("Get", mock.Anything, "user-1").Return(newTestAttendee("user-1", "Ada"), nil).Once()
	store.On("Get", mock.Anything, "user-2").Return(newTestAttendee("user-2", "Grace"), nil).Once()

	src := newFakeIdentitySource("user-1")
	c := profile.NewController(store)
	c.Watch(ctx, src)

	assert.Equal(t, "user-1", c.UserID())
	assert.Eventually(t, func() bool {
		v := c.View()
		return v.DisplayedRecord != nil && v.DisplayedRecord.FirstName == "Ada"
	}, time.Second, 5*time.Millisecond)

	src.Logout()
	assert.Eventually(t, func() bool { return c.UserID() == "" }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Ada", c.View().DisplayedRecord.FirstName)

	src.set("user-2")
	assert.Eventually(t, func() bool {
		v := c.View()
		return v.DisplayedRecord != nil && v.DisplayedRecord.FirstName == "Grace" && !v.IsLoading
	}, time.Second, 5*time.Millisecond)
}
