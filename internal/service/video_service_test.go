package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/internal/model"
	"vidstream/internal/pagination"
	"vidstream/internal/repository"
)

type fakeVideoStore struct {
	videos map[string]model.Video
	views  map[string]map[string]bool
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{
		videos: map[string]model.Video{},
		views:  map[string]map[string]bool{},
	}
}

func (f *fakeVideoStore) Create(_ context.Context, v model.Video) error {
	f.videos[v.ID] = v
	return nil
}

func (f *fakeVideoStore) FindByID(_ context.Context, id string) (model.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return model.Video{}, model.ErrVideoNotFound
	}
	return v, nil
}

func (f *fakeVideoStore) List(_ context.Context, filter repository.ListFilter, _ pagination.Params) ([]model.Video, int, error) {
	out := make([]model.Video, 0)
	for _, v := range f.videos {
		if filter.OwnerID != "" && v.OwnerID != filter.OwnerID {
			continue
		}
		if !v.IsPublished && v.OwnerID != filter.IncludeUnpublishedFor {
			continue
		}
		out = append(out, v)
	}
	return out, len(out), nil
}

func (f *fakeVideoStore) Update(_ context.Context, v model.Video) error {
	if _, ok := f.videos[v.ID]; !ok {
		return model.ErrVideoNotFound
	}
	f.videos[v.ID] = v
	return nil
}

func (f *fakeVideoStore) SetPublished(_ context.Context, id string, published bool) error {
	v, ok := f.videos[id]
	if !ok {
		return model.ErrVideoNotFound
	}
	v.IsPublished = published
	f.videos[id] = v
	return nil
}

func (f *fakeVideoStore) Delete(_ context.Context, id string) error {
	if _, ok := f.videos[id]; !ok {
		return model.ErrVideoNotFound
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoStore) RecordView(_ context.Context, videoID string, viewerID string) (bool, error) {
	if f.views[videoID] == nil {
		f.views[videoID] = map[string]bool{}
	}
	if f.views[videoID][viewerID] {
		return false, nil
	}
	f.views[videoID][viewerID] = true
	v := f.videos[videoID]
	v.Views++
	f.videos[videoID] = v
	return true, nil
}

// fakeSigner returns recognizable URLs without touching any bucket.
type fakeSigner struct{}

func (fakeSigner) PresignUpload(_ context.Context, key string) (string, error) {
	return "https://store.test/upload/" + key, nil
}

func (fakeSigner) PresignDownload(_ context.Context, key string) (string, error) {
	return "https://store.test/get/" + key, nil
}

func seedVideo(store *fakeVideoStore, ownerID string, published bool) model.Video {
	v := model.Video{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       "a video",
		VideoKey:    "videos/k",
		IsPublished: published,
	}
	store.videos[v.ID] = v
	return v
}

func TestVideoPublishReturnsUploadTargets(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideoService(store, fakeSigner{})

	published, err := svc.Publish(context.Background(), "owner-1", model.PublishVideoRequest{
		Title:    "  My Video  ",
		Duration: 42.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "My Video", published.Video.Title)
	assert.False(t, published.Video.IsPublished, "new videos start as drafts")
	assert.Contains(t, published.VideoUploadURL, "/upload/")
	assert.Contains(t, published.ThumbnailUploadURL, "/upload/")

	_, err = svc.Publish(context.Background(), "owner-1", model.PublishVideoRequest{Title: "   "})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestVideoMutationsRequireOwnership(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideoService(store, fakeSigner{})
	video := seedVideo(store, "owner-1", true)
	title := "renamed"

	_, err := svc.Update(context.Background(), "intruder", video.ID, model.UpdateVideoRequest{Title: &title})
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = svc.TogglePublish(context.Background(), "intruder", video.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	err = svc.Delete(context.Background(), "intruder", video.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	// Untouched after all the refusals.
	stored, err := store.FindByID(context.Background(), video.ID)
	require.NoError(t, err)
	assert.Equal(t, "a video", stored.Title)

	updated, err := svc.Update(context.Background(), "owner-1", video.ID, model.UpdateVideoRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)

	require.NoError(t, svc.Delete(context.Background(), "owner-1", video.ID))
	_, err = store.FindByID(context.Background(), video.ID)
	assert.ErrorIs(t, err, model.ErrVideoNotFound)
}

func TestVideoDraftHiddenFromOthers(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideoService(store, fakeSigner{})
	draft := seedVideo(store, "owner-1", false)

	_, err := svc.Get(context.Background(), "someone-else", draft.ID)
	assert.ErrorIs(t, err, model.ErrVideoNotFound)

	_, err = svc.Get(context.Background(), "", draft.ID)
	assert.ErrorIs(t, err, model.ErrVideoNotFound)

	got, err := svc.Get(context.Background(), "owner-1", draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestVideoGetCountsViewOncePerViewer(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideoService(store, fakeSigner{})
	video := seedVideo(store, "owner-1", true)

	first, err := svc.Get(context.Background(), "viewer-1", video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.Get(context.Background(), "viewer-1", video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.Views, "repeat view by same viewer does not count")

	third, err := svc.Get(context.Background(), "viewer-2", video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), third.Views)

	// The owner watching their own video is not a view.
	owner, err := svc.Get(context.Background(), "owner-1", video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), owner.Views)
}

func TestVideoGetSignsPlaybackURLs(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideoService(store, fakeSigner{})
	video := seedVideo(store, "owner-1", true)

	got, err := svc.Get(context.Background(), "", video.ID)
	require.NoError(t, err)
	assert.Contains(t, got.VideoURL, "/get/")
	assert.Contains(t, got.ThumbnailURL, "/get/")
}

func TestVideoListScopesDraftsToOwner(t *testing.T) {
	store := newFakeVideoStore()
	svc := NewVideoService(store, fakeSigner{})
	seedVideo(store, "owner-1", true)
	seedVideo(store, "owner-1", false)

	p := pagination.Params{Page: 1, Limit: 10, SortBy: "created_at", SortType: "desc"}

	// Anonymous browse of the channel: published only.
	page, err := svc.List(context.Background(), "", "owner-1", p)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)

	// The owner browsing their own channel sees the draft too.
	page, err = svc.List(context.Background(), "owner-1", "owner-1", p)
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
}
