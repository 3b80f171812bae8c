package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/models"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	dbFile, err := os.CreateTemp("", "malezi-sqlite-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	gw, err := Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { gw.Close() })
	return gw
}

func seedChannel(t *testing.T, gw *Gateway, name string, at time.Time) models.Channel {
	t.Helper()
	ch := models.Channel{
		ID:        uuid.NewString(),
		Name:      name,
		IsPublic:  true,
		CreatedBy: "user-1",
		CreatedAt: at,
	}
	if err := gw.InsertChannel(context.Background(), ch); err != nil {
		t.Fatalf("insert channel %s: %v", name, err)
	}
	return ch
}

func TestListChannelsOldestFirst(t *testing.T) {
	gw := newTestGateway(t)
	base := time.Now().UTC()

	seedChannel(t, gw, "second", base.Add(time.Minute))
	seedChannel(t, gw, "first", base)
	seedChannel(t, gw, "third", base.Add(2*time.Minute))

	got, err := gw.ListChannels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %d channels, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("channel %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestListTopicsNewestFirst(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()
	base := time.Now().UTC()
	ch := seedChannel(t, gw, "general", base)

	for i, title := range []string{"older", "newer"} {
		err := gw.InsertTopic(ctx, models.Topic{
			ID:        uuid.NewString(),
			ChannelID: ch.ID,
			Title:     title,
			CreatedBy: "user-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := gw.ListTopicsByChannel(ctx, ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d topics, want 2", len(got))
	}
	if got[0].Title != "newer" || got[1].Title != "older" {
		t.Errorf("got order [%q, %q], want [newer, older]", got[0].Title, got[1].Title)
	}
}

func TestListPostsOldestFirst(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()
	base := time.Now().UTC()
	ch := seedChannel(t, gw, "general", base)

	topic := models.Topic{
		ID:        uuid.NewString(),
		ChannelID: ch.ID,
		Title:     "thread",
		CreatedBy: "user-1",
		CreatedAt: base,
	}
	if err := gw.InsertTopic(ctx, topic); err != nil {
		t.Fatal(err)
	}
	for i, content := range []string{"first reply", "second reply"} {
		err := gw.InsertPost(ctx, models.Post{
			ID:        uuid.NewString(),
			TopicID:   topic.ID,
			Content:   content,
			CreatedBy: "user-1",
			CreatedAt: base.Add(time.Duration(i+1) * time.Second),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := gw.ListPostsByTopic(ctx, topic.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d posts, want 2", len(got))
	}
	if got[0].Content != "first reply" || got[1].Content != "second reply" {
		t.Errorf("got order [%q, %q]", got[0].Content, got[1].Content)
	}
}

func TestDeleteChannelCascades(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()
	base := time.Now().UTC()
	ch := seedChannel(t, gw, "doomed", base)

	topic := models.Topic{
		ID:        uuid.NewString(),
		ChannelID: ch.ID,
		Title:     "thread",
		CreatedBy: "user-1",
		CreatedAt: base,
	}
	if err := gw.InsertTopic(ctx, topic); err != nil {
		t.Fatal(err)
	}
	if err := gw.InsertPost(ctx, models.Post{
		ID:        uuid.NewString(),
		TopicID:   topic.ID,
		Content:   "hello",
		CreatedBy: "user-1",
		CreatedAt: base,
	}); err != nil {
		t.Fatal(err)
	}

	if err := gw.DeleteChannel(ctx, ch.ID); err != nil {
		t.Fatal(err)
	}

	topics, err := gw.ListTopicsByChannel(ctx, ch.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) != 0 {
		t.Errorf("got %d topics after delete, want 0", len(topics))
	}
	posts, err := gw.ListPostsByTopic(ctx, topic.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(posts) != 0 {
		t.Errorf("got %d posts after delete, want 0", len(posts))
	}
}

func TestDeleteChannelMissing(t *testing.T) {
	gw := newTestGateway(t)
	err := gw.DeleteChannel(context.Background(), "no-such-id")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGetProfileMissing(t *testing.T) {
	gw := newTestGateway(t)
	_, err := gw.GetProfile(context.Background(), "no-such-user")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestGetProfilesBatch(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	ids := make([]string, 2)
	for i, name := range []string{"Alice", "Bob"} {
		ids[i] = uuid.NewString()
		err := gw.InsertProfile(ctx, models.Profile{
			UserID:    ids[i],
			Email:     name + "@example.com",
			FullName:  name,
			Role:      models.RoleMember,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	got, err := gw.GetProfiles(ctx, append(ids, "absent-id"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d profiles, want 2", len(got))
	}
	if got[ids[0]].FullName != "Alice" || got[ids[1]].FullName != "Bob" {
		t.Errorf("unexpected batch contents: %+v", got)
	}
	if _, ok := got["absent-id"]; ok {
		t.Error("absent id should not be present in batch result")
	}
}

func TestResolveSession(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	userID := uuid.NewString()
	if err := gw.InsertProfile(ctx, models.Profile{
		UserID:    userID,
		Email:     "carol@example.com",
		FullName:  "Carol",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatal(err)
	}
	if err := gw.InsertSession(ctx, "secret-token", userID); err != nil {
		t.Fatal(err)
	}

	got, err := gw.ResolveSession(ctx, "secret-token")
	if err != nil {
		t.Fatal(err)
	}
	if got != userID {
		t.Errorf("got user %q, want %q", got, userID)
	}

	_, err = gw.ResolveSession(ctx, "wrong-token")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestListResourcesFeaturedFirst(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()
	base := time.Now().UTC()

	rows := []models.Resource{
		{ID: uuid.NewString(), Title: "plain new", FileType: models.FileTypePDF, Category: models.CategoryGeneral, Tags: []string{}, CreatedBy: "u", CreatedAt: base.Add(2 * time.Minute)},
		{ID: uuid.NewString(), Title: "featured old", FileType: models.FileTypePDF, Category: models.CategoryGeneral, Tags: []string{}, IsFeatured: true, CreatedBy: "u", CreatedAt: base},
		{ID: uuid.NewString(), Title: "plain old", FileType: models.FileTypePDF, Category: models.CategoryGeneral, Tags: []string{}, CreatedBy: "u", CreatedAt: base.Add(time.Minute)},
	}
	for _, r := range rows {
		if err := gw.InsertResource(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := gw.ListResources(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"featured old", "plain new", "plain old"}
	if len(got) != len(want) {
		t.Fatalf("got %d resources, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("resource %d: got %q, want %q", i, got[i].Title, title)
		}
	}
}

func TestSetDownloadCount(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	r := models.Resource{
		ID: uuid.NewString(), Title: "guide", FileType: models.FileTypePDF,
		Category: models.CategoryEducation, Tags: []string{"math"},
		DownloadCount: 4, CreatedBy: "u", CreatedAt: time.Now().UTC(),
	}
	if err := gw.InsertResource(ctx, r); err != nil {
		t.Fatal(err)
	}
	if err := gw.SetDownloadCount(ctx, r.ID, 5); err != nil {
		t.Fatal(err)
	}

	got, err := gw.GetResource(ctx, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.DownloadCount != 5 {
		t.Errorf("got download count %d, want 5", got.DownloadCount)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "math" {
		t.Errorf("tags round-trip failed: %v", got.Tags)
	}
}

func TestEventRegistrationUnique(t *testing.T) {
	gw := newTestGateway(t)
	ctx := context.Background()

	ev := models.Event{
		ID: uuid.NewString(), Title: "workshop", EventType: "workshop",
		StartDate: time.Now().UTC(), EndDate: time.Now().UTC().Add(time.Hour),
		CreatedBy: "u", CreatedAt: time.Now().UTC(),
	}
	if err := gw.InsertEvent(ctx, ev); err != nil {
		t.Fatal(err)
	}

	reg := models.EventRegistration{
		ID: uuid.NewString(), EventID: ev.ID, UserID: "user-1", CreatedAt: time.Now().UTC(),
	}
	if err := gw.InsertRegistration(ctx, reg); err != nil {
		t.Fatal(err)
	}

	got, err := gw.GetRegistration(ctx, ev.ID, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != reg.ID {
		t.Errorf("got registration %q, want %q", got.ID, reg.ID)
	}

	_, err = gw.GetRegistration(ctx, ev.ID, "user-2")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}

	if err := gw.DeleteRegistration(ctx, ev.ID, "user-1"); err != nil {
		t.Fatal(err)
	}
	_, err = gw.GetRegistration(ctx, ev.ID, "user-1")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("after delete got %v, want ErrNotFound", err)
	}
}
