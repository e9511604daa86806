// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/auth"
	"folio/internal/content"
	"folio/internal/database"
	"folio/internal/models"
	"folio/internal/store"
	"folio/internal/youtube"
)

// stubResolver returns fixed metadata and counts lookups.
type stubResolver struct {
	meta  *youtube.Metadata
	calls int
	ids   []string
}

func (r *stubResolver) Resolve(_ context.Context, id string) *youtube.Metadata {
	r.calls++
	r.ids = append(r.ids, id)
	return r.meta
}

func newService(t *testing.T, resolver content.MetadataResolver) *content.Service {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(ctx, database.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(ctx, db, database.SQLite))
	require.NoError(t, database.Seed(ctx, db, database.SQLite, database.SeedOptions{
		AdminUsername: "admin",
		AdminPassword: "admin123",
	}))

	d := database.SQLite
	return content.NewService(content.Deps{
		Categories: store.NewCategoryStore(db, d),
		Videos:     store.NewVideoStore(db, d),
		Portfolio:  store.NewPortfolioStore(db, d),
		Settings:   store.NewSiteSettingStore(db, d),
		Users:      store.NewUserStore(db, d),
		Resolver:   resolver,
	})
}

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "  Gallery/Sketches ")
	require.NoError(t, err)
	assert.Equal(t, "Gallery/Sketches", c.Name)

	_, err = svc.CreateCategory(ctx, "Gallery/Sketches")
	require.Error(t, err)
	assert.True(t, content.IsConflict(err))
	assert.Equal(t, "Category already exists", err.Error())

	_, err = svc.CreateCategory(ctx, "")
	assert.True(t, content.IsValidation(err))

	_, err = svc.CreateCategory(ctx, "a//b")
	assert.True(t, content.IsValidation(err))

	for _, reserved := range []string{"all", "all/x"} {
		_, err = svc.CreateCategory(ctx, reserved)
		assert.True(t, content.IsConflict(err), reserved)
	}
}

func TestDeleteCategory(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	err := svc.DeleteCategory(ctx, "all")
	require.Error(t, err)
	assert.True(t, content.IsValidation(err))

	names, err := svc.CategoryNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "all", `"all" survives a delete attempt`)

	require.NoError(t, svc.DeleteCategory(ctx, "VideoCommish"))
	err = svc.DeleteCategory(ctx, "VideoCommish")
	assert.True(t, content.IsNotFound(err))
}

func TestCategoryTree(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "Gallery/Sketches")
	require.NoError(t, err)

	tree, err := svc.CategoryTree(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, tree)
	assert.Equal(t, "All", tree[0].Label)
	assert.Equal(t, "/portfolio", tree[0].Path)

	var gallery, gta bool
	for _, n := range tree {
		switch n.Name {
		case "Gallery":
			gallery = true
			require.Len(t, n.Children, 1)
			assert.Equal(t, "Sketches", n.Children[0].Label)
			assert.Equal(t, "/portfolio/Gallery/Sketches", n.Children[0].Path)
		case "GTACommish":
			gta = true
			assert.Equal(t, "G T A Commish", n.Label)
			assert.Len(t, n.Children, 2)
		}
	}
	assert.True(t, gallery, "parent synthesized for Gallery/Sketches")
	assert.True(t, gta)
}

func TestCreateVideoFillsBlankMetadata(t *testing.T) {
	res := &stubResolver{meta: &youtube.Metadata{Title: "Never Gonna Give You Up", Author: "Rick Astley"}}
	svc := newService(t, res)
	ctx := context.Background()

	v, err := svc.CreateVideo(ctx, content.VideoInput{YoutubeURL: "https://youtu.be/dQw4w9WgXcQ", Title: strPtr("Mine")})
	require.NoError(t, err)
	require.NotNil(t, v.Title)
	assert.Equal(t, "Mine", *v.Title, "provided title wins")
	require.NotNil(t, v.Subtitle)
	assert.Equal(t, "Rick Astley", *v.Subtitle)
	assert.Equal(t, []string{"dQw4w9WgXcQ"}, res.ids)

	_, err = svc.CreateVideo(ctx, content.VideoInput{
		YoutubeURL: "https://youtu.be/dQw4w9WgXcQ",
		Title:      strPtr("T"),
		Subtitle:   strPtr("S"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.calls, "no lookup when both fields are provided")
}

func TestCreateVideoSurvivesLookupFailure(t *testing.T) {
	svc := newService(t, &stubResolver{})
	v, err := svc.CreateVideo(context.Background(), content.VideoInput{YoutubeURL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)
	assert.Nil(t, v.Title)
	assert.Nil(t, v.Subtitle)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"title":null`)
}

func TestCreateVideoNonYouTubeURL(t *testing.T) {
	res := &stubResolver{meta: &youtube.Metadata{Title: "x"}}
	svc := newService(t, res)
	v, err := svc.CreateVideo(context.Background(), content.VideoInput{YoutubeURL: "https://vimeo.com/1"})
	require.NoError(t, err)
	assert.Nil(t, v.Title)
	assert.Zero(t, res.calls)
}

func TestCreateVideoRequiresURL(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.CreateVideo(context.Background(), content.VideoInput{YoutubeURL: "  "})
	require.Error(t, err)
	assert.True(t, content.IsValidation(err))
	assert.Equal(t, "YouTube URL is required", err.Error())
}

func TestUpdateVideo(t *testing.T) {
	res := &stubResolver{meta: &youtube.Metadata{Title: "Fetched", Author: "Author"}}
	svc := newService(t, res)
	ctx := context.Background()

	v, err := svc.CreateVideo(ctx, content.VideoInput{YoutubeURL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)

	got, err := svc.UpdateVideo(ctx, v.ID, models.VideoPatch{Title: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.Title)
	require.NotNil(t, got.Subtitle)
	assert.Equal(t, 1, res.calls, "updates never re-fetch metadata")

	got, err = svc.UpdateVideo(ctx, v.ID, models.VideoPatch{Title: models.Set(" Renamed "), Subtitle: models.Set("   ")})
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, "Renamed", *got.Title)
	assert.Nil(t, got.Subtitle, "blank subtitle clears the column")

	_, err = svc.UpdateVideo(ctx, v.ID, models.VideoPatch{YoutubeURL: models.Null[string]()})
	assert.True(t, content.IsValidation(err))

	_, err = svc.UpdateVideo(ctx, uuid.New(), models.VideoPatch{Title: models.Set("x")})
	assert.True(t, content.IsNotFound(err))

	_, err = svc.UpdateVideo(ctx, uuid.New(), models.VideoPatch{})
	assert.True(t, content.IsNotFound(err))

	same, err := svc.UpdateVideo(ctx, v.ID, models.VideoPatch{})
	require.NoError(t, err)
	assert.Equal(t, v.ID, same.ID)
}

func TestDeleteVideo(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	v, err := svc.CreateVideo(ctx, content.VideoInput{YoutubeURL: "https://youtu.be/dQw4w9WgXcQ"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteVideo(ctx, v.ID))
	assert.True(t, content.IsNotFound(svc.DeleteVideo(ctx, v.ID)))

	videos, err := svc.Videos(ctx)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestPortfolioCreateValidation(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.CreatePortfolioItem(ctx, content.PortfolioInput{Type: models.PortfolioTypeImage})
	assert.True(t, content.IsValidation(err))
	assert.Equal(t, "URL and type are required", err.Error())

	_, err = svc.CreatePortfolioItem(ctx, content.PortfolioInput{URL: "/a.png"})
	assert.True(t, content.IsValidation(err))

	_, err = svc.CreatePortfolioItem(ctx, content.PortfolioInput{URL: "/a.png", Type: "gif"})
	assert.True(t, content.IsValidation(err))
}

func TestPortfolioFilterAndPatch(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	a, err := svc.CreatePortfolioItem(ctx, content.PortfolioInput{
		Type: models.PortfolioTypeImage, URL: "/a.png", Category: strPtr("Gallery"),
	})
	require.NoError(t, err)
	_, err = svc.CreatePortfolioItem(ctx, content.PortfolioInput{
		Type: models.PortfolioTypeVideo, URL: "https://youtu.be/dQw4w9WgXcQ", Category: strPtr("  "),
	})
	require.NoError(t, err)

	all, err := svc.PortfolioItems(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)
	unfiltered, err := svc.PortfolioItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, unfiltered, 2)

	gallery, err := svc.PortfolioItems(ctx, "Gallery")
	require.NoError(t, err)
	require.Len(t, gallery, 1)
	assert.Equal(t, a.ID, gallery[0].ID)

	// Omitting category keeps it.
	got, err := svc.UpdatePortfolioItem(ctx, a.ID, models.PortfolioPatch{Title: models.Set("A")})
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Gallery", *got.Category)

	// null clears it.
	got, err = svc.UpdatePortfolioItem(ctx, a.ID, models.PortfolioPatch{Category: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.Category)

	// Blank text fields clear like on create.
	got, err = svc.UpdatePortfolioItem(ctx, a.ID, models.PortfolioPatch{
		Title:       models.Set("  "),
		Description: models.Set(""),
		Category:    models.Set(" Gallery "),
	})
	require.NoError(t, err)
	assert.Nil(t, got.Title)
	assert.Nil(t, got.Description)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Gallery", *got.Category)

	_, err = svc.UpdatePortfolioItem(ctx, a.ID, models.PortfolioPatch{Type: models.Null[models.PortfolioType]()})
	assert.True(t, content.IsValidation(err))
	_, err = svc.UpdatePortfolioItem(ctx, a.ID, models.PortfolioPatch{URL: models.Set("")})
	assert.True(t, content.IsValidation(err))

	require.NoError(t, svc.DeletePortfolioItem(ctx, a.ID))
	assert.True(t, content.IsNotFound(svc.DeletePortfolioItem(ctx, a.ID)))
	_, err = svc.UpdatePortfolioItem(ctx, a.ID, models.PortfolioPatch{Title: models.Set("x")})
	assert.True(t, content.IsNotFound(err))
}

func TestSettings(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.UpdateSetting(ctx, "", json.RawMessage(`"x"`))
	assert.True(t, content.IsValidation(err))
	_, err = svc.UpdateSetting(ctx, "aboutMe", nil)
	assert.True(t, content.IsValidation(err))

	row, err := svc.UpdateSetting(ctx, "aboutMe", json.RawMessage(`"Hello **there**"`))
	require.NoError(t, err)
	assert.Equal(t, "Hello **there**", row.Value)

	_, err = svc.UpdateSetting(ctx, "contact", json.RawMessage(`{"email":"a@b.com","discord":"x"}`))
	require.NoError(t, err)

	pub, err := svc.PublicSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello **there**", pub.AboutMe)
	require.Len(t, pub.Contact, 2)
	require.NotNil(t, pub.Contact[0].Href)
	assert.Equal(t, "mailto:a@b.com", *pub.Contact[0].Href)

	one, err := svc.Setting(ctx, "portfolio")
	require.NoError(t, err)
	assert.NotEmpty(t, one.Value)

	_, err = svc.Setting(ctx, "nope")
	assert.True(t, content.IsNotFound(err))

	custom, err := svc.UpdateSetting(ctx, "theme", json.RawMessage(`{"dark": true}`))
	require.NoError(t, err)
	assert.Equal(t, `{"dark":true}`, custom.Value)

	cleared, err := svc.UpdateSetting(ctx, "theme", json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Equal(t, "null", cleared.Value)

	_, err = svc.UpdateSetting(ctx, " rendered ", json.RawMessage(`"x"`))
	require.True(t, content.IsValidation(err))
	assert.Equal(t, `Key "rendered" is reserved`, err.Error())
}

func TestLoginAndPasswordChange(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, content.LoginInput{Username: "admin", Password: "wrong"})
	assert.True(t, content.IsUnauthorized(err))
	_, err = svc.Login(ctx, content.LoginInput{Username: "ghost", Password: "admin123"})
	assert.True(t, content.IsUnauthorized(err))

	u, err := svc.Login(ctx, content.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	before, err := svc.CredentialStamp(ctx, u.ID)
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, content.PasswordChange{Current: "admin123", New: "short", Confirm: "short"})
	assert.True(t, content.IsValidation(err))
	err = svc.ChangePassword(ctx, u.ID, content.PasswordChange{Current: "admin123", New: "longenough", Confirm: "different"})
	assert.True(t, content.IsValidation(err))
	err = svc.ChangePassword(ctx, u.ID, content.PasswordChange{Current: "nope", New: "longenough", Confirm: "longenough"})
	assert.True(t, content.IsValidation(err))

	require.NoError(t, svc.ChangePassword(ctx, u.ID, content.PasswordChange{Current: "admin123", New: "longenough", Confirm: "longenough"}))
	_, err = svc.Login(ctx, content.LoginInput{Username: "admin", Password: "longenough"})
	require.NoError(t, err)
	after, err := svc.CredentialStamp(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)

	require.NoError(t, svc.ResetPassword(ctx, "admin", "another1"))
	_, err = svc.Login(ctx, content.LoginInput{Username: "admin", Password: "another1"})
	require.NoError(t, err)
	assert.True(t, content.IsNotFound(svc.ResetPassword(ctx, "ghost", "another1")))
}

func TestTwoFactorFlow(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	u, err := svc.Login(ctx, content.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	assert.True(t, content.IsValidation(svc.EnableTOTP(ctx, u.ID, "123456")), "setup not started")

	key, err := svc.BeginTOTPSetup(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, content.IsValidation(svc.EnableTOTP(ctx, u.ID, "000000x")))

	code, err := totp.GenerateCode(key.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.EnableTOTP(ctx, u.ID, code))

	_, err = svc.BeginTOTPSetup(ctx, u.ID)
	assert.True(t, content.IsConflict(err))

	_, err = svc.Login(ctx, content.LoginInput{Username: "admin", Password: "admin123"})
	assert.True(t, content.IsUnauthorized(err), "code now required")

	code, err = totp.GenerateCode(key.Secret, time.Now())
	require.NoError(t, err)
	_, err = svc.Login(ctx, content.LoginInput{Username: "admin", Password: "admin123", Code: code})
	require.NoError(t, err)

	require.NoError(t, svc.ResetTOTP(ctx, "admin"))
	_, err = svc.Login(ctx, content.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
}

func TestCreateUser(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "editor", "e@x.com", "password1")
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(u.PasswordHash, "password1"))

	_, err = svc.CreateUser(ctx, "editor", "", "password1")
	assert.True(t, content.IsConflict(err))
	_, err = svc.CreateUser(ctx, "x", "", "123")
	assert.True(t, content.IsValidation(err))
}
