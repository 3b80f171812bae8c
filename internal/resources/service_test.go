package resources

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/malezi/malezi/internal/apperr"
	"github.com/malezi/malezi/internal/identity"
	"github.com/malezi/malezi/internal/models"
	"github.com/malezi/malezi/internal/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	gw := testutil.TestGateway(t)
	_, store := testutil.TestBlobStore(t)
	return NewService(gw, store)
}

func asAdmin() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{
		UserID: "admin-1", FullName: "Admin", Role: models.RoleAdmin,
	})
}

func asMember() context.Context {
	return identity.WithIdentity(context.Background(), identity.Identity{
		UserID: "member-1", FullName: "Member", Role: models.RoleMember,
	})
}

func pdfInput(title string) CreateInput {
	return CreateInput{
		Title:    title,
		FileType: models.FileTypePDF,
		Category: models.CategoryEducation,
		Tags:     []string{"math"},
		File:     strings.NewReader("pdf bytes"),
		FileName: "workbook.pdf",
	}
}

func TestCreateIsAdminGated(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create(context.Background(), pdfInput("guide")); !errors.Is(err, apperr.ErrAuthRequired) {
		t.Errorf("anonymous: got %v, want ErrAuthRequired", err)
	}
	if _, err := svc.Create(asMember(), pdfInput("guide")); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("member: got %v, want ErrForbidden", err)
	}
}

func TestCreateUploadsFile(t *testing.T) {
	svc := newTestService(t)

	r, err := svc.Create(asAdmin(), pdfInput("Math workbook"))
	if err != nil {
		t.Fatal(err)
	}
	if r.FileURL == "" {
		t.Fatal("expected a public file URL")
	}
	if !strings.Contains(r.FileURL, "/files/resources/") {
		t.Errorf("unexpected URL %q", r.FileURL)
	}
	if !strings.HasSuffix(r.FileURL, ".pdf") {
		t.Errorf("URL should keep the upload extension: %q", r.FileURL)
	}

	got, err := svc.List(asAdmin())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Math workbook" {
		t.Errorf("listing after create: %+v", got)
	}
}

func TestCreateRequiresFileForNonLink(t *testing.T) {
	svc := newTestService(t)

	in := pdfInput("guide")
	in.File = nil
	if _, err := svc.Create(asAdmin(), in); !apperr.IsValidation(err) {
		t.Errorf("got %v, want ValidationError", err)
	}
}

func TestCreateLinkTakesURLVerbatim(t *testing.T) {
	svc := newTestService(t)

	in := CreateInput{
		Title:    "External course",
		FileType: models.FileTypeLink,
		Category: models.CategoryGeneral,
		FileURL:  "https://example.com/course",
	}
	r, err := svc.Create(asAdmin(), in)
	if err != nil {
		t.Fatal(err)
	}
	if r.FileURL != "https://example.com/course" {
		t.Errorf("got %q, want the URL verbatim", r.FileURL)
	}

	in.FileURL = ""
	if _, err := svc.Create(asAdmin(), in); !apperr.IsValidation(err) {
		t.Errorf("link without URL: got %v, want ValidationError", err)
	}
}

func TestCreateRejectsUnknownEnums(t *testing.T) {
	svc := newTestService(t)

	in := pdfInput("guide")
	in.FileType = "spreadsheet"
	if _, err := svc.Create(asAdmin(), in); !apperr.IsValidation(err) {
		t.Errorf("bad file type: got %v, want ValidationError", err)
	}

	in = pdfInput("guide")
	in.Category = "finance"
	if _, err := svc.Create(asAdmin(), in); !apperr.IsValidation(err) {
		t.Errorf("bad category: got %v, want ValidationError", err)
	}
}

func TestRecordDownloadIncrements(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create(asAdmin(), pdfInput("guide"))
	if err != nil {
		t.Fatal(err)
	}

	for want := 1; want <= 5; want++ {
		got, err := svc.RecordDownload(context.Background(), created.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.DownloadCount != want {
			t.Errorf("download %d: got count %d", want, got.DownloadCount)
		}
	}

	_, err = svc.RecordDownload(context.Background(), "no-such-id")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSearchAppliesFilter(t *testing.T) {
	svc := newTestService(t)

	titles := map[string]models.Category{
		"Math workbook":   models.CategoryEducation,
		"Sleep routines":  models.CategoryHealth,
		"Math for babies": models.CategoryDevelopment,
	}
	for title, cat := range titles {
		in := pdfInput(title)
		in.Category = cat
		in.File = strings.NewReader("x")
		if _, err := svc.Create(asAdmin(), in); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.Search(context.Background(), "math", CategoryAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("term math: got %d, want 2", len(got))
	}

	got, err = svc.Search(context.Background(), "", "health")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Sleep routines" {
		t.Errorf("category health: %+v", got)
	}
}
