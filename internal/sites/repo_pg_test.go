package sites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateSiteDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO sites").
		WithArgs("site-1", "example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.CreateSite(context.Background(), Site{ID: "site-1", Domain: "example.com"})
	if !errors.Is(err, ErrDuplicateDomain) {
		t.Fatalf("CreateSite err = %v, want ErrDuplicateDomain", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetSiteByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, domain, created_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "domain", "created_at"}))

	_, err = repo.GetSiteByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetSiteByID err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoListPages(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, site_id, url, created_at").
		WithArgs("site-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "site_id", "url", "created_at"}).
			AddRow("p1", "site-1", "https://example.com/", now).
			AddRow("p2", "site-1", "https://example.com/about", now))

	pages, err := repo.ListPages(context.Background(), "site-1")
	if err != nil {
		t.Fatalf("ListPages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("len(pages) = %d, want 2", len(pages))
	}
	if pages[1].URL != "https://example.com/about" {
		t.Fatalf("pages[1].URL = %q", pages[1].URL)
	}
}

func TestPGRepoDeletePages(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM pages WHERE site_id").
		WithArgs("site-1", "https://example.com/a", "https://example.com/b").
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeletePages(context.Background(), "site-1",
		[]string{"https://example.com/a", "https://example.com/b"})
	if err != nil {
		t.Fatalf("DeletePages: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2", deleted)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
