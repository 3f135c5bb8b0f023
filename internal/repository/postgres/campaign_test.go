package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

func setupTestDB(t *testing.T) (*CampaignStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCampaignStore(db), mock
}

func testRecord(t *testing.T) (*domain.Campaign, []byte) {
	t.Helper()
	c := &domain.Campaign{
		ID:             "7d4f5e6a-1b2c-4d3e-9f8a-0b1c2d3e4f5a",
		Proposer:       "alice",
		Title:          "Community Garden",
		Description:    "Raised beds for the neighborhood lot",
		Goal:           100,
		TotalDonations: 40,
		Deadline:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Donors:         []domain.DonorRecord{{ID: "bob", Amount: 40}},
		CreatedAt:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	record, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal test record: %v", err)
	}
	return c, record
}

func TestCampaignStore_Get(t *testing.T) {
	store, mock := setupTestDB(t)
	c, record := testRecord(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT record FROM campaigns WHERE id = $1")).
		WithArgs(c.ID).
		WillReturnRows(sqlmock.NewRows([]string{"record"}).AddRow(record))

	got, err := store.Get(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Title != c.Title || got.TotalDonations != c.TotalDonations || len(got.Donors) != 1 {
		t.Errorf("Get() = %+v, want %+v", got, c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCampaignStore_GetMissing(t *testing.T) {
	store, mock := setupTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT record FROM campaigns WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestCampaignStore_Put(t *testing.T) {
	store, mock := setupTestDB(t)
	c, record := testRecord(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO campaigns (id, record, updated_at)")).
		WithArgs(c.ID, record).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Put(context.Background(), c); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCampaignStore_Delete(t *testing.T) {
	store, mock := setupTestDB(t)
	c, record := testRecord(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM campaigns WHERE id = $1 RETURNING record")).
		WithArgs(c.ID).
		WillReturnRows(sqlmock.NewRows([]string{"record"}).AddRow(record))

	removed, err := store.Delete(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if removed.ID != c.ID {
		t.Errorf("Delete() returned %q, want %q", removed.ID, c.ID)
	}
}

func TestCampaignStore_DeleteMissing(t *testing.T) {
	store, mock := setupTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM campaigns WHERE id = $1 RETURNING record")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Delete(context.Background(), "missing")
	if !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
