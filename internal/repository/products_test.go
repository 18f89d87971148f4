package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/serragrande/logsgb/internal/models"
)

func setupProductMock(t *testing.T) (*PostgresProductRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresProductRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestProductListAll(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{
		"id", "code", "description", "brand", "liters", "units_per_package",
		"packages_per_pallet", "returnable", "hl_per_package", "image",
	}).
		AddRow("p1", "0101", "Cerveja 600ml", "Serra", 0.6, 12.0, 80.0, true, 0.072, "").
		AddRow("p2", "0202", "Refri 2L", "SGB", 2.0, 6.0, 60.0, false, 0.12, "")

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).WillReturnRows(rows)

	products, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products; want 2", len(products))
	}
	if products[0].Code != "0101" || products[0].HLPerPackage != 0.072 {
		t.Errorf("unexpected first product: %+v", products[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductListAll_QueryError(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM products")).
		WillReturnError(errors.New("query failed"))

	if _, err := repo.ListAll(context.Background()); err == nil {
		t.Errorf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductInsert_AssignsID(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	p := models.Product{
		Code: "0101", Description: "Cerveja 600ml", Brand: "Serra",
		Liters: 0.6, UnitsPerPackage: 12, PackagesPerPallet: 80,
		Returnable: true, HLPerPackage: 0.072,
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(sqlmock.AnyArg(), p.Code, p.Description, p.Brand, p.Liters,
			p.UnitsPerPackage, p.PackagesPerPallet, p.Returnable,
			p.HLPerPackage, p.Image).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := repo.Insert(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Errorf("expected assigned ID, got empty")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductUpdate(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	p := models.Product{
		Code: "0101", Description: "Cerveja 600ml", Brand: "Serra",
		Liters: 0.6, UnitsPerPackage: 12, PackagesPerPallet: 80,
		Returnable: true, HLPerPackage: 0.072,
	}
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products")).
		WithArgs("p1", p.Code, p.Description, p.Brand, p.Liters,
			p.UnitsPerPackage, p.PackagesPerPallet, p.Returnable,
			p.HLPerPackage, p.Image).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), "p1", p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestProductDeleteByID(t *testing.T) {
	repo, mock, cleanup := setupProductMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteByID(context.Background(), "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
