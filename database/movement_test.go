package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"
)

func newTestDatasource(t *testing.T) (Datasource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return Datasource{Conn: db}, mock
}

func TestRecordMovement(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("INSERT INTO movements").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "PAGO IBI 1ER PLAZO", sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mov := &model.FinancialMovement{
		Date:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Concept: "PAGO IBI 1ER PLAZO",
		Amount:  decimal.RequireFromString("-150.00"),
	}

	created, err := datasource.RecordMovement(context.Background(), mov)

	assert.NoError(t, err)
	assert.Contains(t, created.MovementID, "mov_")
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRecordMovementDuplicateIsConflict(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("INSERT INTO movements").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := datasource.RecordMovement(context.Background(), &model.FinancialMovement{
		Date:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Concept: "PAGO IBI 1ER PLAZO",
		Amount:  decimal.RequireFromString("-150.00"),
	})

	assert.Error(t, err)
	var apiErr apierror.APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, apierror.ErrConflict, apiErr.Code)
	}
}

func TestRecordMovementUnknownPropertyIsBadRequest(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("INSERT INTO movements").
		WillReturnError(&pq.Error{Code: "23503"})

	propertyID := "prop_missing"
	_, err := datasource.RecordMovement(context.Background(), &model.FinancialMovement{
		PropertyID: &propertyID,
		Date:       time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Concept:    "PAGO IBI 1ER PLAZO",
		Amount:     decimal.RequireFromString("-150.00"),
	})

	assert.Error(t, err)
	var apiErr apierror.APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, apierror.ErrBadRequest, apiErr.Code)
	}
}

func TestGetMovementByIDNotFound(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectQuery("SELECT (.+) FROM movements").
		WithArgs("mov_missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := datasource.GetMovementByID(context.Background(), "mov_missing")

	assert.Error(t, err)
	var apiErr apierror.APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
	}
}

func movementColumns() []string {
	return []string{"id", "movement_id", "property_id", "date", "concept", "amount",
		"bank_balance", "category", "subcategory", "tenant_name", "is_classified", "created_at"}
}

func TestGetMovementsAppliesFilter(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	propertyID := "prop_1"
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(movementColumns()).
		AddRow(2, "mov_2", "prop_1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "TRANSFERENCIA GARCIA", "700",
			nil, "rent", nil, "Garcia", true, time.Now()).
		AddRow(1, "mov_1", "prop_1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "PAGO IBI 1ER PLAZO", "-150.00",
			"3200.00", nil, nil, nil, false, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM movements WHERE 1=1 AND property_id = (.+) AND date >= (.+) AND date <= (.+) ORDER BY date DESC, id DESC").
		WithArgs(propertyID, from, to).
		WillReturnRows(rows)

	movements, err := datasource.GetMovements(context.Background(), model.MovementFilter{
		PropertyID: &propertyID,
		From:       &from,
		To:         &to,
	})

	assert.NoError(t, err)
	assert.Len(t, movements, 2)
	assert.Equal(t, "mov_2", movements[0].MovementID)
	assert.Equal(t, model.CategoryRent, movements[0].Category)
	assert.Nil(t, movements[0].BankBalance)
	assert.False(t, movements[1].IsClassified)
	if assert.NotNil(t, movements[1].BankBalance) {
		assert.True(t, movements[1].BankBalance.Equal(decimal.RequireFromString("3200.00")))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestExistingMovementKeys(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	rows := sqlmock.NewRows([]string{"date", "concept", "amount"}).
		AddRow(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "PAGO IBI 1ER PLAZO", "-150.00").
		AddRow(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), "RECIBO IBERDROLA", "-64.20")

	mock.ExpectQuery("SELECT date, concept, amount FROM movements").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(rows)

	keys, err := datasource.ExistingMovementKeys(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.Contains(t, keys, "2024-01-10|PAGO IBI 1ER PLAZO|-150.00")
	assert.Contains(t, keys, "2024-01-11|RECIBO IBERDROLA|-64.20")
}

func TestUpdateMovementClassificationNotFound(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("UPDATE movements").
		WithArgs("mov_missing", "rent", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := datasource.UpdateMovementClassification(context.Background(), "mov_missing", model.CategoryRent, "", "")

	assert.Error(t, err)
	var apiErr apierror.APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
	}
}

func TestDeleteAllMovements(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	mock.ExpectExec("DELETE FROM movements").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 42))

	deleted, err := datasource.DeleteAllMovements(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), deleted)
}

func TestDeleteMovementsByDateRange(t *testing.T) {
	datasource, mock := newTestDatasource(t)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM movements").
		WithArgs(start, end, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := datasource.DeleteMovementsByDateRange(context.Background(), start, end, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), deleted)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
