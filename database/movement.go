package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

// RecordMovement inserts a new financial movement. The movements_dedup_key
// unique index is the final authority on duplicates; a violation surfaces as
// a conflict so concurrent imports of overlapping data cannot both create the
// same (scope, date, concept, amount) tuple.
func (d Datasource) RecordMovement(ctx context.Context, mov *model.FinancialMovement) (*model.FinancialMovement, error) {
	ctx, span := otel.Tracer("Movement").Start(ctx, "Saving movement to db")
	defer span.End()

	mov.MovementID = model.GenerateUUIDWithSuffix("mov")
	mov.CreatedAt = time.Now()

	var bankBalance decimal.NullDecimal
	if mov.BankBalance != nil {
		bankBalance = decimal.NullDecimal{Decimal: *mov.BankBalance, Valid: true}
	}

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO movements (movement_id, property_id, date, concept, amount, bank_balance, category, subcategory, tenant_name, is_classified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, mov.MovementID, nullString(mov.PropertyID), mov.Date, mov.Concept, mov.Amount, bankBalance,
		nullCategory(mov.Category), nullEmpty(mov.Subcategory), nullEmpty(mov.TenantName), mov.IsClassified, mov.CreatedAt)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return nil, apierror.NewAPIError(apierror.ErrConflict, "Movement with same date, concept and amount already exists in scope", err)
			case "foreign_key_violation":
				return nil, apierror.NewAPIError(apierror.ErrBadRequest, "Referenced property does not exist", err)
			default:
				return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create movement", err)
	}

	return mov, nil
}

func (d Datasource) GetMovementByID(ctx context.Context, id string) (*model.FinancialMovement, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, movement_id, property_id, date, concept, amount, bank_balance, category, subcategory, tenant_name, is_classified, created_at
		FROM movements
		WHERE movement_id = $1
	`, id)

	mov, err := scanMovement(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Movement not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve movement", err)
	}
	return mov, nil
}

// GetMovements returns the movements matching the filter, newest date first.
// The filter is explicit per call; nothing is cached between queries.
func (d Datasource) GetMovements(ctx context.Context, filter model.MovementFilter) ([]model.FinancialMovement, error) {
	ctx, span := otel.Tracer("Movement").Start(ctx, "Fetching movements from db")
	defer span.End()

	query := `
		SELECT id, movement_id, property_id, date, concept, amount, bank_balance, category, subcategory, tenant_name, is_classified, created_at
		FROM movements
		WHERE 1=1`
	args := []interface{}{}

	if filter.PropertyID != nil {
		args = append(args, *filter.PropertyID)
		query += fmt.Sprintf(" AND property_id = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Classified != nil {
		args = append(args, *filter.Classified)
		query += fmt.Sprintf(" AND is_classified = $%d", len(args))
	}
	query += " ORDER BY date DESC, id DESC"

	rows, err := d.Conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve movements", err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

func (d Datasource) GetUnclassifiedMovements(ctx context.Context, propertyID *string) ([]model.FinancialMovement, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, movement_id, property_id, date, concept, amount, bank_balance, category, subcategory, tenant_name, is_classified, created_at
		FROM movements
		WHERE is_classified = FALSE AND COALESCE(property_id, '') = COALESCE($1, '')
		ORDER BY date, id
	`, nullString(propertyID))
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve unclassified movements", err)
	}
	defer rows.Close()

	return collectMovements(rows)
}

// ExistingMovementKeys fetches every (date, concept, amount) dedup key stored
// for the scope in one query, so a bulk import checks duplicates in memory
// instead of issuing one lookup per row.
func (d Datasource) ExistingMovementKeys(ctx context.Context, propertyID *string) (map[string]struct{}, error) {
	ctx, span := otel.Tracer("Movement").Start(ctx, "Fetching movement dedup keys")
	defer span.End()

	rows, err := d.Conn.QueryContext(ctx, `
		SELECT date, concept, amount
		FROM movements
		WHERE COALESCE(property_id, '') = COALESCE($1, '')
	`, nullString(propertyID))
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve movement keys", err)
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var date time.Time
		var concept string
		var amount decimal.Decimal
		if err := rows.Scan(&date, &concept, &amount); err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan movement key", err)
		}
		keys[model.MovementKey(date, concept, amount)] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over movement keys", err)
	}

	return keys, nil
}

func (d Datasource) UpdateMovementClassification(ctx context.Context, id string, category model.Category, subcategory, tenantName string) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE movements
		SET category = $2, subcategory = $3, tenant_name = $4, is_classified = TRUE
		WHERE movement_id = $1
	`, id, string(category), nullEmpty(subcategory), nullEmpty(tenantName))
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update movement classification", err)
	}
	return requireAffected(result, "Movement not found")
}

func (d Datasource) AssignMovementProperty(ctx context.Context, id string, propertyID string) error {
	result, err := d.Conn.ExecContext(ctx, `
		UPDATE movements
		SET property_id = $2
		WHERE movement_id = $1
	`, id, propertyID)
	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return apierror.NewAPIError(apierror.ErrConflict, "An identical movement already exists for that property", err)
			case "foreign_key_violation":
				return apierror.NewAPIError(apierror.ErrBadRequest, "Referenced property does not exist", err)
			}
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to assign movement property", err)
	}
	return requireAffected(result, "Movement not found")
}

func (d Datasource) DeleteAllMovements(ctx context.Context, propertyID *string) (int64, error) {
	result, err := d.Conn.ExecContext(ctx, `
		DELETE FROM movements
		WHERE $1::TEXT IS NULL OR property_id = $1
	`, nullString(propertyID))
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete movements", err)
	}
	return result.RowsAffected()
}

// DeleteMovementsByDateRange removes movements dated within [start, end],
// both bounds inclusive.
func (d Datasource) DeleteMovementsByDateRange(ctx context.Context, start, end time.Time, propertyID *string) (int64, error) {
	result, err := d.Conn.ExecContext(ctx, `
		DELETE FROM movements
		WHERE date >= $1 AND date <= $2
		AND ($3::TEXT IS NULL OR property_id = $3)
	`, start, end, nullString(propertyID))
	if err != nil {
		return 0, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete movements by date range", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovement(row rowScanner) (*model.FinancialMovement, error) {
	mov := model.FinancialMovement{}
	var propertyID, category, subcategory, tenantName sql.NullString
	var bankBalance decimal.NullDecimal

	err := row.Scan(&mov.ID, &mov.MovementID, &propertyID, &mov.Date, &mov.Concept, &mov.Amount,
		&bankBalance, &category, &subcategory, &tenantName, &mov.IsClassified, &mov.CreatedAt)
	if err != nil {
		return nil, err
	}

	if propertyID.Valid {
		mov.PropertyID = &propertyID.String
	}
	if bankBalance.Valid {
		mov.BankBalance = &bankBalance.Decimal
	}
	if category.Valid {
		mov.Category = model.Category(category.String)
	}
	mov.Subcategory = subcategory.String
	mov.TenantName = tenantName.String

	return &mov, nil
}

func collectMovements(rows *sql.Rows) ([]model.FinancialMovement, error) {
	movements := []model.FinancialMovement{}
	for rows.Next() {
		mov, err := scanMovement(rows)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan movement data", err)
		}
		movements = append(movements, *mov)
	}
	if err := rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over movements", err)
	}
	return movements, nil
}

func requireAffected(result sql.Result, notFoundMsg string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get affected rows", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, notFoundMsg, nil)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullCategory(c model.Category) sql.NullString {
	if c == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(c), Valid: true}
}
