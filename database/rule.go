package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"
	"github.com/lib/pq"
)

func (d Datasource) CreateRule(ctx context.Context, rule model.ClassificationRule) (model.ClassificationRule, error) {
	rule.RuleID = model.GenerateUUIDWithSuffix("rule")
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = rule.CreatedAt

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO classification_rules (rule_id, property_id, keyword, category, subcategory, tenant_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rule.RuleID, nullString(rule.PropertyID), rule.Keyword, string(rule.Category),
		nullEmpty(rule.Subcategory), nullEmpty(rule.TenantName), rule.IsActive, rule.CreatedAt, rule.UpdatedAt)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "foreign_key_violation":
				return model.ClassificationRule{}, apierror.NewAPIError(apierror.ErrBadRequest, "Referenced property does not exist", err)
			default:
				return model.ClassificationRule{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.ClassificationRule{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create classification rule", err)
	}

	return rule, nil
}

func (d Datasource) GetRuleByID(ctx context.Context, id string) (*model.ClassificationRule, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT id, rule_id, property_id, keyword, category, subcategory, tenant_name, is_active, created_at, updated_at
		FROM classification_rules
		WHERE rule_id = $1
	`, id)

	rule, err := scanRule(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Classification rule not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve classification rule", err)
	}
	return rule, nil
}

// GetRules returns every rule in creation order, oldest first. Rule order is
// the tie-break for first-match-wins classification, so the ordering here is
// part of the matching contract.
func (d Datasource) GetRules(ctx context.Context) ([]model.ClassificationRule, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, rule_id, property_id, keyword, category, subcategory, tenant_name, is_active, created_at, updated_at
		FROM classification_rules
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve classification rules", err)
	}
	defer rows.Close()

	rules := []model.ClassificationRule{}
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan classification rule", err)
		}
		rules = append(rules, *rule)
	}
	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over rules", err)
	}

	return rules, nil
}

func (d Datasource) UpdateRule(ctx context.Context, rule *model.ClassificationRule) error {
	rule.UpdatedAt = time.Now()

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE classification_rules
		SET keyword = $2, category = $3, subcategory = $4, tenant_name = $5, is_active = $6, property_id = $7, updated_at = $8
		WHERE rule_id = $1
	`, rule.RuleID, rule.Keyword, string(rule.Category), nullEmpty(rule.Subcategory),
		nullEmpty(rule.TenantName), rule.IsActive, nullString(rule.PropertyID), rule.UpdatedAt)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update classification rule", err)
	}
	return requireAffected(result, "Classification rule not found")
}

func (d Datasource) DeleteRule(ctx context.Context, id string) error {
	result, err := d.Conn.ExecContext(ctx, `
		DELETE FROM classification_rules
		WHERE rule_id = $1
	`, id)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete classification rule", err)
	}
	return requireAffected(result, "Classification rule not found")
}

func scanRule(row rowScanner) (*model.ClassificationRule, error) {
	rule := model.ClassificationRule{}
	var propertyID, subcategory, tenantName sql.NullString
	var category string

	err := row.Scan(&rule.ID, &rule.RuleID, &propertyID, &rule.Keyword, &category,
		&subcategory, &tenantName, &rule.IsActive, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if propertyID.Valid {
		rule.PropertyID = &propertyID.String
	}
	rule.Category = model.Category(category)
	rule.Subcategory = subcategory.String
	rule.TenantName = tenantName.String

	return &rule, nil
}
