/*
Copyright 2024 Ladrillo Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ladrillo

import (
	"context"
	"strings"
	"time"

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"
)

// CreateMovement stores a manually entered movement. The database dedup
// constraint still applies, so an exact duplicate of a stored movement in the
// same scope is rejected as a conflict.
func (l *Ladrillo) CreateMovement(ctx context.Context, mov model.FinancialMovement) (*model.FinancialMovement, error) {
	if strings.TrimSpace(mov.Concept) == "" {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "concept is required", nil)
	}
	if mov.Date.IsZero() {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "date is required", nil)
	}
	if mov.Category != "" && !mov.Category.Valid() {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "category must be one of rent, mortgage, expense", nil)
	}
	// A manual entry that names a category counts as classified.
	mov.IsClassified = mov.Category != ""

	return l.datasource.RecordMovement(ctx, &mov)
}

// GetMovement retrieves a movement by its ID.
func (l *Ladrillo) GetMovement(ctx context.Context, id string) (*model.FinancialMovement, error) {
	return l.datasource.GetMovementByID(ctx, id)
}

// GetMovements returns movements matching the filter. Scope is explicit per
// call; there is no hidden cached scope between queries.
func (l *Ladrillo) GetMovements(ctx context.Context, filter model.MovementFilter) ([]model.FinancialMovement, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "category must be one of rent, mortgage, expense", nil)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "start date must not be after end date", nil)
	}
	return l.datasource.GetMovements(ctx, filter)
}

// ClassifyMovement manually sets a movement's classification and marks it
// classified.
func (l *Ladrillo) ClassifyMovement(ctx context.Context, id string, category model.Category, subcategory, tenantName string) error {
	if !category.Valid() {
		return apierror.NewAPIError(apierror.ErrInvalidInput, "category must be one of rent, mortgage, expense", nil)
	}
	return l.datasource.UpdateMovementClassification(ctx, id, category, subcategory, tenantName)
}

// AssignMovementProperty attaches an unassigned movement to a property. The
// target property must exist; moving a movement into a scope where an
// identical (date, concept, amount) tuple already lives is a conflict.
func (l *Ladrillo) AssignMovementProperty(ctx context.Context, id string, propertyID string) error {
	if _, err := l.datasource.GetPropertyByID(ctx, propertyID); err != nil {
		return err
	}
	return l.datasource.AssignMovementProperty(ctx, id, propertyID)
}

// DeleteAllMovements removes every movement in the scope (all movements when
// propertyID is nil) and returns the count removed. Irreversible; the caller
// owns user confirmation.
func (l *Ladrillo) DeleteAllMovements(ctx context.Context, propertyID *string) (int64, error) {
	return l.datasource.DeleteAllMovements(ctx, propertyID)
}

// DeleteMovementsByDateRange removes movements dated within [start, end]
// inclusive, optionally restricted to one property, and returns the count
// removed. A start after end is a validation error, not a silent no-op.
func (l *Ladrillo) DeleteMovementsByDateRange(ctx context.Context, start, end time.Time, propertyID *string) (int64, error) {
	if start.After(end) {
		return 0, apierror.NewAPIError(apierror.ErrInvalidInput, "start date must not be after end date", nil)
	}
	return l.datasource.DeleteMovementsByDateRange(ctx, start, end, propertyID)
}
