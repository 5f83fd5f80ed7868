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

package database

import (
	"context"
	"time"

	"github.com/ladrillo-finance/ladrillo/model"
)

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	property // Property-related operations
	movement // Financial-movement operations
	rule     // Classification-rule operations
}

// property defines methods for handling properties.
type property interface {
	CreateProperty(ctx context.Context, prop model.Property) (model.Property, error)
	GetPropertyByID(ctx context.Context, id string) (*model.Property, error)
	GetAllProperties(ctx context.Context) ([]model.Property, error)
	UpdateProperty(ctx context.Context, prop *model.Property) error
	DeleteProperty(ctx context.Context, id string) error
}

// movement defines methods for handling financial movements.
type movement interface {
	RecordMovement(ctx context.Context, mov *model.FinancialMovement) (*model.FinancialMovement, error)
	GetMovementByID(ctx context.Context, id string) (*model.FinancialMovement, error)
	GetMovements(ctx context.Context, filter model.MovementFilter) ([]model.FinancialMovement, error)
	GetUnclassifiedMovements(ctx context.Context, propertyID *string) ([]model.FinancialMovement, error)
	ExistingMovementKeys(ctx context.Context, propertyID *string) (map[string]struct{}, error) // (date, concept, amount) keys already stored for the scope
	UpdateMovementClassification(ctx context.Context, id string, category model.Category, subcategory, tenantName string) error
	AssignMovementProperty(ctx context.Context, id string, propertyID string) error
	DeleteAllMovements(ctx context.Context, propertyID *string) (int64, error)
	DeleteMovementsByDateRange(ctx context.Context, start, end time.Time, propertyID *string) (int64, error)
}

// rule defines methods for handling classification rules.
type rule interface {
	CreateRule(ctx context.Context, rule model.ClassificationRule) (model.ClassificationRule, error)
	GetRuleByID(ctx context.Context, id string) (*model.ClassificationRule, error)
	GetRules(ctx context.Context) ([]model.ClassificationRule, error) // creation order, oldest first
	UpdateRule(ctx context.Context, rule *model.ClassificationRule) error
	DeleteRule(ctx context.Context, id string) error
}
