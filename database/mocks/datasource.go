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
package mocks

import (
	"context"
	"time"

	"github.com/ladrillo-finance/ladrillo/model"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of the IDataSource interface
type MockDataSource struct {
	mock.Mock
}

// Property methods

func (m *MockDataSource) CreateProperty(ctx context.Context, prop model.Property) (model.Property, error) {
	args := m.Called(ctx, prop)
	return args.Get(0).(model.Property), args.Error(1)
}

func (m *MockDataSource) GetPropertyByID(ctx context.Context, id string) (*model.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Property), args.Error(1)
}

func (m *MockDataSource) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Property), args.Error(1)
}

func (m *MockDataSource) UpdateProperty(ctx context.Context, prop *model.Property) error {
	args := m.Called(ctx, prop)
	return args.Error(0)
}

func (m *MockDataSource) DeleteProperty(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Movement methods

func (m *MockDataSource) RecordMovement(ctx context.Context, mov *model.FinancialMovement) (*model.FinancialMovement, error) {
	args := m.Called(ctx, mov)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialMovement), args.Error(1)
}

func (m *MockDataSource) GetMovementByID(ctx context.Context, id string) (*model.FinancialMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FinancialMovement), args.Error(1)
}

func (m *MockDataSource) GetMovements(ctx context.Context, filter model.MovementFilter) ([]model.FinancialMovement, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.FinancialMovement), args.Error(1)
}

func (m *MockDataSource) GetUnclassifiedMovements(ctx context.Context, propertyID *string) ([]model.FinancialMovement, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]model.FinancialMovement), args.Error(1)
}

func (m *MockDataSource) ExistingMovementKeys(ctx context.Context, propertyID *string) (map[string]struct{}, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}

func (m *MockDataSource) UpdateMovementClassification(ctx context.Context, id string, category model.Category, subcategory, tenantName string) error {
	args := m.Called(ctx, id, category, subcategory, tenantName)
	return args.Error(0)
}

func (m *MockDataSource) AssignMovementProperty(ctx context.Context, id string, propertyID string) error {
	args := m.Called(ctx, id, propertyID)
	return args.Error(0)
}

func (m *MockDataSource) DeleteAllMovements(ctx context.Context, propertyID *string) (int64, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDataSource) DeleteMovementsByDateRange(ctx context.Context, start, end time.Time, propertyID *string) (int64, error) {
	args := m.Called(ctx, start, end, propertyID)
	return args.Get(0).(int64), args.Error(1)
}

// Rule methods

func (m *MockDataSource) CreateRule(ctx context.Context, rule model.ClassificationRule) (model.ClassificationRule, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(model.ClassificationRule), args.Error(1)
}

func (m *MockDataSource) GetRuleByID(ctx context.Context, id string) (*model.ClassificationRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClassificationRule), args.Error(1)
}

func (m *MockDataSource) GetRules(ctx context.Context) ([]model.ClassificationRule, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.ClassificationRule), args.Error(1)
}

func (m *MockDataSource) UpdateRule(ctx context.Context, rule *model.ClassificationRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockDataSource) DeleteRule(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
