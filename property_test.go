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
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ladrillo-finance/ladrillo/model"
)

func TestCreateProperty(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	prop := model.Property{
		Name:          gofakeit.Street(),
		Address:       gofakeit.Address().Address,
		PurchasePrice: decimal.RequireFromString("185000"),
		TenantName:    gofakeit.Name(),
		MonthlyRent:   decimal.RequireFromString("700"),
		MetaData:      map[string]interface{}{"floor": "2B"},
	}
	stored := prop
	stored.PropertyID = "prop_" + gofakeit.UUID()

	datasource.On("CreateProperty", mock.Anything, prop).Return(stored, nil)

	result, err := l.CreateProperty(context.Background(), prop)

	assert.NoError(t, err)
	assert.Contains(t, result.PropertyID, "prop_")
	datasource.AssertExpectations(t)
}

func TestCreatePropertyRequiresName(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	_, err := l.CreateProperty(context.Background(), model.Property{Name: "  "})

	assert.Error(t, err)
	datasource.AssertNotCalled(t, "CreateProperty")
}

func TestUpdatePropertyMergesIntoExisting(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	existing := &model.Property{
		PropertyID:  "prop_1",
		Name:        "Piso Calle Mayor",
		MonthlyRent: decimal.RequireFromString("650"),
	}
	datasource.On("GetPropertyByID", mock.Anything, "prop_1").Return(existing, nil)
	datasource.On("UpdateProperty", mock.Anything, mock.Anything).Return(nil)

	updated, err := l.UpdateProperty(context.Background(), model.Property{
		PropertyID:  "prop_1",
		Name:        "Piso Calle Mayor 3",
		TenantName:  "Garcia",
		MonthlyRent: decimal.RequireFromString("700"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "prop_1", updated.PropertyID)
	assert.Equal(t, "Piso Calle Mayor 3", updated.Name)
	assert.Equal(t, "Garcia", updated.TenantName)
	assert.True(t, updated.MonthlyRent.Equal(decimal.RequireFromString("700")))
	datasource.AssertExpectations(t)
}

func TestGetAllProperties(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	props := []model.Property{
		{PropertyID: "prop_1", Name: "Piso Calle Mayor"},
		{PropertyID: "prop_2", Name: "Atico Gran Via"},
	}
	datasource.On("GetAllProperties", mock.Anything).Return(props, nil)

	result, err := l.GetAllProperties(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 2)
	datasource.AssertExpectations(t)
}
