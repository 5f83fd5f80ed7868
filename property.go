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

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"
)

// CreateProperty stores a new property.
func (l *Ladrillo) CreateProperty(ctx context.Context, prop model.Property) (model.Property, error) {
	if strings.TrimSpace(prop.Name) == "" {
		return model.Property{}, apierror.NewAPIError(apierror.ErrInvalidInput, "name is required", nil)
	}
	return l.datasource.CreateProperty(ctx, prop)
}

// GetProperty retrieves a property by its ID.
func (l *Ladrillo) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	return l.datasource.GetPropertyByID(ctx, id)
}

// GetAllProperties returns every property, oldest first.
func (l *Ladrillo) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	return l.datasource.GetAllProperties(ctx)
}

// UpdateProperty persists changes to an existing property.
func (l *Ladrillo) UpdateProperty(ctx context.Context, prop model.Property) (*model.Property, error) {
	if strings.TrimSpace(prop.Name) == "" {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, "name is required", nil)
	}

	existing, err := l.datasource.GetPropertyByID(ctx, prop.PropertyID)
	if err != nil {
		return nil, err
	}

	existing.Name = prop.Name
	existing.Address = prop.Address
	existing.PurchasePrice = prop.PurchasePrice
	existing.TenantName = prop.TenantName
	existing.MonthlyRent = prop.MonthlyRent
	existing.MetaData = prop.MetaData

	if err := l.datasource.UpdateProperty(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteProperty removes a property. Properties that still have movements or
// rules attached are protected by foreign keys and surface as a conflict.
func (l *Ladrillo) DeleteProperty(ctx context.Context, id string) error {
	return l.datasource.DeleteProperty(ctx, id)
}
