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
package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/ladrillo-finance/ladrillo/model"
)

type CreateProperty struct {
	Name          string                 `json:"name"`
	Address       string                 `json:"address"`
	PurchasePrice decimal.Decimal        `json:"purchase_price"`
	TenantName    string                 `json:"tenant_name"`
	MonthlyRent   decimal.Decimal        `json:"monthly_rent"`
	MetaData      map[string]interface{} `json:"meta_data"`
}

func (p *CreateProperty) ValidateCreateProperty() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
	)
}

func (p *CreateProperty) ToProperty() model.Property {
	return model.Property{
		Name:          p.Name,
		Address:       p.Address,
		PurchasePrice: p.PurchasePrice,
		TenantName:    p.TenantName,
		MonthlyRent:   p.MonthlyRent,
		MetaData:      p.MetaData,
	}
}
