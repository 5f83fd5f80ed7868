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
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	"github.com/ladrillo-finance/ladrillo/model"
)

// CreateMovement is a manual movement entry. The date travels as a string in
// the canonical YYYY-MM-DD layout; the category, when present, may be either
// the internal identifier or the localized label.
type CreateMovement struct {
	PropertyID  *string          `json:"property_id"`
	Date        string           `json:"date"`
	Concept     string           `json:"concept"`
	Amount      decimal.Decimal  `json:"amount"`
	BankBalance *decimal.Decimal `json:"bank_balance"`
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory"`
	TenantName  string           `json:"tenant_name"`
}

func validateDateFormat(value string) error {
	_, err := time.Parse(model.DateLayout, value)
	if err != nil {
		return errors.New("please format the date as 'YYYY-MM-DD' (e.g., 2024-03-15)")
	}
	return nil
}

func (m *CreateMovement) ValidateCreateMovement() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Concept, validation.Required),
		validation.Field(&m.Date, validation.Required, validation.By(func(value interface{}) error {
			return validateDateFormat(value.(string))
		})),
		validation.Field(&m.Category, validation.By(func(value interface{}) error {
			s := value.(string)
			if s == "" {
				return nil
			}
			_, err := model.ParseCategory(s)
			return err
		})),
	)
}

func (m *CreateMovement) ToMovement() model.FinancialMovement {
	date, _ := time.Parse(model.DateLayout, m.Date)
	mov := model.FinancialMovement{
		PropertyID:  m.PropertyID,
		Date:        date,
		Concept:     m.Concept,
		Amount:      m.Amount,
		BankBalance: m.BankBalance,
		Subcategory: m.Subcategory,
		TenantName:  m.TenantName,
	}
	if m.Category != "" {
		category, _ := model.ParseCategory(m.Category)
		mov.Category = category
	}
	return mov
}

// ClassifyMovement manually assigns a category to a movement.
type ClassifyMovement struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	TenantName  string `json:"tenant_name"`
}

func (c *ClassifyMovement) ValidateClassifyMovement() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Category, validation.Required, validation.By(func(value interface{}) error {
			_, err := model.ParseCategory(value.(string))
			return err
		})),
	)
}

// AssignProperty moves an unassigned movement into a property's scope.
type AssignProperty struct {
	PropertyID string `json:"property_id"`
}

func (a *AssignProperty) ValidateAssignProperty() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.PropertyID, validation.Required),
	)
}

// ImportRows is a bulk import of already-parsed statement rows.
type ImportRows struct {
	PropertyID *string        `json:"property_id"`
	Rows       []model.RawRow `json:"rows"`
}

func (i *ImportRows) ValidateImportRows() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Rows, validation.Required),
	)
}
