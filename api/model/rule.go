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

	"github.com/ladrillo-finance/ladrillo/model"
)

// CreateRule is a classification-rule create/update body. IsActive defaults
// to true when omitted.
type CreateRule struct {
	PropertyID  *string `json:"property_id"`
	Keyword     string  `json:"keyword"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	TenantName  string  `json:"tenant_name"`
	IsActive    *bool   `json:"is_active"`
}

func (r *CreateRule) ValidateCreateRule() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Keyword, validation.Required),
		validation.Field(&r.Category, validation.Required, validation.By(func(value interface{}) error {
			_, err := model.ParseCategory(value.(string))
			return err
		})),
	)
}

func (r *CreateRule) ToRule() model.ClassificationRule {
	category, _ := model.ParseCategory(r.Category)
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return model.ClassificationRule{
		PropertyID:  r.PropertyID,
		Keyword:     r.Keyword,
		Category:    category,
		Subcategory: r.Subcategory,
		TenantName:  r.TenantName,
		IsActive:    isActive,
	}
}

// TestRules asks which rule, if any, would classify each concept string.
type TestRules struct {
	PropertyID *string  `json:"property_id"`
	Concepts   []string `json:"concepts"`
}

func (t *TestRules) ValidateTestRules() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Concepts, validation.Required),
	)
}
