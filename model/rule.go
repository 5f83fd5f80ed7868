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
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ClassificationRule maps a keyword to a category. The keyword is matched
// case-insensitively as a substring of a movement's concept. Rules are
// evaluated in creation order and the first match wins; there is no scoring
// or longest-match preference.
type ClassificationRule struct {
	ID          int64     `json:"-"`
	RuleID      string    `json:"rule_id"`
	PropertyID  *string   `json:"property_id,omitempty"`
	Keyword     string    `json:"keyword"`
	Category    Category  `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	TenantName  string    `json:"tenant_name,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate rejects rules that could never match sanely. An empty keyword in
// particular is rejected at creation time: a naive substring check would make
// it match every concept.
func (r *ClassificationRule) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Keyword, validation.Required, validation.By(func(value interface{}) error {
			keyword, ok := value.(string)
			if !ok || strings.TrimSpace(keyword) == "" {
				return errors.New("keyword must not be empty or whitespace")
			}
			return nil
		})),
		validation.Field(&r.Category, validation.Required, validation.By(func(value interface{}) error {
			category, ok := value.(Category)
			if !ok || !category.Valid() {
				return errors.New("category must be one of rent, mortgage, expense")
			}
			return nil
		})),
	)
}

// AppliesTo reports whether the rule is a candidate for a movement in the
// given property scope. A rule without a property applies everywhere; a
// scoped rule only applies to movements of that exact property.
func (r *ClassificationRule) AppliesTo(propertyID *string) bool {
	if !r.IsActive {
		return false
	}
	if r.PropertyID == nil {
		return true
	}
	return propertyID != nil && *r.PropertyID == *propertyID
}

// MatchResult is the outcome of classifying one concept against a rule set.
// When no rule matches, Category falls back to expense for display purposes
// but Matched stays false and the movement remains unclassified.
type MatchResult struct {
	Concept        string   `json:"concept"`
	Matched        bool     `json:"matched"`
	Category       Category `json:"category"`
	Subcategory    string   `json:"subcategory,omitempty"`
	TenantName     string   `json:"tenant_name,omitempty"`
	MatchedKeyword string   `json:"matched_keyword,omitempty"`
	RuleID         string   `json:"rule_id,omitempty"`
}

// RuleSuggestion proposes the closest existing rule keyword for an
// unclassified concept, with a 0..1 similarity score.
type RuleSuggestion struct {
	MovementID string  `json:"movement_id"`
	Concept    string  `json:"concept"`
	Keyword    string  `json:"keyword"`
	RuleID     string  `json:"rule_id"`
	Similarity float64 `json:"similarity"`
}
