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
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/wacul/ptr"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"rent", CategoryRent},
		{"Renta", CategoryRent},
		{"mortgage", CategoryMortgage},
		{"Hipoteca", CategoryMortgage},
		{"expense", CategoryExpense},
		{"Gasto", CategoryExpense},
	}
	for _, c := range cases {
		got, err := ParseCategory(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
	}

	_, err := ParseCategory("groceries")
	assert.Error(t, err)
}

func TestCategoryDisplayLabel(t *testing.T) {
	assert.Equal(t, "Renta", CategoryRent.DisplayLabel())
	assert.Equal(t, "Hipoteca", CategoryMortgage.DisplayLabel())
	assert.Equal(t, "Gasto", CategoryExpense.DisplayLabel())
}

func TestClassificationRuleValidate(t *testing.T) {
	rule := ClassificationRule{Keyword: "IBI", Category: CategoryExpense}
	assert.NoError(t, rule.Validate())

	rule = ClassificationRule{Keyword: "   ", Category: CategoryExpense}
	assert.Error(t, rule.Validate(), "whitespace-only keyword must be rejected")

	rule = ClassificationRule{Keyword: "IBI", Category: Category("taxes")}
	assert.Error(t, rule.Validate())
}

func TestRuleAppliesTo(t *testing.T) {
	global := ClassificationRule{Keyword: "IBI", Category: CategoryExpense, IsActive: true}
	scoped := ClassificationRule{Keyword: "IBI", Category: CategoryExpense, IsActive: true, PropertyID: ptr.String("prop_5")}
	inactive := ClassificationRule{Keyword: "IBI", Category: CategoryExpense, IsActive: false}

	assert.True(t, global.AppliesTo(nil))
	assert.True(t, global.AppliesTo(ptr.String("prop_7")))

	assert.True(t, scoped.AppliesTo(ptr.String("prop_5")))
	assert.False(t, scoped.AppliesTo(ptr.String("prop_7")))
	assert.False(t, scoped.AppliesTo(nil))

	assert.False(t, inactive.AppliesTo(nil))
}

func TestDedupKeyStable(t *testing.T) {
	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	a := FinancialMovement{Date: date, Concept: "PAGO IBI 1ER PLAZO", Amount: decimal.RequireFromString("-150")}
	b := FinancialMovement{Date: date, Concept: "PAGO IBI 1ER PLAZO", Amount: decimal.RequireFromString("-150.00")}

	// -150 and -150.00 are the same money; the key must agree.
	assert.Equal(t, a.DedupKey(), b.DedupKey())
	assert.Equal(t, "2024-01-10|PAGO IBI 1ER PLAZO|-150.00", a.DedupKey())
}
