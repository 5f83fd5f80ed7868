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
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical wire and storage format for movement dates.
const DateLayout = "2006-01-02"

// FinancialMovement is a single bank transaction, optionally tied to a
// property. Amount is signed: positive for income, negative for expense.
type FinancialMovement struct {
	ID          int64            `json:"-"`
	MovementID  string           `json:"movement_id"`
	PropertyID  *string          `json:"property_id,omitempty"`
	Date        time.Time        `json:"date"`
	Concept     string           `json:"concept"`
	Amount      decimal.Decimal  `json:"amount"`
	BankBalance *decimal.Decimal `json:"bank_balance,omitempty"`

	Category     Category `json:"category,omitempty"`
	Subcategory  string   `json:"subcategory,omitempty"`
	TenantName   string   `json:"tenant_name,omitempty"`
	IsClassified bool     `json:"is_classified"`

	CreatedAt time.Time `json:"created_at"`
}

// DedupKey returns the identity a movement is deduplicated on within its
// scope: date, concept and amount. Amounts are fixed to two decimals so the
// key is stable across parse and database round trips.
func (m *FinancialMovement) DedupKey() string {
	return MovementKey(m.Date, m.Concept, m.Amount)
}

// MovementKey builds the (date, concept, amount) dedup key without a movement.
func MovementKey(date time.Time, concept string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s|%s|%s", date.Format(DateLayout), concept, amount.StringFixed(2))
}

// MovementFilter narrows a movement query. Every field is optional; the zero
// filter returns everything. Scope is always passed explicitly, there is no
// implicit or cached scope.
type MovementFilter struct {
	PropertyID *string
	From       *time.Time
	To         *time.Time
	Category   Category
	Classified *bool
}
