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
	"time"

	"github.com/shopspring/decimal"
)

// Property is a real-estate asset. Movements and classification rules are
// optionally scoped to a property; a movement with no property belongs to the
// global/unassigned pool.
type Property struct {
	ID            int64                  `json:"-"`
	PropertyID    string                 `json:"property_id"`
	Name          string                 `json:"name"`
	Address       string                 `json:"address"`
	PurchasePrice decimal.Decimal        `json:"purchase_price"`
	TenantName    string                 `json:"tenant_name,omitempty"`
	MonthlyRent   decimal.Decimal        `json:"monthly_rent"`
	CreatedAt     time.Time              `json:"created_at"`
	MetaData      map[string]interface{} `json:"meta_data,omitempty"`
}
