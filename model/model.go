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

	"github.com/google/uuid"
)

// Category is the closed set of movement classifications. The internal values
// are stable storage identifiers; the Spanish labels shown in statements and
// in the UI are mapped at the API boundary only.
type Category string

const (
	CategoryRent     Category = "rent"
	CategoryMortgage Category = "mortgage"
	CategoryExpense  Category = "expense"
)

// Localized display labels for each category.
const (
	labelRent     = "Renta"
	labelMortgage = "Hipoteca"
	labelExpense  = "Gasto"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRent, CategoryMortgage, CategoryExpense:
		return true
	}
	return false
}

// DisplayLabel returns the localized label for the category.
func (c Category) DisplayLabel() string {
	switch c {
	case CategoryRent:
		return labelRent
	case CategoryMortgage:
		return labelMortgage
	case CategoryExpense:
		return labelExpense
	}
	return string(c)
}

// ParseCategory accepts either the internal identifier or the localized label
// and returns the canonical Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case string(CategoryRent), labelRent:
		return CategoryRent, nil
	case string(CategoryMortgage), labelMortgage:
		return CategoryMortgage, nil
	case string(CategoryExpense), labelExpense:
		return CategoryExpense, nil
	}
	return "", fmt.Errorf("unknown category '%s'", s)
}

// GenerateUUIDWithSuffix generates a new prefixed unique identifier,
// e.g. mov_9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d.
func GenerateUUIDWithSuffix(module string) string {
	return fmt.Sprintf("%s_%s", module, uuid.New().String())
}
