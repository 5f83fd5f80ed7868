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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wacul/ptr"

	"github.com/ladrillo-finance/ladrillo/config"
	"github.com/ladrillo-finance/ladrillo/database/mocks"
	"github.com/ladrillo-finance/ladrillo/model"
)

func newTestLadrillo(t *testing.T) (*Ladrillo, *mocks.MockDataSource) {
	t.Helper()
	config.MockConfig(&config.Configuration{})
	datasource := new(mocks.MockDataSource)
	l, err := NewLadrillo(datasource)
	if err != nil {
		t.Fatalf("Error creating Ladrillo instance: %s", err)
	}
	return l, datasource
}

func activeRule(id, keyword string, category model.Category) model.ClassificationRule {
	return model.ClassificationRule{
		RuleID:   id,
		Keyword:  keyword,
		Category: category,
		IsActive: true,
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// "I" is a substring of "PAGO IBI", so the broader rule listed first wins
	// even though "IBI" is the more specific keyword.
	rules := []model.ClassificationRule{
		activeRule("rule_1", "I", model.CategoryExpense),
		activeRule("rule_2", "IBI", model.CategoryExpense),
	}

	result := Classify("PAGO IBI 1ER PLAZO", rules, nil)

	assert.True(t, result.Matched)
	assert.Equal(t, "rule_1", result.RuleID)
	assert.Equal(t, "I", result.MatchedKeyword)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	rules := []model.ClassificationRule{
		activeRule("rule_1", "santander hipoteca", model.CategoryMortgage),
	}

	result := Classify("RECIBO SANTANDER HIPOTECA 0012", rules, nil)

	assert.True(t, result.Matched)
	assert.Equal(t, model.CategoryMortgage, result.Category)
}

func TestClassifyPropertyScope(t *testing.T) {
	global := activeRule("rule_global", "IBERDROLA", model.CategoryExpense)
	scoped := activeRule("rule_scoped", "TRANSFERENCIA GARCIA", model.CategoryRent)
	scoped.PropertyID = ptr.String("prop_1")
	rules := []model.ClassificationRule{scoped, global}

	// A scoped rule never fires outside its property.
	result := Classify("TRANSFERENCIA GARCIA MARZO", rules, nil)
	assert.False(t, result.Matched)

	result = Classify("TRANSFERENCIA GARCIA MARZO", rules, ptr.String("prop_2"))
	assert.False(t, result.Matched)

	result = Classify("TRANSFERENCIA GARCIA MARZO", rules, ptr.String("prop_1"))
	assert.True(t, result.Matched)
	assert.Equal(t, model.CategoryRent, result.Category)

	// Global rules apply in any scope.
	result = Classify("RECIBO IBERDROLA", rules, ptr.String("prop_2"))
	assert.True(t, result.Matched)
	assert.Equal(t, "rule_global", result.RuleID)
}

func TestClassifySkipsInactiveRules(t *testing.T) {
	inactive := activeRule("rule_1", "IBI", model.CategoryExpense)
	inactive.IsActive = false
	rules := []model.ClassificationRule{
		inactive,
		activeRule("rule_2", "IBI", model.CategoryExpense),
	}

	result := Classify("PAGO IBI", rules, nil)

	assert.True(t, result.Matched)
	assert.Equal(t, "rule_2", result.RuleID)
}

func TestClassifyEmptyConceptNeverMatches(t *testing.T) {
	rules := []model.ClassificationRule{
		activeRule("rule_1", "IBI", model.CategoryExpense),
	}

	for _, concept := range []string{"", "   ", "\t\n"} {
		result := Classify(concept, rules, nil)
		assert.False(t, result.Matched)
		assert.Equal(t, model.CategoryExpense, result.Category)
		assert.Empty(t, result.RuleID)
	}
}

func TestClassifyUnmatchedFallsBackToExpense(t *testing.T) {
	result := Classify("COMISION MANTENIMIENTO", nil, nil)

	assert.False(t, result.Matched)
	assert.Equal(t, model.CategoryExpense, result.Category)
	assert.Empty(t, result.MatchedKeyword)
}

func TestCreateRuleRejectsBlankKeyword(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	_, err := l.CreateRule(context.Background(), model.ClassificationRule{
		Keyword:  "   ",
		Category: model.CategoryRent,
		IsActive: true,
	})

	assert.Error(t, err)
	datasource.AssertNotCalled(t, "CreateRule")
}

func TestCreateRuleRejectsInvalidCategory(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	_, err := l.CreateRule(context.Background(), model.ClassificationRule{
		Keyword:  "IBI",
		Category: model.Category("income"),
		IsActive: true,
	})

	assert.Error(t, err)
	datasource.AssertNotCalled(t, "CreateRule")
}

func TestUpdateRulePreservesIdentity(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	existing := activeRule("rule_1", "IBI", model.CategoryExpense)
	datasource.On("GetRuleByID", mock.Anything, "rule_1").Return(&existing, nil)
	datasource.On("UpdateRule", mock.Anything, mock.Anything).Return(nil)

	updated, err := l.UpdateRule(context.Background(), model.ClassificationRule{
		RuleID:   "rule_1",
		Keyword:  "IBI AYTO",
		Category: model.CategoryExpense,
		IsActive: true,
	})

	assert.NoError(t, err)
	assert.Equal(t, "rule_1", updated.RuleID)
	assert.Equal(t, "IBI AYTO", updated.Keyword)
	datasource.AssertExpectations(t)
}

func TestAutoClassify(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	rules := []model.ClassificationRule{
		activeRule("rule_1", "IBERDROLA", model.CategoryExpense),
	}
	movements := []model.FinancialMovement{
		{MovementID: "mov_1", Concept: "RECIBO IBERDROLA SA"},
		{MovementID: "mov_2", Concept: "COMISION MANTENIMIENTO"},
	}

	datasource.On("GetRules", mock.Anything).Return(rules, nil)
	datasource.On("GetUnclassifiedMovements", mock.Anything, (*string)(nil)).Return(movements, nil)
	datasource.On("UpdateMovementClassification", mock.Anything, "mov_1", model.CategoryExpense, "", "").Return(nil)

	count, err := l.AutoClassify(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	datasource.AssertNotCalled(t, "UpdateMovementClassification", mock.Anything, "mov_2", mock.Anything, mock.Anything, mock.Anything)
	datasource.AssertExpectations(t)
}

func TestAutoClassifyContinuesOnUpdateFailure(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	rules := []model.ClassificationRule{
		activeRule("rule_1", "IBERDROLA", model.CategoryExpense),
	}
	movements := []model.FinancialMovement{
		{MovementID: "mov_1", Concept: "RECIBO IBERDROLA ENERO"},
		{MovementID: "mov_2", Concept: "RECIBO IBERDROLA FEBRERO"},
	}

	datasource.On("GetRules", mock.Anything).Return(rules, nil)
	datasource.On("GetUnclassifiedMovements", mock.Anything, (*string)(nil)).Return(movements, nil)
	datasource.On("UpdateMovementClassification", mock.Anything, "mov_1", model.CategoryExpense, "", "").Return(errors.New("write failed"))
	datasource.On("UpdateMovementClassification", mock.Anything, "mov_2", model.CategoryExpense, "", "").Return(nil)

	count, err := l.AutoClassify(context.Background(), nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	datasource.AssertExpectations(t)
}

func TestTestRules(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	rules := []model.ClassificationRule{
		activeRule("rule_1", "SANTANDER HIPOTECA", model.CategoryMortgage),
	}
	datasource.On("GetRules", mock.Anything).Return(rules, nil)

	results, err := l.TestRules(context.Background(), nil, []string{
		"RECIBO SANTANDER HIPOTECA 0012",
		"COMISION MANTENIMIENTO",
	})

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.True(t, results[0].Matched)
	assert.Equal(t, model.CategoryMortgage, results[0].Category)
	assert.False(t, results[1].Matched)
}

func TestSuggestRules(t *testing.T) {
	l, datasource := newTestLadrillo(t)

	rules := []model.ClassificationRule{
		activeRule("rule_1", "IBERDROLA", model.CategoryExpense),
	}
	movements := []model.FinancialMovement{
		// Typo in the concept: close to the keyword but not a substring match.
		{MovementID: "mov_1", Concept: "RECIBO IBERDRLA SA"},
		// Exact substring match; auto-classify covers it, no suggestion.
		{MovementID: "mov_2", Concept: "RECIBO IBERDROLA SA"},
		// Nothing close to any keyword.
		{MovementID: "mov_3", Concept: "COMISION MANTENIMIENTO"},
	}

	datasource.On("GetRules", mock.Anything).Return(rules, nil)
	datasource.On("GetUnclassifiedMovements", mock.Anything, (*string)(nil)).Return(movements, nil)

	suggestions, err := l.SuggestRules(context.Background(), nil)

	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.Equal(t, "mov_1", suggestions[0].MovementID)
	assert.Equal(t, "IBERDROLA", suggestions[0].Keyword)
	assert.GreaterOrEqual(t, suggestions[0].Similarity, minSuggestionSimilarity)
}
