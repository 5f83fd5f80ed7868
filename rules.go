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
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"
)

// minSuggestionSimilarity is the similarity floor below which a keyword is not
// worth proposing for an unclassified concept.
const minSuggestionSimilarity = 0.55

// Classify matches a concept against the rule set for the given property
// scope and returns the classification the first matching rule assigns.
//
// Candidate rules are the active ones whose property scope is unset or equal
// to propertyID, evaluated in the order given (creation order as returned by
// the datasource). The first rule whose keyword occurs as a case-insensitive
// substring of the concept wins; there is no scoring or longest-match
// preference. A concept that is empty after trimming never matches.
//
// When nothing matches, the result carries the expense fallback category for
// display purposes but Matched stays false, so the movement remains
// unclassified. Classify is a pure function; persisting the outcome is the
// caller's job.
func Classify(concept string, rules []model.ClassificationRule, propertyID *string) model.MatchResult {
	result := model.MatchResult{
		Concept:  concept,
		Matched:  false,
		Category: model.CategoryExpense,
	}

	if strings.TrimSpace(concept) == "" {
		return result
	}

	conceptLower := strings.ToLower(concept)
	for _, rule := range rules {
		if !rule.AppliesTo(propertyID) {
			continue
		}
		keyword := strings.TrimSpace(rule.Keyword)
		if keyword == "" {
			// Rejected at creation time; skip defensively if one slipped in
			// through an old database.
			continue
		}
		if strings.Contains(conceptLower, strings.ToLower(keyword)) {
			result.Matched = true
			result.Category = rule.Category
			result.Subcategory = rule.Subcategory
			result.TenantName = rule.TenantName
			result.MatchedKeyword = rule.Keyword
			result.RuleID = rule.RuleID
			return result
		}
	}

	return result
}

// CreateRule validates and stores a new classification rule.
func (l *Ladrillo) CreateRule(ctx context.Context, rule model.ClassificationRule) (model.ClassificationRule, error) {
	if err := rule.Validate(); err != nil {
		return model.ClassificationRule{}, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), err)
	}
	return l.datasource.CreateRule(ctx, rule)
}

// GetRule retrieves a classification rule by its ID.
func (l *Ladrillo) GetRule(ctx context.Context, id string) (*model.ClassificationRule, error) {
	return l.datasource.GetRuleByID(ctx, id)
}

// GetRules returns all rules in creation order, the same order Classify
// evaluates them in.
func (l *Ladrillo) GetRules(ctx context.Context) ([]model.ClassificationRule, error) {
	return l.datasource.GetRules(ctx)
}

// UpdateRule validates and persists changes to an existing rule. Changing a
// keyword updates the rule in place; it never creates a new one, so the
// rule's position in the matching order is preserved.
func (l *Ladrillo) UpdateRule(ctx context.Context, rule model.ClassificationRule) (*model.ClassificationRule, error) {
	if err := rule.Validate(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), err)
	}

	existing, err := l.datasource.GetRuleByID(ctx, rule.RuleID)
	if err != nil {
		return nil, err
	}

	existing.Keyword = rule.Keyword
	existing.Category = rule.Category
	existing.Subcategory = rule.Subcategory
	existing.TenantName = rule.TenantName
	existing.IsActive = rule.IsActive
	existing.PropertyID = rule.PropertyID

	if err := l.datasource.UpdateRule(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteRule removes a rule permanently.
func (l *Ladrillo) DeleteRule(ctx context.Context, id string) error {
	return l.datasource.DeleteRule(ctx, id)
}

// AutoClassify runs Classify over every unclassified movement in the scope
// and persists successful matches. Processing is best effort, one movement at
// a time: a persistence failure on one movement is logged and skipped, it
// never aborts the rest of the batch. Returns the number of movements newly
// classified.
func (l *Ladrillo) AutoClassify(ctx context.Context, propertyID *string) (int, error) {
	rules, err := l.datasource.GetRules(ctx)
	if err != nil {
		return 0, err
	}

	movements, err := l.datasource.GetUnclassifiedMovements(ctx, propertyID)
	if err != nil {
		return 0, err
	}

	classified := 0
	for _, mov := range movements {
		result := Classify(mov.Concept, rules, mov.PropertyID)
		if !result.Matched {
			continue
		}
		err := l.datasource.UpdateMovementClassification(ctx, mov.MovementID, result.Category, result.Subcategory, result.TenantName)
		if err != nil {
			logrus.Errorf("auto-classify: failed to update movement %s: %v", mov.MovementID, err)
			continue
		}
		classified++
	}

	return classified, nil
}

// TestRules classifies a list of raw concept strings against the current rule
// set without touching any movement. This backs the UI's "test rules"
// feature: for each concept it reports whether it would match and what the
// match would assign.
func (l *Ladrillo) TestRules(ctx context.Context, propertyID *string, concepts []string) ([]model.MatchResult, error) {
	rules, err := l.datasource.GetRules(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.MatchResult, 0, len(concepts))
	for _, concept := range concepts {
		results = append(results, Classify(concept, rules, propertyID))
	}
	return results, nil
}

// SuggestRules proposes the closest existing rule keyword for each
// unclassified movement in the scope, using normalized Levenshtein
// similarity. A keyword that already matches as a substring is not a
// suggestion; AutoClassify would have picked it up.
func (l *Ladrillo) SuggestRules(ctx context.Context, propertyID *string) ([]model.RuleSuggestion, error) {
	rules, err := l.datasource.GetRules(ctx)
	if err != nil {
		return nil, err
	}

	movements, err := l.datasource.GetUnclassifiedMovements(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	suggestions := []model.RuleSuggestion{}
	for _, mov := range movements {
		if Classify(mov.Concept, rules, mov.PropertyID).Matched {
			// Already coverable by a rule; running auto-classify is the fix,
			// not a new keyword.
			continue
		}
		best, ok := closestKeyword(mov.Concept, rules, mov.PropertyID)
		if !ok {
			continue
		}
		best.MovementID = mov.MovementID
		best.Concept = mov.Concept
		suggestions = append(suggestions, best)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Similarity > suggestions[j].Similarity
	})
	return suggestions, nil
}

// closestKeyword finds the candidate rule keyword most similar to any word of
// the concept. Similarity is 1 - distance/longerLength over lowercased
// strings, taken word by word so a close brand name inside a long statement
// line still scores high.
func closestKeyword(concept string, rules []model.ClassificationRule, propertyID *string) (model.RuleSuggestion, bool) {
	best := model.RuleSuggestion{}
	words := strings.Fields(strings.ToLower(concept))
	if len(words) == 0 {
		return best, false
	}

	for _, rule := range rules {
		if !rule.AppliesTo(propertyID) {
			continue
		}
		keyword := strings.ToLower(strings.TrimSpace(rule.Keyword))
		if keyword == "" {
			continue
		}
		for _, word := range words {
			distance := levenshtein.DistanceForStrings([]rune(word), []rune(keyword), levenshtein.DefaultOptions)
			longer := len([]rune(word))
			if kl := len([]rune(keyword)); kl > longer {
				longer = kl
			}
			if longer == 0 {
				continue
			}
			similarity := 1 - float64(distance)/float64(longer)
			if similarity >= minSuggestionSimilarity && similarity > best.Similarity {
				best.Keyword = rule.Keyword
				best.RuleID = rule.RuleID
				best.Similarity = similarity
			}
		}
	}

	return best, best.Keyword != ""
}
