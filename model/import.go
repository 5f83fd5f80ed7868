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

// RawRow is one parsed bank-statement line before validation. All fields are
// strings exactly as the statement carried them; the import reconciler owns
// parsing and validation so a bad row becomes a reported error instead of a
// parser failure.
type RawRow struct {
	Date    string `json:"date"`
	Concept string `json:"concept"`
	Amount  string `json:"amount"`
	Balance string `json:"balance,omitempty"`
}

// RowError records why a single statement row was rejected. RowIndex is the
// zero-based position of the row in the submitted batch.
type RowError struct {
	RowIndex int    `json:"row_index"`
	Message  string `json:"message"`
}

// ImportReport accounts for every submitted row exactly once:
// CreatedCount + DuplicatesSkipped + len(Errors) == TotalRows.
type ImportReport struct {
	TotalRows          int        `json:"total_rows"`
	CreatedCount       int        `json:"created_count"`
	DuplicatesSkipped  int        `json:"duplicates_skipped"`
	Errors             []RowError `json:"errors"`
	CreatedMovementIDs []string   `json:"created_movement_ids"`
}
