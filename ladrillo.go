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
	"embed"

	"github.com/ladrillo-finance/ladrillo/database"
)

// Ladrillo represents the main struct for the Ladrillo application.
type Ladrillo struct {
	datasource database.IDataSource
}

//go:embed sql/*.sql
var SQLFiles embed.FS

// NewLadrillo initializes a new instance of Ladrillo with the provided database datasource.
func NewLadrillo(db database.IDataSource) (*Ladrillo, error) {
	newLadrillo := &Ladrillo{datasource: db}
	return newLadrillo, nil
}
