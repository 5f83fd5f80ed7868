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
package api

import (
	"net/http"

	model2 "github.com/ladrillo-finance/ladrillo/api/model"
	"github.com/ladrillo-finance/ladrillo/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ImportMovements bulk-imports already-parsed statement rows. Row-level
// failures land in the report's errors list, not in the HTTP status.
func (a Api) ImportMovements(c *gin.Context) {
	var body model2.ImportRows
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := body.ValidateImportRows()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	report, err := a.ladrillo.ImportRows(c.Request.Context(), body.Rows, body.PropertyID)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ImportStatementFile accepts a multipart upload of a raw bank statement
// (CSV or JSON), parses it and runs the same reconciliation as
// ImportMovements.
func (a Api) ImportStatementFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.Errorf("failed to open uploaded statement %s: %v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read uploaded file"})
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logrus.Warnf("failed to close uploaded statement %s: %v", fileHeader.Filename, closeErr)
		}
	}()

	report, err := a.ladrillo.ImportStatement(c.Request.Context(), optionalQuery(c, "property_id"), file, fileHeader.Filename)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
