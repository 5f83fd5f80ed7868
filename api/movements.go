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
	"strconv"
	"time"

	model2 "github.com/ladrillo-finance/ladrillo/api/model"
	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"

	"github.com/gin-gonic/gin"
)

func (a Api) CreateMovement(c *gin.Context) {
	var newMovement model2.CreateMovement
	if err := c.ShouldBindJSON(&newMovement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := newMovement.ValidateCreateMovement()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	resp, err := a.ladrillo.CreateMovement(c.Request.Context(), newMovement.ToMovement())
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (a Api) GetMovement(c *gin.Context) {
	id, passed := c.Params.Get("id")

	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	resp, err := a.ladrillo.GetMovement(c.Request.Context(), id)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetMovements lists movements narrowed by the optional query parameters
// property_id, from, to (both YYYY-MM-DD), category and classified.
func (a Api) GetMovements(c *gin.Context) {
	filter, err := movementFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := a.ladrillo.GetMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (a Api) ClassifyMovement(c *gin.Context) {
	id, passed := c.Params.Get("id")

	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	var body model2.ClassifyMovement
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := body.ValidateClassifyMovement()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	category, _ := model.ParseCategory(body.Category)
	err = a.ladrillo.ClassifyMovement(c.Request.Context(), id, category, body.Subcategory, body.TenantName)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movement classified"})
}

func (a Api) AssignMovementProperty(c *gin.Context) {
	id, passed := c.Params.Get("id")

	if !passed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required. pass id in the route /:id"})
		return
	}

	var body model2.AssignProperty
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err := body.ValidateAssignProperty()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	err = a.ladrillo.AssignMovementProperty(c.Request.Context(), id, body.PropertyID)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "movement assigned"})
}

func (a Api) DeleteAllMovements(c *gin.Context) {
	propertyID := optionalQuery(c, "property_id")

	deleted, err := a.ladrillo.DeleteAllMovements(c.Request.Context(), propertyID)
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
}

// DeleteMovementsByDateRange removes movements dated within the inclusive
// [start, end] window given as YYYY-MM-DD query parameters.
func (a Api) DeleteMovementsByDateRange(c *gin.Context) {
	start, err := time.Parse(model.DateLayout, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start is required and must be formatted as 'YYYY-MM-DD'"})
		return
	}
	end, err := time.Parse(model.DateLayout, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end is required and must be formatted as 'YYYY-MM-DD'"})
		return
	}

	deleted, err := a.ladrillo.DeleteMovementsByDateRange(c.Request.Context(), start, end, optionalQuery(c, "property_id"))
	if err != nil {
		c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted_count": deleted})
}

func movementFilterFromQuery(c *gin.Context) (model.MovementFilter, error) {
	var filter model.MovementFilter
	filter.PropertyID = optionalQuery(c, "property_id")

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(model.DateLayout, v)
		if err != nil {
			return filter, err
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(model.DateLayout, v)
		if err != nil {
			return filter, err
		}
		filter.To = &to
	}
	if v := c.Query("category"); v != "" {
		category, err := model.ParseCategory(v)
		if err != nil {
			return filter, err
		}
		filter.Category = category
	}
	if v := c.Query("classified"); v != "" {
		classified, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.Classified = &classified
	}
	return filter, nil
}

func optionalQuery(c *gin.Context, name string) *string {
	if v := c.Query(name); v != "" {
		return &v
	}
	return nil
}
