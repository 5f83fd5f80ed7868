package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/model"
	"github.com/lib/pq"
)

func (d Datasource) CreateProperty(ctx context.Context, prop model.Property) (model.Property, error) {
	metaDataJSON, err := json.Marshal(prop.MetaData)
	if err != nil {
		return model.Property{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	prop.PropertyID = model.GenerateUUIDWithSuffix("prop")
	prop.CreatedAt = time.Now()

	_, err = d.Conn.ExecContext(ctx, `
		INSERT INTO properties (property_id, name, address, purchase_price, tenant_name, monthly_rent, created_at, meta_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, prop.PropertyID, prop.Name, prop.Address, prop.PurchasePrice, prop.TenantName, prop.MonthlyRent, prop.CreatedAt, metaDataJSON)

	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok {
			switch pqErr.Code.Name() {
			case "unique_violation":
				return model.Property{}, apierror.NewAPIError(apierror.ErrConflict, "Property with this ID already exists", err)
			default:
				return model.Property{}, apierror.NewAPIError(apierror.ErrInternalServer, "Database error occurred", err)
			}
		}
		return model.Property{}, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to create property", err)
	}

	return prop, nil
}

func (d Datasource) GetPropertyByID(ctx context.Context, id string) (*model.Property, error) {
	prop := model.Property{}
	var metaDataJSON []byte
	err := d.Conn.QueryRowContext(ctx, `
		SELECT id, property_id, name, address, purchase_price, tenant_name, monthly_rent, created_at, meta_data
		FROM properties
		WHERE property_id = $1
	`, id).Scan(&prop.ID, &prop.PropertyID, &prop.Name, &prop.Address, &prop.PurchasePrice, &prop.TenantName, &prop.MonthlyRent, &prop.CreatedAt, &metaDataJSON)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apierror.NewAPIError(apierror.ErrNotFound, "Property not found", err)
		}
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve property", err)
	}

	if metaDataJSON != nil {
		err = json.Unmarshal(metaDataJSON, &prop.MetaData)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
		}
	}

	return &prop, nil
}

func (d Datasource) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT id, property_id, name, address, purchase_price, tenant_name, monthly_rent, created_at, meta_data
		FROM properties
		ORDER BY created_at
	`)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to retrieve properties", err)
	}
	defer rows.Close()

	properties := []model.Property{}

	for rows.Next() {
		prop := model.Property{}
		var metaDataJSON []byte
		err = rows.Scan(&prop.ID, &prop.PropertyID, &prop.Name, &prop.Address, &prop.PurchasePrice, &prop.TenantName, &prop.MonthlyRent, &prop.CreatedAt, &metaDataJSON)
		if err != nil {
			return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to scan property data", err)
		}
		if metaDataJSON != nil {
			err = json.Unmarshal(metaDataJSON, &prop.MetaData)
			if err != nil {
				return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Failed to unmarshal metadata", err)
			}
		}
		properties = append(properties, prop)
	}

	if err = rows.Err(); err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "Error occurred while iterating over properties", err)
	}

	return properties, nil
}

func (d Datasource) UpdateProperty(ctx context.Context, prop *model.Property) error {
	metaDataJSON, err := json.Marshal(prop.MetaData)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to marshal metadata", err)
	}

	result, err := d.Conn.ExecContext(ctx, `
		UPDATE properties
		SET name = $2, address = $3, purchase_price = $4, tenant_name = $5, monthly_rent = $6, meta_data = $7
		WHERE property_id = $1
	`, prop.PropertyID, prop.Name, prop.Address, prop.PurchasePrice, prop.TenantName, prop.MonthlyRent, metaDataJSON)
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to update property", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get affected rows", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, "Property not found", nil)
	}

	return nil
}

func (d Datasource) DeleteProperty(ctx context.Context, id string) error {
	result, err := d.Conn.ExecContext(ctx, `
		DELETE FROM properties
		WHERE property_id = $1
	`, id)
	if err != nil {
		pqErr, ok := err.(*pq.Error)
		if ok && pqErr.Code.Name() == "foreign_key_violation" {
			return apierror.NewAPIError(apierror.ErrConflict, "Property still has movements or rules attached", err)
		}
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to delete property", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apierror.NewAPIError(apierror.ErrInternalServer, "Failed to get affected rows", err)
	}
	if affected == 0 {
		return apierror.NewAPIError(apierror.ErrNotFound, "Property not found", nil)
	}

	return nil
}
