// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package models

import "time"

// Admin is an operator account allowed to provision companies.
type Admin struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // bcrypt
	CreatedAt    time.Time `json:"created_at"`
}

// Company is a tenant. Its API key authorizes everything below it.
type Company struct {
	ID           int64     `json:"company_id"`
	Name         string    `json:"company_name"`
	APIKeyPrefix string    `json:"api_key_prefix"`
	APIKeyHash   string    `json:"-"` // SHA-256 hex, never exposed
	CreatedAt    time.Time `json:"created_at"`
}

// Location is a site owned by exactly one company.
type Location struct {
	ID        int64     `json:"location_id"`
	CompanyID int64     `json:"company_id"`
	Name      string    `json:"location_name"`
	Country   string    `json:"location_country"`
	City      string    `json:"location_city"`
	Meta      string    `json:"location_meta"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sensor is a device owned by one location and, transitively, one company.
type Sensor struct {
	ID           int64     `json:"sensor_id"`
	LocationID   int64     `json:"location_id"`
	CompanyID    int64     `json:"company_id"`
	Name         string    `json:"sensor_name"`
	Category     string    `json:"sensor_category"`
	Meta         string    `json:"sensor_meta"`
	APIKeyPrefix string    `json:"api_key_prefix"`
	APIKeyHash   string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCompanyRequest is the admin request body for POST /admin/companies.
type CreateCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,notblank,max=200"`
}

// CreateCompanyResponse carries the plaintext company key.
// IMPORTANT: the key is returned only once, at creation.
type CreateCompanyResponse struct {
	*Company
	APIKey string `json:"company_api_key"`
}

// LocationInput holds the mutable fields of a location. PUT replaces all of them.
type LocationInput struct {
	Name    string `json:"location_name" validate:"required,notblank,max=200"`
	Country string `json:"location_country" validate:"max=100"`
	City    string `json:"location_city" validate:"max=100"`
	Meta    string `json:"location_meta" validate:"max=4096"`
}

// AdminCreateLocationRequest names the owning company explicitly.
type AdminCreateLocationRequest struct {
	CompanyID int64 `json:"company_id" validate:"required,gt=0"`
	LocationInput
}

// SensorInput holds the mutable fields of a sensor. The owning location
// is fixed at creation.
type SensorInput struct {
	Name     string `json:"sensor_name" validate:"required,notblank,max=200"`
	Category string `json:"sensor_category" validate:"max=100"`
	Meta     string `json:"sensor_meta" validate:"max=4096"`
}

// CreateSensorRequest is used by both the company and the admin paths.
type CreateSensorRequest struct {
	LocationID int64 `json:"location_id" validate:"required,gt=0"`
	SensorInput
}

// CreateSensorResponse carries the plaintext sensor key, shown once.
type CreateSensorResponse struct {
	*Sensor
	APIKey string `json:"sensor_api_key"`
}

// RotateSensorKeyResponse is returned after a sensor key is replaced.
type RotateSensorKeyResponse struct {
	SensorID     int64  `json:"sensor_id"`
	APIKey       string `json:"sensor_api_key"`
	APIKeyPrefix string `json:"api_key_prefix"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
