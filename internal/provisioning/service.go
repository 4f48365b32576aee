// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/sensorgrid/internal/apperr"
	"github.com/tomtom215/sensorgrid/internal/audit"
	"github.com/tomtom215/sensorgrid/internal/auth"
	"github.com/tomtom215/sensorgrid/internal/metrics"
	"github.com/tomtom215/sensorgrid/internal/models"
	"github.com/tomtom215/sensorgrid/internal/scope"
)

// A unique-index collision on a fresh 256-bit key is not expected; the
// retry only keeps a freak collision from surfacing as a 409.
const maxKeyAttempts = 3

// Store defines the persistence operations used by the service.
// Satisfied by *database.DB.
type Store interface {
	CreateCompany(ctx context.Context, name, keyPrefix, keyHash string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)

	CreateLocation(ctx context.Context, companyID int64, in models.LocationInput) (*models.Location, error)
	ListLocations(ctx context.Context, pred scope.Predicate) ([]models.Location, error)
	GetLocation(ctx context.Context, pred scope.Predicate) (*models.Location, error)
	UpdateLocation(ctx context.Context, pred scope.Predicate, in models.LocationInput) (*models.Location, error)
	DeleteLocation(ctx context.Context, pred scope.Predicate) error

	CreateSensor(ctx context.Context, parent scope.Predicate, in models.SensorInput, keyPrefix, keyHash string) (*models.Sensor, error)
	ListSensors(ctx context.Context, pred scope.Predicate) ([]models.Sensor, error)
	GetSensor(ctx context.Context, pred scope.Predicate) (*models.Sensor, error)
	UpdateSensor(ctx context.Context, pred scope.Predicate, in models.SensorInput) (*models.Sensor, error)
	RotateSensorKey(ctx context.Context, pred scope.Predicate, keyPrefix, keyHash string) (*models.Sensor, error)
	DeleteSensor(ctx context.Context, pred scope.Predicate) error
}

// AuditLogger records provisioning mutations. Satisfied by *audit.Logger.
type AuditLogger interface {
	LogProvisioning(ctx context.Context, eventType audit.EventType, actor audit.Actor, target audit.Target, action, description string)
}

// Service creates and manages companies, locations and sensors. Every
// company-facing operation is confined to the caller's ownership tree.
type Service struct {
	store  Store
	audit  AuditLogger
	logger zerolog.Logger
}

// NewService creates a provisioning service. auditLogger may be nil.
func NewService(store Store, auditLogger AuditLogger, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		audit:  auditLogger,
		logger: logger.With().Str("component", "provisioning").Logger(),
	}
}

// CreateCompany registers a tenant and returns its plaintext API key.
// Names are not unique.
func (s *Service) CreateCompany(ctx context.Context, name string) (*models.CreateCompanyResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("company_name is required")
	}

	var (
		company *models.Company
		key     auth.APIKey
		err     error
	)
	for range maxKeyAttempts {
		key, err = auth.GenerateKey(auth.RoleCompany)
		if err != nil {
			return nil, err
		}
		company, err = s.store.CreateCompany(ctx, name, key.Prefix, key.Hash)
		if !errors.Is(err, apperr.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.record(ctx, "company", "create", audit.EventTypeCompanyCreated,
		audit.Target{ID: idString(company.ID), Type: "company", Name: company.Name}, "Company created")
	s.logger.Info().Int64("company_id", company.ID).Str("key_prefix", company.APIKeyPrefix).Msg("Company created")

	return &models.CreateCompanyResponse{Company: company, APIKey: key.Plaintext}, nil
}

// ListCompanies returns every company. Key hashes are never serialized.
func (s *Service) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.store.ListCompanies(ctx)
}

// CreateLocation adds a location to companyID. A company that does not
// exist yields ErrInvalidArgument.
func (s *Service) CreateLocation(ctx context.Context, companyID int64, in models.LocationInput) (*models.Location, error) {
	if companyID <= 0 {
		return nil, apperr.Invalid("company_id must be positive")
	}

	loc, err := s.store.CreateLocation(ctx, companyID, in)
	if err != nil {
		return nil, err
	}

	s.record(ctx, "location", "create", audit.EventTypeLocationCreated,
		audit.Target{ID: idString(loc.ID), Type: "location", Name: loc.Name}, "Location created")
	return loc, nil
}

// ListLocations returns the locations owned by companyID.
func (s *Service) ListLocations(ctx context.Context, companyID int64) ([]models.Location, error) {
	return s.store.ListLocations(ctx, scope.Locations(companyID))
}

// GetLocation returns one of companyID's locations.
func (s *Service) GetLocation(ctx context.Context, companyID, locationID int64) (*models.Location, error) {
	return s.store.GetLocation(ctx, scope.Location(companyID, locationID))
}

// UpdateLocation replaces the mutable fields of one of companyID's locations.
func (s *Service) UpdateLocation(ctx context.Context, companyID, locationID int64, in models.LocationInput) (*models.Location, error) {
	loc, err := s.store.UpdateLocation(ctx, scope.Location(companyID, locationID), in)
	if err != nil {
		return nil, err
	}

	s.record(ctx, "location", "update", audit.EventTypeLocationUpdated,
		audit.Target{ID: idString(loc.ID), Type: "location", Name: loc.Name}, "Location updated")
	return loc, nil
}

// DeleteLocation removes one of companyID's locations. A location that
// still has sensors yields ErrConflict.
func (s *Service) DeleteLocation(ctx context.Context, companyID, locationID int64) error {
	if err := s.store.DeleteLocation(ctx, scope.Location(companyID, locationID)); err != nil {
		return err
	}

	s.record(ctx, "location", "delete", audit.EventTypeLocationDeleted,
		audit.Target{ID: idString(locationID), Type: "location"}, "Location deleted")
	return nil
}

// CreateSensor adds a sensor under one of companyID's locations. A
// location outside the caller's scope yields ErrInvalidArgument.
func (s *Service) CreateSensor(ctx context.Context, companyID int64, req models.CreateSensorRequest) (*models.CreateSensorResponse, error) {
	return s.createSensor(ctx, scope.Location(companyID, req.LocationID), req.SensorInput)
}

// CreateSensorAsAdmin adds a sensor under any existing location.
func (s *Service) CreateSensorAsAdmin(ctx context.Context, req models.CreateSensorRequest) (*models.CreateSensorResponse, error) {
	return s.createSensor(ctx, scope.AnyLocation(req.LocationID), req.SensorInput)
}

func (s *Service) createSensor(ctx context.Context, parent scope.Predicate, in models.SensorInput) (*models.CreateSensorResponse, error) {
	var (
		sensor *models.Sensor
		key    auth.APIKey
		err    error
	)
	for range maxKeyAttempts {
		key, err = auth.GenerateKey(auth.RoleSensor)
		if err != nil {
			return nil, err
		}
		sensor, err = s.store.CreateSensor(ctx, parent, in, key.Prefix, key.Hash)
		if !errors.Is(err, apperr.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, "sensor", "create", audit.EventTypeSensorCreated,
		audit.Target{ID: idString(sensor.ID), Type: "sensor", Name: sensor.Name}, "Sensor created")
	s.logger.Info().
		Int64("sensor_id", sensor.ID).
		Int64("location_id", sensor.LocationID).
		Str("key_prefix", sensor.APIKeyPrefix).
		Msg("Sensor created")

	return &models.CreateSensorResponse{Sensor: sensor, APIKey: key.Plaintext}, nil
}

// ListSensors returns companyID's sensors, optionally limited to one location.
func (s *Service) ListSensors(ctx context.Context, companyID int64, locationID *int64) ([]models.Sensor, error) {
	pred := scope.Sensors(companyID)
	if locationID != nil {
		pred = pred.And("location_id = ?", *locationID)
	}
	return s.store.ListSensors(ctx, pred)
}

// GetSensor returns one of companyID's sensors.
func (s *Service) GetSensor(ctx context.Context, companyID, sensorID int64) (*models.Sensor, error) {
	return s.store.GetSensor(ctx, scope.Sensor(companyID, sensorID))
}

// UpdateSensor replaces the mutable fields of one of companyID's sensors.
func (s *Service) UpdateSensor(ctx context.Context, companyID, sensorID int64, in models.SensorInput) (*models.Sensor, error) {
	sensor, err := s.store.UpdateSensor(ctx, scope.Sensor(companyID, sensorID), in)
	if err != nil {
		return nil, err
	}

	s.record(ctx, "sensor", "update", audit.EventTypeSensorUpdated,
		audit.Target{ID: idString(sensor.ID), Type: "sensor", Name: sensor.Name}, "Sensor updated")
	return sensor, nil
}

// DeleteSensor removes one of companyID's sensors. A sensor with stored
// readings yields ErrConflict.
func (s *Service) DeleteSensor(ctx context.Context, companyID, sensorID int64) error {
	if err := s.store.DeleteSensor(ctx, scope.Sensor(companyID, sensorID)); err != nil {
		return err
	}

	s.record(ctx, "sensor", "delete", audit.EventTypeSensorDeleted,
		audit.Target{ID: idString(sensorID), Type: "sensor"}, "Sensor deleted")
	return nil
}

// RotateSensorKey issues a new key for one of companyID's sensors. The
// previous key stops resolving immediately.
func (s *Service) RotateSensorKey(ctx context.Context, companyID, sensorID int64) (*models.RotateSensorKeyResponse, error) {
	var (
		sensor *models.Sensor
		key    auth.APIKey
		err    error
	)
	for range maxKeyAttempts {
		key, err = auth.GenerateKey(auth.RoleSensor)
		if err != nil {
			return nil, err
		}
		sensor, err = s.store.RotateSensorKey(ctx, scope.Sensor(companyID, sensorID), key.Prefix, key.Hash)
		if !errors.Is(err, apperr.ErrConflict) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	s.record(ctx, "sensor", "rotate_key", audit.EventTypeSensorKeyRotated,
		audit.Target{ID: idString(sensor.ID), Type: "sensor", Name: sensor.Name}, "Sensor API key rotated")
	s.logger.Info().Int64("sensor_id", sensor.ID).Str("key_prefix", sensor.APIKeyPrefix).Msg("Sensor key rotated")

	return &models.RotateSensorKeyResponse{
		SensorID:     sensor.ID,
		APIKey:       key.Plaintext,
		APIKeyPrefix: sensor.APIKeyPrefix,
	}, nil
}

// record counts and audits a successful mutation.
func (s *Service) record(ctx context.Context, entity, operation string, eventType audit.EventType, target audit.Target, description string) {
	metrics.RecordProvisioning(entity, operation)
	if s.audit == nil {
		return
	}

	actor := audit.SystemActor()
	if p := auth.PrincipalFromContext(ctx); p != nil {
		actor = p.Actor()
	}
	s.audit.LogProvisioning(ctx, eventType, actor, target, operation, description)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
