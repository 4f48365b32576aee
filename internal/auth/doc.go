// Sensorgrid - Multi-tenant IoT Telemetry Ingestion and Query API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sensorgrid

/*
Package auth resolves request credentials into a Principal.

Three principal kinds exist, each with its own credential:

  - admin: username and password, HTTP Basic (or the legacy username and
    password headers). Passwords are bcrypt hashed.
  - company: API key in X-Company-API-Key (or legacy company_api_key).
  - sensor: API key in X-Sensor-API-Key, or per record in the legacy
    ingestion body.

API keys are random 256-bit secrets with a kind prefix (sgc_ or sgs_).
Only a SHA-256 digest and a short display prefix are stored, so a key is
shown to its owner once at creation and cannot be recovered afterwards.

Resolution happens in Middleware before any handler runs. A failure is
written through the injected ErrorWriter and audited; success stores the
Principal in the request context:

	r.With(mw.RequireCompany).Get("/locations", h.ListLocations)

	p := auth.PrincipalFromContext(r.Context())

After resolution an optional Authorizer (casbin, see package authz)
checks the principal's role against the route.
*/
package auth
