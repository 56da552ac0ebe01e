// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package library holds the supported JavaScript runtime libraries, the
// version grammar accepted for them and the derivation of the asset path a
// page has to load for a given installation choice.
//
// Everything in here is pure: no I/O, no globals that change at runtime.
// Persistence lives in internal/settings, the submit workflow in
// internal/settingsform.
package library
