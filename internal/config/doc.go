// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package config loads the daemon configuration.
//
// Precedence is ENV > file > defaults. The YAML file is decoded strictly:
// unknown keys and multiple documents are rejected. Every environment key
// starts with VUEJS_.
package config
