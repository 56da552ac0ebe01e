// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package settingsform implements loading and submitting the Vue.js
// library settings: validate, resolve paths, persist, invalidate caches.
package settingsform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ManuGH/vuejs/internal/library"
	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/ManuGH/vuejs/internal/metrics"
	"github.com/ManuGH/vuejs/internal/settings"
	"github.com/ManuGH/vuejs/internal/telemetry"
)

var tracer = telemetry.Tracer("github.com/ManuGH/vuejs/internal/settingsform")

// Invalidator drops cached library definitions after a save.
type Invalidator interface {
	ClearCachedDefinitions(ctx context.Context)
}

// Service coordinates the settings store, resolver and discovery cache.
type Service struct {
	store       settings.Store
	resolver    *library.Resolver
	invalidator Invalidator
	prober      Prober

	// submitMu serialises submissions so audit entries compare against
	// the record each save actually replaced.
	submitMu sync.Mutex
	logger   zerolog.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithProber enables the CDN existence check on submit.
func WithProber(p Prober) Option {
	return func(s *Service) { s.prober = p }
}

// NewService wires a Service. invalidator may be nil.
func NewService(store settings.Store, resolver *library.Resolver, invalidator Invalidator, opts ...Option) *Service {
	s := &Service{
		store:       store,
		resolver:    resolver,
		invalidator: invalidator,
		logger:      xglog.WithComponent("settingsform"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolver returns the resolver used for validation.
func (s *Service) Resolver() *library.Resolver { return s.resolver }

// Load returns the stored settings with catalog defaults filled in.
func (s *Service) Load(ctx context.Context) (settings.Record, error) {
	rec, err := s.store.Load(ctx)
	if err != nil {
		return settings.Record{}, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	return rec.WithDefaults(s.resolver), nil
}

// Submit validates input, derives every path and saves all libraries at
// once. On validation failure it returns library.ValidationErrors and the
// store is left untouched.
func (s *Service) Submit(ctx context.Context, input library.LibrarySettingsInput) (library.LibrarySettingsOutput, error) {
	ctx, span := tracer.Start(ctx, "settings.submit")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.SettingsBackendKey, s.store.Backend()))

	logger := xglog.FromContext(ctx).With().Str(xglog.FieldComponent, "settingsform").Logger()

	out, verrs := s.resolver.Resolve(input)
	if len(verrs) > 0 {
		s.reject(logger, verrs)
		span.SetAttributes(attribute.Int(telemetry.ValidationErrorsKey, len(verrs)))
		telemetry.RecordError(span, verrs, "validation")
		return library.LibrarySettingsOutput{}, verrs
	}

	if s.prober != nil {
		if err := s.probeAll(ctx, out); err != nil {
			var list library.ValidationErrors
			if errors.As(err, &list) {
				s.reject(logger, list)
				telemetry.RecordError(span, err, "validation")
			} else {
				metrics.RecordSubmission(metrics.OutcomeError)
				telemetry.RecordError(span, err, "probe")
			}
			return library.LibrarySettingsOutput{}, err
		}
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	previous, err := s.store.Load(ctx)
	if err != nil {
		// Audit only; the save itself does not depend on it.
		logger.Warn().Err(err).Str(xglog.FieldEvent, "settings.previous_unavailable").Msg("could not read previous settings")
		previous = settings.Record{}
	}

	rec := settings.FromOutput(out)
	if err := s.store.Save(ctx, rec); err != nil {
		metrics.RecordSubmission(metrics.OutcomeError)
		logger.Error().Err(err).
			Str(xglog.FieldEvent, "settings.save_failed").
			Str(xglog.FieldBackend, s.store.Backend()).
			Msg("failed to save settings")
		telemetry.RecordError(span, err, "persist")
		return library.LibrarySettingsOutput{}, fmt.Errorf("%w: %v", ErrPersist, err)
	}

	if s.invalidator != nil {
		s.invalidator.ClearCachedDefinitions(ctx)
		metrics.RecordReload("save")
	}
	metrics.RecordSubmission(metrics.OutcomeSaved)
	s.audit(logger, previous, rec)

	return out, nil
}

func (s *Service) probeAll(ctx context.Context, out library.LibrarySettingsOutput) error {
	var verrs library.ValidationErrors
	for _, name := range s.resolver.Catalog().Names() {
		err := s.prober.Probe(ctx, out.Libraries[name])
		if err == nil {
			continue
		}
		var ve *library.ValidationError
		if errors.As(err, &ve) {
			verrs = append(verrs, ve)
			continue
		}
		return err
	}
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

func (s *Service) reject(logger zerolog.Logger, verrs library.ValidationErrors) {
	metrics.RecordSubmission(metrics.OutcomeInvalid)
	for _, e := range verrs {
		metrics.RecordValidationError(e.Field)
	}
	logger.Info().
		Str(xglog.FieldEvent, "settings.rejected").
		Int("errors", len(verrs)).
		Str("detail", verrs.Error()).
		Msg("settings submission rejected")
}

func (s *Service) audit(logger zerolog.Logger, previous, current settings.Record) {
	installations := make([]string, 0, len(library.Installations))
	for _, inst := range library.Installations {
		installations = append(installations, string(inst))
	}

	for _, name := range current.Names() {
		cur := current.Libraries[name]
		old := previous.Libraries[name]
		change := library.CompareVersions(old.Version, cur.Version)

		metrics.SetInstallation(name, string(cur.Installation), installations)
		if change != library.VersionUnchanged {
			metrics.RecordVersionChange(name, string(change))
		}

		ev := logger.Info()
		if change == library.VersionDowngrade {
			ev = logger.Warn()
		}
		ev.Str(xglog.FieldEvent, "settings.library_saved").
			Str(xglog.FieldLibrary, name).
			Str(xglog.FieldInstallation, string(cur.Installation)).
			Str(xglog.FieldCDN, string(cur.CDN)).
			Str(xglog.FieldOldVersion, old.Version).
			Str(xglog.FieldNewVersion, cur.Version).
			Str("change", string(change)).
			Str(xglog.FieldPath, cur.Path).
			Msg("library settings saved")
	}
}
