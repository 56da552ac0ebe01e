// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settingsform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/vuejs/internal/library"
)

// newCDN serves 200 for known versions and 404 otherwise.
func newCDN(t *testing.T, known ...string) (*httptest.Server, library.Templates, ProbeConfig) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		for _, v := range known {
			if strings.Contains(r.URL.Path, "@"+v+"/") {
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		if strings.Contains(r.URL.Path, "@500.") {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)

	tpl := "//" + u.Host + "/{package}@{version}/dist/{filename}"
	templates := library.Templates{Unpkg: tpl, CDNJS: tpl, JSDelivr: tpl}
	cfg := ProbeConfig{
		Timeout:       time.Second,
		RatePerSecond: 100,
		Scheme:        "http",
		CIDRs:         []string{"127.0.0.0/8"},
		Ports:         []int{port},
	}
	return srv, templates, cfg
}

func cdnSetting(resolver *library.Resolver, version string) library.LibrarySetting {
	s := library.LibrarySetting{
		Name:         "vue",
		Installation: library.InstallationCDN,
		CDN:          library.CDNUnpkg,
		Version:      version,
	}
	s.Path, _ = resolver.Path(s)
	return s
}

func TestCDNProber(t *testing.T) {
	_, templates, cfg := newCDN(t, "3.2.37")
	resolver := library.NewResolver(library.DefaultCatalog(), templates)
	prober, err := NewCDNProber(cfg, resolver.Templates())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, prober.Probe(ctx, cdnSetting(resolver, "3.2.37")))

	err = prober.Probe(ctx, cdnSetting(resolver, "9.9.9"))
	verrs, ok := library.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, library.MsgVersionMissing, verrs[0].Message)
	assert.Equal(t, "vue[version]", verrs[0].FormKey())

	err = prober.Probe(ctx, cdnSetting(resolver, "500.0.0"))
	assert.ErrorIs(t, err, ErrProbeUnavailable)
}

func TestCDNProber_SkipsLocal(t *testing.T) {
	prober, err := NewCDNProber(ProbeConfig{}, library.DefaultTemplates())
	require.NoError(t, err)

	err = prober.Probe(context.Background(), library.LibrarySetting{
		Name:         "vue",
		Installation: library.InstallationLocal,
		Path:         "/libraries/vue/dist/vue.runtime.global.js",
	})
	assert.NoError(t, err)
}

func TestCDNProber_RejectsHostsOutsideTemplates(t *testing.T) {
	_, templates, cfg := newCDN(t)
	prober, err := NewCDNProber(cfg, templates)
	require.NoError(t, err)

	err = prober.Probe(context.Background(), library.LibrarySetting{
		Name:         "vue",
		Installation: library.InstallationCDN,
		CDN:          library.CDNUnpkg,
		Path:         "//192.0.2.55/vue.js",
	})
	assert.ErrorIs(t, err, ErrProbeUnavailable)
}

func TestSubmit_WithCDNProber(t *testing.T) {
	_, templates, cfg := newCDN(t, "3.2.37")
	resolver := library.NewResolver(library.DefaultCatalog(), templates)
	prober, err := NewCDNProber(cfg, resolver.Templates())
	require.NoError(t, err)

	svc := NewService(newMemoryStore(), resolver, nil, WithProber(prober))

	in := validInput()
	pv := in.Libraries["petitevue"]
	pv.Installation = "cdn"
	pv.Version = "0.0.1"
	in.Libraries["petitevue"] = pv

	_, err = svc.Submit(context.Background(), in)
	verrs, ok := library.AsValidationErrors(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"petitevue[version]": library.MsgVersionMissing}, verrs.ByFormKey())
}
