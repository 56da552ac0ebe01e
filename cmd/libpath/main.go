// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// libpath prints the asset path the settings service would derive for a
// library configuration, without touching any stored settings.
//
// Usage:
//
//	libpath -library vue -installation cdn -cdn jsdelivr -version 3.4.21
//	libpath -library petitevue -installation local -dev
//	libpath -all
//
// Exit codes:
//   - 0: Path resolved
//   - 1: Invalid configuration (unknown library, bad version)
//   - 2: Usage error
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ManuGH/vuejs/internal/library"
)

var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("libpath", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("library", "vue", "library name (vue, petitevue)")
	installation := fs.String("installation", string(library.InstallationCDN), "installation type (cdn, local)")
	cdn := fs.String("cdn", string(library.DefaultCDN), "CDN provider (jsdelivr, unpkg, cdnjs)")
	version := fs.String("version", "", "library version (defaults to the catalog version)")
	dev := fs.Bool("dev", false, "use the development build")
	all := fs.Bool("all", false, "print the default path of every known library")
	showVersion := fs.Bool("v", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, Version)
		return 0
	}

	resolver := library.NewResolver(library.DefaultCatalog(), library.DefaultTemplates())

	if *all {
		tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		for _, def := range resolver.Catalog() {
			fmt.Fprintf(tw, "%s\t%s\n", def.Name, library.ResolvePath(def.DefaultSetting(), def, resolver.Templates()))
		}
		_ = tw.Flush()
		return 0
	}

	def, ok := resolver.Catalog().Lookup(*name)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown library %q (known: %v)\n", *name, resolver.Catalog().Names())
		return 1
	}

	inst, ok := library.ParseInstallation(*installation)
	if !ok {
		fmt.Fprintf(stderr, "Error: installation must be %q or %q\n", library.InstallationCDN, library.InstallationLocal)
		return 2
	}

	rawVersion := *version
	if rawVersion == "" {
		rawVersion = def.DefaultVersion
	}
	normalized, err := library.ValidateVersion(rawVersion)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	provider, known := library.ParseCDNProvider(*cdn)
	if !known && inst == library.InstallationCDN {
		fmt.Fprintf(stderr, "Warning: unknown CDN %q, using %s\n", *cdn, provider)
	}

	path, err := resolver.Path(library.LibrarySetting{
		Name:         def.Name,
		Installation: inst,
		Development:  *dev,
		CDN:          provider,
		Version:      normalized,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, path)
	return 0
}
