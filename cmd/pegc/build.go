package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/abstractparser/pegc/internal/emitter"
	"github.com/abstractparser/pegc/internal/gcache"
	"github.com/abstractparser/pegc/internal/grammar"
	"github.com/spf13/cobra"
)

func newBuildCommand() *cobra.Command {
	var emitGo bool
	var pkgName string
	var cachePath string

	cmd := &cobra.Command{
		Use:   "build <grammar.peg>",
		Short: "parse a grammar and emit its compiled rule descriptors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := loggerFrom(cmd.Context())
			path := args[0]

			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			digest := sourceDigest(string(src))
			store, err := gcache.Open(cachePath)
			if err != nil {
				return fmt.Errorf("opening build cache: %w", err)
			}
			defer store.Close()

			if entry, ok := store.Lookup(digest); ok && entry.Source == string(src) {
				log.CacheHit(digest)
				fmt.Printf("cached: %d rule(s): %s\n", len(strings.Split(entry.RuleNames, ",")), entry.RuleNames)
				return nil
			}
			log.CacheMiss(digest)

			f, errs := grammar.ParseFile(string(src))
			if errs.HasErrors() {
				return fmt.Errorf("parsing %s:\n%s", path, errs.String())
			}

			g, err := emitter.Build(f)
			if err != nil {
				return fmt.Errorf("emitting %s: %w", path, err)
			}
			log.GrammarLoaded(path, len(g.Order))

			if err := cacheBuild(store, digest, string(src), g); err != nil {
				log.WithError(err).Warn("failed to persist build cache entry")
			}

			for _, name := range g.Order {
				d := g.Rules[name]
				fmt.Printf("%s\t%s\n", d.Name, d.OutputType)
			}

			if emitGo {
				fmt.Println(emitter.GenerateSource(pkgName, g))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&emitGo, "emit-go", false, "also print generated Go source text for the compiled rules")
	cmd.Flags().StringVar(&pkgName, "pkg", "grammar", "package name used by --emit-go")
	cmd.Flags().StringVar(&cachePath, "cache", "pegc-build-cache.db", "path to the sqlite build cache")
	return cmd
}

// sourceDigest keys the build cache by the SHA-256 of the grammar's raw
// source text (SPEC_FULL.md §4.8), distinct from grammar.Digest's
// AST-structural xxhash used for diagnostics.
func sourceDigest(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

func cacheBuild(store *gcache.Store, digest, src string, g *emitter.Grammar) error {
	snapshot := gcache.Snapshot{Rules: append([]string(nil), g.Order...)}
	for _, t := range g.Interner.Tokens() {
		snapshot.Tokens = append(snapshot.Tokens, gcache.TokenSnapshot{
			Name: t.Name, Literal: t.Literal, Substr: t.Substr, Surround: t.Surround,
		})
	}
	for _, c := range g.Interner.Choices() {
		snapshot.Choices = append(snapshot.Choices, gcache.ChoiceSnapshot{
			Name: c.Name, Alternatives: len(c.Alternatives),
		})
	}
	return store.Put(digest, src, snapshot, strings.Join(g.Order, ","))
}
