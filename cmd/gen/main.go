// Command gen writes the typed gorm/gen DAO for the cadastre tables.
//
//	go run ./cmd/gen -out ./internal/infra/persistence/postgres/query
package main

import (
	"flag"
	"log/slog"
	"os"

	"cadastre/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	out := flag.String("out", "./internal/infra/persistence/postgres/query", "output directory for the generated DAO")
	withTests := flag.Bool("with-tests", false, "also generate unit tests for the DAO")
	flag.Parse()

	g := gen.NewGenerator(gen.Config{
		OutPath:           *out,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldWithIndexTag: true,
		WithUnitTest:      *withTests,
	})

	g.ApplyBasic(model.All()...)

	g.Execute()

	slog.New(slog.NewTextHandler(os.Stderr, nil)).Info("DAO generated", slog.String("out", *out), slog.Int("tables", len(model.All())))
}
