package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"metaharvest/internal/config"
	"metaharvest/internal/datadump"
	"metaharvest/internal/logger"
	"metaharvest/internal/pipeline"
	"metaharvest/internal/record"
	"metaharvest/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	must(err)
	defer func() { _ = log.Sync() }()

	cmd := os.Args[1]
	switch cmd {
	case "datadump:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		url := fs.String("url", cfg.DatadumpURL, "data dump url")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "records.csv"), "output csv path")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("DATADUMP_URL", *url))

		client := datadump.NewClient(cfg, log)
		records, err := client.GetDatadump(context.Background(), *url)
		must(err)
		exportRecords(cfg, log, records, *out)
	case "file:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "data dump json file")
		out := fs.String("out", filepath.Join(cfg.OutputDir, "records.csv"), "output csv path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		records, err := datadump.LoadFile(*input)
		must(err)
		exportRecords(cfg, log, records, *out)
	case "field":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "data dump json file")
		path := fs.String("path", "", "dotted field path, e.g. sourceResource.subject")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" || strings.TrimSpace(*path) == "" {
			must(fmt.Errorf("--input and --path are required"))
		}

		records, err := datadump.LoadFile(*input)
		must(err)
		for i, rec := range records {
			values, err := pipeline.GetMetadata(*path, rec)
			if err != nil {
				log.Debug("field missing", zap.Int("record", i), zap.Error(err))
				continue
			}
			fmt.Printf("%d\t%s\n", i, strings.Join(values, "|"))
		}
	case "thumbnail":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		url := fs.String("url", "", "CONTENTdm item url")
		_ = fs.Parse(os.Args[2:])

		thumb, err := pipeline.GenerateCDMThumbnail(log, *url)
		must(err)
		fmt.Println(thumb)
	case "date":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		value := fs.String("value", "", "date to reformat")
		_ = fs.Parse(os.Args[2:])

		formatted, err := pipeline.ParseDate(log, *value)
		must(err)
		fmt.Println(formatted)
	case "language":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		_ = fs.Parse(os.Args[2:])
		if fs.NArg() == 0 {
			must(fmt.Errorf("at least one language value is required"))
		}

		db, err := storage.OpenSeeded(cfg.ISO639DBPath, log)
		must(err)
		defer db.Close()

		entries := pipeline.NewLanguageParser(db).Parse(fs.Args())
		blob, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(entries, "", "  ")
		must(err)
		fmt.Println(string(blob))
	default:
		usage()
		os.Exit(1)
	}
}

func exportRecords(cfg config.Config, log *zap.Logger, records []*record.Record, out string) {
	db, err := storage.OpenSeeded(cfg.ISO639DBPath, log)
	must(err)
	defer db.Close()

	normalizer := pipeline.NewNormalizer(db, log)
	res := normalizer.NormalizeRecords(records)
	must(pipeline.ExportRecordsToCSV(records, out))
	fmt.Printf("exported %d records to %s (thumbnails=%d badDates=%d)\n", res.Records, out, res.Thumbnails, res.BadDates)
}

func usage() {
	fmt.Println("usage: metaharvest <command>")
	fmt.Println("commands:")
	fmt.Println("  datadump:export [--url=https://...] [--out=./out/records.csv]")
	fmt.Println("  file:export --input=dump.json [--out=./out/records.csv]")
	fmt.Println("  field --input=dump.json --path=sourceResource.subject")
	fmt.Println("  thumbnail --url=https://host/digital/collection/abc/id/1")
	fmt.Println("  date --value=2020-01-05")
	fmt.Println("  language English fre \"Spanish/French\"")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
