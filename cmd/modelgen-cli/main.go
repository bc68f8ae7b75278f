package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	modelgen "github.com/goliatone/go-modelgen"
	"github.com/goliatone/go-modelgen/pkg/openapi"
	"github.com/goliatone/go-modelgen/pkg/prompt"
	"github.com/goliatone/go-modelgen/pkg/render"
)

func main() {
	source := flag.String("source", "models.yaml", "record-model definition path")
	tableName := flag.String("table", "", "table to synthesize (all tables if empty)")
	format := flag.String("format", "schema", "output format: schema, openapi or markdown")
	output := flag.String("output", "", "output file (stdout if empty)")
	construct := flag.Bool("construct", false, "prompt for field values and print the validated instance")
	flag.Parse()

	models, err := modelgen.SynthesizeFile(*source)
	if err != nil {
		log.Fatalf("Failed to synthesize models: %v", err)
	}

	selected := make([]*modelgen.Model, 0, len(models))
	if *tableName != "" {
		m, ok := models[*tableName]
		if !ok {
			log.Fatalf("No table %q in %s", *tableName, *source)
		}
		selected = append(selected, m)
	} else {
		for _, m := range models {
			selected = append(selected, m)
		}
	}

	ctx := context.Background()

	if *construct {
		if len(selected) != 1 {
			log.Fatal("-construct needs -table to pick one model")
		}
		runConstruct(ctx, selected[0], *output)
		return
	}

	payload, err := encode(ctx, *format, selected)
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
	write(*output, payload)
}

func runConstruct(ctx context.Context, m *modelgen.Model, output string) {
	inst, err := prompt.NewConstructor(nil).Construct(ctx, m)
	if err != nil {
		log.Fatalf("Failed to construct %s: %v", m.Name(), err)
	}
	payload, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode instance: %v", err)
	}
	write(output, append(payload, '\n'))
}

func encode(ctx context.Context, format string, models []*modelgen.Model) ([]byte, error) {
	switch format {
	case "schema":
		out := make([]byte, 0)
		for _, m := range models {
			raw, err := m.SchemaJSON()
			if err != nil {
				return nil, err
			}
			var pretty json.RawMessage = raw
			indented, err := json.MarshalIndent(pretty, "", "  ")
			if err != nil {
				return nil, err
			}
			out = append(out, indented...)
			out = append(out, '\n')
		}
		return out, nil
	case "openapi":
		components, err := openapi.ComponentsFromModels(models...)
		if err != nil {
			return nil, err
		}
		payload, err := json.MarshalIndent(components, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(payload, '\n'), nil
	case "markdown":
		renderer, err := render.NewMarkdown()
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0)
		for _, m := range models {
			doc, err := renderer.Render(ctx, m)
			if err != nil {
				return nil, err
			}
			out = append(out, doc...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func write(output string, payload []byte) {
	if output == "" {
		fmt.Print(string(payload))
		return
	}
	if err := os.WriteFile(output, payload, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Output written to %s\n", output)
}
