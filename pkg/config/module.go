package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	J "cuelang.org/go/encoding/json"
	"cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaFile string

//go:embed default.yaml
var DEFAULT []byte

func readFile(ctx *cue.Context, path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, err
	}

	var value cue.Value
	switch filepath.Ext(path) {
	case ".json":
		expr, err := J.Extract(path, data)
		if err != nil {
			return cue.Value{}, err
		}
		value = ctx.BuildExpr(expr)
	case ".yaml", ".yml":
		file, err := yaml.Extract(path, data)
		if err != nil {
			return cue.Value{}, err
		}
		value = ctx.BuildFile(file)
	case ".cue":
		value = ctx.CompileBytes(data, cue.Filename(path))
	default:
		return cue.Value{}, fmt.Errorf("not in a valid format")
	}

	return value, value.Err()
}

func defaults(ctx *cue.Context) (cue.Value, error) {
	file, err := yaml.Extract("<default>", DEFAULT)
	if err != nil {
		return cue.Value{}, err
	}

	value := ctx.BuildFile(file)
	return value, value.Err()
}

// Process reads the provided configuration files in order and unifies them
// with the schema. The default configuration is used when no files are
// given. Anything a file leaves out takes the schema's default.
func Process(configPaths []string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaFile, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	if len(configPaths) == 0 {
		value, err := defaults(ctx)
		if err != nil {
			return nil, fmt.Errorf("invalid default config file: %w", err)
		}

		schema = schema.Unify(value)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf("invalid default config file: %w", err)
		}
	}

	for _, path := range configPaths {
		value, err := readFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("could not process config file %s: %w", path, err)
		}

		schema = schema.Unify(value)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf("could not merge config file %s: %w", path, err)
		}

		if err := schema.Validate(); err != nil {
			return nil, fmt.Errorf("config file %s is not valid: %w", path, err)
		}
	}

	if err := schema.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("config is incomplete: %w", err)
	}

	data, err := schema.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("could not aggregate config: %w", err)
	}

	config := Config{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	return &config, nil
}
