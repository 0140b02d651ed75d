package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/model"
)

var schemaCmd = &cobra.Command{
	Use:       "schema <resource>",
	Short:     "Print the JSON Schema of a resource's create payload",
	Args:      cobra.ExactArgs(1),
	ValidArgs: schemaResources(),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, err := dto.Schema(model.Resource(args[0]))
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(schema)
	},
}

func schemaResources() []string {
	names := make([]string, 0, len(model.ContentResources)+1)
	for _, r := range model.ContentResources {
		names = append(names, string(r))
	}
	return append(names, string(model.ResourceUsers))
}
