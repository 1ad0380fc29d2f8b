package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/component"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/datasource"
	"github.com/firefly-engineering/firefly-forage/packages/forage-ui/internal/errors"
)

var tableCmd = &cobra.Command{
	Use:   "table [file|-]",
	Short: "Print a table",
	Long: `Prints a table read from a JSON, TOML or YAML file, or from stdin.

The file holds columns and rows:

  {"columns": [{"title": "ID"}, {"title": "Name", "width": "flex:4:20"}],
   "rows": [{"id": "u1", "cells": ["1", "Alice"]}]}

With --to the table is converted to another format instead of drawn.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTable,
}

var (
	tableData dataFlags
	tableTo   string
)

func init() {
	tableData.register(tableCmd)
	tableCmd.Flags().StringVar(&tableTo, "to", "", "Convert the table to json, toml or yaml instead of drawing it")
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	data, _, err := tableData.load(cmd, args)
	if err != nil {
		return err
	}

	if tableTo != "" {
		format, err := datasource.ParseFormat(tableTo)
		if err != nil {
			return errors.ValidationError(err.Error())
		}
		if err := data.Validate(); err != nil {
			return err
		}
		return datasource.Encode(cmd.OutOrStdout(), data, format)
	}

	style, err := tableData.style()
	if err != nil {
		return err
	}
	return component.Table(env(), data, component.TableOptions{Title: tableData.title, Style: style})
}
