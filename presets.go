package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-mirror-raytracer/pkg/background"
	"github.com/df07/go-mirror-raytracer/pkg/scene"
)

// ListPresets prints the preset and background codes.
func ListPresets(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	w := ctx.App.Writer

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Preset", "Name", "Description", "color1", "color2"})
	for _, p := range scene.Presets() {
		table.Append([]string{fmt.Sprintf("%d", p.Code), p.Name, p.Description, p.Color1, p.Color2})
	}
	table.Render()

	fmt.Fprintln(w)

	table = tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Background", "Name"})
	for _, kind := range background.Kinds() {
		table.Append([]string{fmt.Sprintf("%d", int(kind)), kind.String()})
	}
	table.Render()
	return nil
}
