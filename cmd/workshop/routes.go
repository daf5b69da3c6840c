package main

import (
	"fmt"

	"github.com/amonks/workshop/internal/markdown"
	"github.com/amonks/workshop/internal/ui"
	"github.com/amonks/workshop/router"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the route table",
	Args:  cobra.NoArgs,
	RunE:  runRoutes,
}

var routesOutput outputFormat

var viewCmd = &cobra.Command{
	Use:   "view <path>",
	Short: "Render the view for a route path",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

var (
	viewRaw   bool
	viewWidth int
)

func init() {
	rootCmd.AddCommand(routesCmd, viewCmd)
	addOutputFlags(routesCmd, &routesOutput)
	viewCmd.Flags().BoolVar(&viewRaw, "raw", false, "Print the markdown source, word-wrapped")
	viewCmd.Flags().IntVar(&viewWidth, "width", 0, "Wrap width (default: terminal width)")
}

func runRoutes(cmd *cobra.Command, _ []string) error {
	routes := router.Default().Routes()
	if handled, err := routesOutput.write(cmd.OutOrStdout(), routes); handled {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatRouteTable(routes))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	_, view, err := router.Default().Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if viewRaw {
		fmt.Fprintln(out, ui.Wrap(view.Body, viewWidth))
		return nil
	}
	width := viewWidth
	if width <= 0 {
		width = ui.TerminalWidth()
	}
	if width <= 0 {
		width = ui.DefaultWrapWidth
	}
	fmt.Fprintln(out, ui.Heading(view.Title))
	fmt.Fprintln(out)
	fmt.Fprintln(out, string(markdown.Render(width, 0, []byte(view.Body))))
	return nil
}
