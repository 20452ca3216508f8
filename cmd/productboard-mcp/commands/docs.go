package commands

import (
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

const apiReferenceURL = "https://developer.productboard.com/reference/introduction"

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Open the Productboard API reference in the default browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		return browser.OpenURL(apiReferenceURL)
	},
}
