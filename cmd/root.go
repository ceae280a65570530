// Copyright © 2023 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/suiprofile/config"
	"github.com/tranvictor/suiprofile/networks"
	"github.com/tranvictor/suiprofile/util"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "suiprofile",
	Short: "Look up polymedia profiles of Sui addresses",
	Long: fmt.Sprintf(`suiprofile resolves Sui addresses to their polymedia_profile profiles.

Lookups are batched, run concurrently against every configured node and
cached in ~/.suiprofile/cache-<network>.json so an address is only looked
up once. Addresses known to have no profile are cached too.

By default suiprofile supports localnet, devnet and testnet. You can add your
own deployments with "suiprofile network add". You can also add a custom node
to a network by setting the following env vars:
	1. For localnet: %s
	2. For devnet: %s
	3. For testnet: %s
`,
		networks.Localnet.GetNodeVariableName(),
		networks.Devnet.GetNodeVariableName(),
		networks.Testnet.GetNodeVariableName(),
	),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", networks.NetworkString, "Sui network. See \"suiprofile network list\" for valid values.")
	rootCmd.PersistentFlags().StringVar(&config.PackageID, "package", "", "polymedia_profile package id. Defaults to the network's.")
	rootCmd.PersistentFlags().StringVar(&config.RegistryID, "registry", "", "Profile registry id. Defaults to the network's.")
	rootCmd.PersistentFlags().Float64Var(&config.RateLimit, "rate-limit", 0, "Maximum requests per second sent to each node. 0 means no limit.")
	rootCmd.PersistentFlags().BoolVarP(&config.JSONOutput, "json", "j", false, "Print the result as JSON.")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "Log what suiprofile does to stderr.")

	if err := rootCmd.Execute(); err != nil {
		util.DisplayError(newErrorUI(), err)
		os.Exit(1)
	}
}
