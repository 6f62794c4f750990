// Copyright 2026 The Tocayo Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcodagnone/tocayo/cluster"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scan and serve the report over HTTP (local only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		results := &cluster.CollectReporter{}

		if _, err := runScan(cmd, results); err != nil {
			return err
		}

		fmt.Printf("Report server starting on http://%s\n", listenAddr)
		fmt.Println("Local only - not exposed to internet")

		return cluster.NewServer(results).Run(listenAddr)
	},
}

func init() {
	clusterCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&listenAddr, "listen", "localhost:8080", "listen address for the report server")
}
