package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vitalsight/healthmon/monitor/internal/ingest"
)

func newSampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the built-in sample dataset as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(a.stdout, ingest.SampleCSV+"\n")
			return err
		},
	}
}
