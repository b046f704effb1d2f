package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/davidcforbes/beads-tui/internal/idgen"
	"github.com/davidcforbes/beads-tui/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export the computed schedule as JSONL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		toS3, _ := cmd.Flags().GetBool("s3")

		res, err := computeNow(cmd.Context())
		if err != nil {
			return err
		}
		res.RunID, err = idgen.NewRunID()
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := report.ExportJSONL(res, &buf); err != nil {
			return err
		}

		if toS3 {
			if cfg.ReportS3Bucket == "" {
				return fmt.Errorf("--s3 requires BTUI_REPORT_S3_BUCKET")
			}
			dest, err := report.NewS3Destination(cmd.Context(),
				cfg.ReportS3Bucket, cfg.ReportS3Key, cfg.ReportS3Region, cfg.ReportS3Endpoint)
			if err != nil {
				return err
			}
			if err := dest.Write(cmd.Context(), buf.Bytes()); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Uploaded %d bytes to s3://%s/%s\n", buf.Len(), cfg.ReportS3Bucket, cfg.ReportS3Key)
			return nil
		}

		if outPath == "" || outPath == "-" {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", buf.Len(), outPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("out", "o", "-", "output file (- for stdout)")
	reportCmd.Flags().Bool("s3", false, "upload to the configured S3 bucket")
}
