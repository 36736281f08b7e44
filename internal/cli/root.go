// Copyright (c) 2026 WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package cli implements the qrlabel command line tool, which writes sample
// labels to PNG files and prints their QR payload.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/config"
	"github.com/wso2-open-operations/common-tools/operations/qr-label-generation/internal/logger"
)

// Version is set via ldflags during build.
var Version = "dev"

// app carries state shared by the subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
	cfg    *config.Config

	verbose    bool
	format     string
	outDir     string
	width      int
	moduleSize int
	border     int
	locale     string
	fontPath   string
}

// Execute runs the CLI with args and returns the first command error.
func Execute(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the qrlabel command tree.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "qrlabel",
		Short:         "qrlabel prints QR labels for biochar and biomass samples",
		Long:          `qrlabel renders a printable PNG label with a title and a QR code carrying the sample metadata, either as JSON or as readable text.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envErr := config.LoadEnvFile()
			a.cfg = config.LoadConfig()

			level := logger.ParseLevel(a.cfg.LogLevel)
			if a.verbose {
				level = zapcore.DebugLevel
			}
			a.logger = logger.New(a.cfg.LogEnv, level, a.stderr)
			if envErr != nil {
				a.logger.Debug("No .env file found, using environment variables")
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVarP(&a.format, "format", "f", "", "payload format: text or json (default from DEFAULT_PAYLOAD_FORMAT)")
	flags.StringVarP(&a.outDir, "out", "o", ".", "directory the PNG label is written to")
	flags.IntVar(&a.width, "width", 0, "label width in pixels (default from LABEL_WIDTH)")
	flags.IntVar(&a.moduleSize, "module-size", 0, "pixels per QR module (default from QR_MODULE_SIZE)")
	flags.IntVar(&a.border, "border", -1, "quiet zone in modules (default from QR_BORDER)")
	flags.StringVar(&a.locale, "locale", "", "label language for text payloads: pt or en (default from LABEL_LOCALE)")
	flags.StringVar(&a.fontPath, "font", "", "TrueType font for the title (default from LABEL_FONT_PATH)")

	root.AddCommand(a.newBiocharCmd())
	root.AddCommand(a.newBiomassCmd())

	return root
}
