package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/satriahrh/suara/domain/entities"
	"github.com/satriahrh/suara/usecase"
)

func newConvertCommand() *cobra.Command {
	var (
		voice    string
		out      string
		fromText bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file|text>",
		Short: "Convert a document (or literal text with --text) to an MP3 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			var conversion *usecase.Conversion
			if fromText {
				conversion, err = a.service.ConvertText(cmd.Context(), args[0], voice)
			} else {
				conversion, err = convertFile(cmd, a, args[0], voice)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = defaultOutputPath(a.cfg.AudioDir, args[0], fromText)
			}
			if err := os.WriteFile(out, conversion.Audio, 0o644); err != nil {
				return fmt.Errorf("failed to write audio: %w", err)
			}

			a.logger.Info("Conversion written",
				zap.String("path", out),
				zap.Int("chars", len(conversion.Text)),
				zap.Int("bytes", len(conversion.Audio)))
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&voice, "voice", "v", string(entities.DefaultVoice), "Voice identifier (see GET /voice-options)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default <AUDIO_DIR>/<name>.mp3)")
	cmd.Flags().BoolVar(&fromText, "text", false, "Treat the argument as literal text")

	return cmd
}

func convertFile(cmd *cobra.Command, a *app, path, voice string) (*usecase.Conversion, error) {
	format, ok := entities.FormatFromFilename(path)
	if !ok {
		return nil, entities.NewValidationError("File type not supported")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return a.service.ConvertDocument(cmd.Context(), f, format, voice)
}

func defaultOutputPath(audioDir, arg string, fromText bool) string {
	name := uuid.NewString()
	if !fromText {
		base := entities.SanitizeFilename(arg)
		if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
			name = stem
		}
	}
	return filepath.Join(audioDir, name+".mp3")
}
