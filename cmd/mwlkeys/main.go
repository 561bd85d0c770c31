package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/caio-sobreiro/mwlmerge/dicom"
	"github.com/caio-sobreiro/mwlmerge/internal/config"
	"github.com/caio-sobreiro/mwlmerge/internal/logging"
	"github.com/caio-sobreiro/mwlmerge/mwl"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "mwlkeys",
		Short:        "Derive Modality Worklist matching keys from received DICOM attributes",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Path to a configuration file (YAML, JSON, TOML or .env)")

	rootCmd.AddCommand(keysCmd())
	rootCmd.AddCommand(strategiesCmd())
	return rootCmd
}

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys [file]",
		Short: "Print the MWL C-FIND identifier for a DICOM JSON dataset",
		Long: "Reads a dataset in the DICOM JSON model from file, or stdin when no file is given,\n" +
			"selects the matching keys with the configured strategy and prints the\n" +
			"C-FIND identifier as DICOM JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if override, _ := cmd.Flags().GetString("matching-key"); override != "" {
				cfg.MatchingKey = override
			}
			if override, _ := cmd.Flags().GetString("mwl-scp"); override != "" {
				cfg.MWLSCP = override
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := cfg.Level()
			logger := logging.New(cmd.ErrOrStderr(), level, cfg.LogFormat)

			attrs, err := readDataset(cmd, args)
			if err != nil {
				logger.Error().Err(err).Msg("failed to read dataset")
				return err
			}

			key, _ := cfg.Key()
			statuses, _ := cfg.Statuses()
			param, err := mwl.NewSelector(logger).Select(cfg.MWLSCP, cfg.WorklistLabels, statuses, key, attrs, cfg.TemplateURI)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(param.NewQueryKeys(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode query keys: %w", err)
			}
			logger.Info().
				Str("mwl_scp", param.MWLSCP()).
				Stringer("matching_key", key).
				Stringer("statuses", param.Statuses()).
				Strs("worklist_labels", param.WorklistLabels()).
				Msg("built MWL query keys")

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().String("matching-key", "", "Matching key overriding MWL_MATCHING_KEY")
	cmd.Flags().String("mwl-scp", "", "Worklist source overriding MWL_SCP")
	return cmd
}

func readDataset(cmd *cobra.Command, args []string) (*dicom.Dataset, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return dicom.ParseJSON(data)
}

func strategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the supported matching keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range mwl.MatchingKeys() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
