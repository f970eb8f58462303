package cmd

import (
	"errors"
	"fmt"

	"ranked-report/internal/riot"

	"github.com/spf13/cobra"
)

var errKeyRejected = errors.New("the Riot API key was rejected")

func checkKeyCmd(opts *rootOptions) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "check-key",
		Short: "Check that the configured Riot API key is accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, errConfig := loadConfig(opts, nil)
			if errConfig != nil {
				return errConfig
			}

			logCloser, errLogger := setupLogger(cmd.Context(), conf)
			if errLogger != nil {
				return errLogger
			}
			defer logCloser()

			validatorOpts := []riot.KeyValidatorOption{riot.WithPlatform(platform)}
			if conf.Riot.BaseURL != "" {
				validatorOpts = append(validatorOpts, riot.WithValidationURL(conf.Riot.BaseURL))
			}

			valid, errValidate := riot.NewKeyValidator(validatorOpts...).ValidateKey(cmd.Context(), conf.Riot.APIKey)
			if errValidate != nil {
				return errValidate
			}

			if !valid {
				return errKeyRejected
			}

			fmt.Fprintf(cmd.OutOrStdout(), "API key is valid (%s)\n", platform)

			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "na1", "platform whose status endpoint is queried (na1, euw1, kr, ...)")

	return cmd
}
