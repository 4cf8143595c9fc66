package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alovak/namecard/card"
	"github.com/alovak/namecard/internal/vcard"
	"github.com/spf13/cobra"
)

func newVCardCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "vcard [handle]",
		Short: "Print the vCard of a handle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg)

			repo, closeRepo, err := card.NewRepository(cfg)
			if err != nil {
				return err
			}
			defer closeRepo()

			path := "/"
			if len(args) == 1 {
				path += args[0]
			}

			svc := card.NewService(repo, cfg, logger, nil)
			c, err := svc.Contact(context.Background(), path)
			if errors.Is(err, card.ErrNotFound) {
				return fmt.Errorf("no card for handle %q", svc.Handle(path))
			}
			if err != nil {
				return err
			}

			body := vcard.Build(c) + "\n"
			if !save {
				_, err = fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			name := vcard.Filename(c.Name)
			if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the vCard to <name>.vcf instead of stdout")
	return cmd
}
