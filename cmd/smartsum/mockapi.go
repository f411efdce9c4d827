package main

import (
	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/smartsum/internal/mockapi"
)

func mockapiCMD(cfgPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "mockapi",
		Short: "Run a development mock of the SmartSum backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(*cfgPath)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.MockAPI.Address
			}
			srv := mockapi.New([]byte(a.cfg.MockAPI.JWTSecret), a.cfg.MockAPI.TokenTTL)
			return srv.Start(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
