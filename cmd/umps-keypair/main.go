// Command umps-keypair generates a CURVE keypair and writes it to a
// public certificate file and, optionally, a private certificate
// file, satisfying stonehouse's key-material requirements.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uofuseismo/umps/authentication"
)

func main() {
	var publicKeyFile, privateKeyFile string

	rootCmd := &cobra.Command{
		Use:   "umps-keypair",
		Short: "generate a CURVE keypair for stonehouse authentication",
		RunE: func(cmd *cobra.Command, args []string) error {
			if publicKeyFile == "" {
				return fmt.Errorf("--publickey is required")
			}
			keys, err := authentication.GenerateKeyPair()
			if err != nil {
				return fmt.Errorf("generating keypair: %w", err)
			}
			certificate := authentication.NewCertificate(keys)

			if err := certificate.WritePublicTextFile(publicKeyFile); err != nil {
				return fmt.Errorf("writing public key file: %w", err)
			}
			if privateKeyFile != "" {
				if err := certificate.WriteTextFile(privateKeyFile); err != nil {
					return fmt.Errorf("writing private key file: %w", err)
				}
			}
			return nil
		},
	}
	rootCmd.Flags().StringVar(&publicKeyFile, "publickey", "", "path to write the public certificate")
	rootCmd.Flags().StringVar(&privateKeyFile, "privatekey", "", "path to write the private certificate")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
