package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atelier-api",
		Short: "API de back-office para estudios de diseño interior",
		Long:  `Catálogo con precios por estudio, specs de proyecto, cobros por hitos, reuniones con resumen IA y plantillas de correo.`,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
