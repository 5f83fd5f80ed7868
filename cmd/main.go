/*
Copyright 2024 Ladrillo Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ladrillo-finance/ladrillo"
	"github.com/ladrillo-finance/ladrillo/config"
	"github.com/ladrillo-finance/ladrillo/database"
	"github.com/ladrillo-finance/ladrillo/internal/notification"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Ladrillo represents the CLI application, encapsulating the root Cobra command.
type Ladrillo struct {
	cmd *cobra.Command
}

// ladrilloInstance holds the runtime service instance and its configuration,
// shared by every subcommand through the persistent pre-run hook.
type ladrilloInstance struct {
	ladrillo *ladrillo.Ladrillo
	cnf      *config.Configuration
}

// recoverPanic handles any panics during program execution and logs the error using Logrus.
func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and initializes the service instance before
// any command runs.
func preRun(app *ladrilloInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := config.InitConfig("ladrillo.json")
		if err != nil {
			log.Fatal("error loading config", err)
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		newLadrillo, err := setupLadrillo(cnf)
		if err != nil {
			notification.NotifyError(err)
			log.Fatal(err)
		}

		app.ladrillo = newLadrillo
		app.cnf = cnf

		return nil
	}
}

// setupLadrillo connects the data source and builds the service instance.
func setupLadrillo(cfg *config.Configuration) (*ladrillo.Ladrillo, error) {
	db, err := database.NewDataSource(cfg)
	if err != nil {
		return &ladrillo.Ladrillo{}, fmt.Errorf("error getting datasource: %v", err)
	}

	newLadrillo, err := ladrillo.NewLadrillo(db)
	if err != nil {
		return &ladrillo.Ladrillo{}, fmt.Errorf("error creating ladrillo: %v", err)
	}
	return newLadrillo, nil
}

// NewCLI creates the command-line interface for the Ladrillo application.
func NewCLI() *Ladrillo {
	var configFile string
	l := &ladrilloInstance{}

	var rootCmd = &cobra.Command{
		Use:   "ladrillo",
		Short: "Property portfolio and bank statement reconciliation server",
		Run:   func(cmd *cobra.Command, args []string) {},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "./ladrillo.json", "Configuration file for the server")

	rootCmd.PersistentPreRunE = preRun(l)

	rootCmd.AddCommand(serverCommands(l))
	rootCmd.AddCommand(migrateCommands(l))

	return &Ladrillo{cmd: rootCmd}
}

// executeCLI runs the root command, handling any errors that occur during execution.
func (w Ladrillo) executeCLI() {
	if err := w.cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
