// Seed command: loads demo tables and routes into an empty store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data into an empty store",
	Long: `Seed populates the store with demo tables and generated route rows
for the selangor and kl regions. A store that already contains tables is
left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			return err
		}
		defer backend.Detach()

		created, err := backend.SeedDemo()
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}

		if created == 0 {
			fmt.Println("Store already has tables; nothing to do")
			return nil
		}
		fmt.Printf("Seeded %d demo tables\n", created)
		return nil
	},
}
