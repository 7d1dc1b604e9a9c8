package nutrivision

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jayparmar2411/Nutrivision/internal/service"
	"github.com/Jayparmar2411/Nutrivision/internal/store"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored records for corruption",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(env *runtimeEnv, sqldb *sql.DB, _ string) error {
			kv := store.NewKV(sqldb)
			report, err := service.RunDoctor(kv, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(env.out, "Entries: %d\n", report.Entries)
			fmt.Fprintf(env.out, "Invalid entries: %d\n", report.InvalidEntries)
			fmt.Fprintf(env.out, "Duplicate entries: %d\n", report.DuplicateEntries)
			if len(report.UnreadableRecords) == 0 {
				fmt.Fprintln(env.out, "Unreadable records: none")
			} else {
				fmt.Fprintf(env.out, "Unreadable records: %s\n", strings.Join(report.UnreadableRecords, ", "))
			}
			if len(report.InvalidRecords) == 0 {
				fmt.Fprintln(env.out, "Invalid records: none")
			} else {
				fmt.Fprintf(env.out, "Invalid records: %s\n", strings.Join(report.InvalidRecords, ", "))
			}
			if report.LastWrite != nil {
				fmt.Fprintf(env.out, "Last write: %s\n", report.LastWrite.Local().Format("2006-01-02 15:04:05"))
			} else {
				fmt.Fprintln(env.out, "Last write: never")
			}
			if doctorFix {
				fmt.Fprintf(env.out, "Fixed records: %d\n", report.FixedRecords)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(kv, false)
				if err != nil {
					return err
				}
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Drop invalid entries and bad records, resetting bad goals to defaults")
}
