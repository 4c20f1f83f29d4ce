package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/emilyand-i/AgileWebGroup82/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print accounts, connections, notifications and shares",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDatabase(loadConfig())
		if err != nil {
			return err
		}
		defer db.CloseDB()

		return Inspect(cmd.OutOrStdout(), db.SQL)
	},
}

// Inspect writes a table per relational entity to out.
func Inspect(out io.Writer, db *gorm.DB) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	var accounts []models.Account
	if err := db.Order("id").Find(&accounts).Error; err != nil {
		return err
	}
	fmt.Fprintln(w, "ACCOUNTS\nID\tUSERNAME\tEMAIL\tSTREAK")
	for _, a := range accounts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", a.ID, a.Username, a.Email, a.LoginStreak)
	}

	var edges []models.RelationshipEdge
	if err := db.Order("id").Find(&edges).Error; err != nil {
		return err
	}
	fmt.Fprintln(w, "\nCONNECTIONS\nREQUESTER\tTARGET\tSTATUS")
	for _, e := range edges {
		fmt.Fprintf(w, "%d\t%d\t%s\n", e.RequesterID, e.TargetID, e.Status)
	}

	var notifications []models.Notification
	if err := db.Order("id").Find(&notifications).Error; err != nil {
		return err
	}
	fmt.Fprintln(w, "\nNOTIFICATIONS\nTO\tFROM\tREAD\tMESSAGE")
	for _, n := range notifications {
		fmt.Fprintf(w, "%d\t%d\t%t\t%s\n", n.ReceiverID, n.SenderID, n.IsRead, n.Message)
	}

	var shares []models.SharedContentRecord
	if err := db.Order("id").Find(&shares).Error; err != nil {
		return err
	}
	fmt.Fprintln(w, "\nSHARES\nCONTENT\tFROM\tTO")
	for _, s := range shares {
		fmt.Fprintf(w, "%d\t%d\t%d\n", s.ContentID, s.SharedBy, s.SharedWith)
	}

	return w.Flush()
}
