package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newIssueCmd(client *Client) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "issue <item-id>",
		Short: "Issue an item on loan",
		Long:  "Issue an item. The borrower is the bearer token's subject unless --user names one explicitly.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"item_id": args[0]}
			if user != "" {
				body["user_id"] = user
			}

			var loan loanPayload
			if err := client.post("/api/issue", body, &loan); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, loan)
			}
			_, _ = fmt.Fprintf(os.Stdout, "Issued %s to %s (loan %s, %s)\n",
				loan.ItemID, loan.UserID, loan.ID, loan.IssueDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Borrower identifier (defaults to the token subject)")

	return cmd
}

func newReturnCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "return <item-id>",
		Short: "Return an item, closing its open loan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var loan loanPayload
			if err := client.post("/api/return", map[string]string{"item_id": args[0]}, &loan); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, loan)
			}
			ret := ""
			if loan.ReturnDate != nil {
				ret = *loan.ReturnDate
			}
			_, _ = fmt.Fprintf(os.Stdout, "Returned %s (loan %s closed %s)\n", loan.ItemID, loan.ID, ret)
			return nil
		},
	}
}

func newLoansCmd(client *Client) *cobra.Command {
	return &cobra.Command{
		Use:   "loans",
		Short: "List all loans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var loans []loanPayload
			if err := client.get("/api/loans", &loans); err != nil {
				return err
			}
			if getOutputFormat(cmd) == "json" {
				return PrintJSON(os.Stdout, loans)
			}
			rows := make([][]string, 0, len(loans))
			for _, l := range loans {
				ret := "-"
				if l.ReturnDate != nil {
					ret = *l.ReturnDate
				}
				rows = append(rows, []string{l.ID, l.ItemID, l.UserID, l.IssueDate, ret, l.Status})
			}
			return printTable(os.Stdout,
				[]string{"LOAN", "ITEM", "USER", "ISSUED", "RETURNED", "STATUS"}, rows)
		},
	}
}
